/* ============================================================= *\
   errors.go

   Sentinel errors for the loader and the propagation engine.
\* ============================================================= */

package bgpsim

import "errors"

var (
	// ErrInputFormat is returned when a relationships or collectors line
	// violates its line format, or when a Broker response cannot be
	// decoded. Delegated-summary lines whose ASN fields do not parse are
	// skipped, not reported with this error.
	ErrInputFormat = errors.New("bgpsim: malformed input line")

	// ErrIO is returned when a data file or directory cannot be read.
	ErrIO = errors.New("bgpsim: input unreadable")

	// ErrUnknownASN is returned by Simulate when the source ASN is not
	// present in the graph.
	ErrUnknownASN = errors.New("bgpsim: unknown ASN")

	// ErrInvalidPath marks an announcement whose last hop is not a
	// neighbour of the receiving node. The node treats this the same as
	// a loop: reject and do not propagate.
	ErrInvalidPath = errors.New("bgpsim: invalid path")
)
