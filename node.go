/* ============================================================= *\
   node.go

   Per-AS decision process: RIB, route selection, export policy,
   valley-free filtering, hijack-mode checkpoint.

   Grounded on original_source/BGPNode.py for exact semantics; the
   Relation enum follows spec.md §3 (C2P=0 neighbour-is-my-provider,
   P2P=1 peer, P2C=2 neighbour-is-my-customer).
\* ============================================================= */

package bgpsim

import (
	"container/heap"
	"fmt"
	"strconv"
	"strings"
)

// Relation is the commercial role a neighbour plays with respect to a
// node.
type Relation int

const (
	C2P Relation = iota // neighbour is my provider
	P2P                 // neighbour is my peer
	P2C                 // neighbour is my customer
)

func (r Relation) String() string {
	switch r {
	case C2P:
		return "C2P"
	case P2P:
		return "P2P"
	case P2C:
		return "P2C"
	default:
		return "unknown"
	}
}

// Neighbour records the commercial relationship and tie-break local
// preference for one neighbour ASN.
type Neighbour struct {
	Relation  Relation
	LocalPref int // 0 means "unset"
}

// RouteInfo is a read-only snapshot of a selected or alternative
// route.
type RouteInfo struct {
	Path      string
	LocalPref int
	PathLen   int
	SourceASN int
}

// Node is one Autonomous System in the simulation graph.
type Node struct {
	ASN int

	Neighbours   map[int]Neighbour
	ExportPolicy map[int][]int // source_ASN -> recipients, optional
	ImportPolicy map[int][]int // reserved; advisory only

	isDetector     bool
	usesValleyFree bool

	exportAll       []int // every neighbour ASN
	exportCustomers []int // neighbours with relation P2C

	adjRIBIn ribHeap
	locRIB   *ribEntry

	adjRIBInBackup ribHeap
	locRIBBackup   *ribEntry
}

// NewNode constructs a Node and precomputes its export groups.
func NewNode(asn int, neighbours map[int]Neighbour, exportPolicy, importPolicy map[int][]int) *Node {
	n := &Node{
		ASN:          asn,
		Neighbours:   neighbours,
		ExportPolicy: exportPolicy,
		ImportPolicy: importPolicy,
	}
	n.groupNeighbours()
	return n
}

// groupNeighbours precomputes the ALL and CUSTOMERS export groups
// from Neighbours. Mirrors the teacher's groupNeighbours/
// groupedNeighbours, specialised to the two groups the engine needs.
func (n *Node) groupNeighbours() {
	n.exportAll = make([]int, 0, len(n.Neighbours))
	n.exportCustomers = make([]int, 0, len(n.Neighbours))
	for asn, nb := range n.Neighbours {
		n.exportAll = append(n.exportAll, asn)
		if nb.Relation == P2C {
			n.exportCustomers = append(n.exportCustomers, asn)
		}
	}
}

// SetTrafficPrinciple sets whether this node exports outbound traffic
// under the valley-free rule.
func (n *Node) SetTrafficPrinciple(usesValleyFree bool) {
	n.usesValleyFree = usesValleyFree
}

// SetDetector marks whether this node is connected to a route
// collector.
func (n *Node) SetDetector(isDetector bool) {
	n.isDetector = isDetector
}

// IsDetector reports whether this node is connected to a route
// collector.
func (n *Node) IsDetector() bool {
	return n.isDetector
}

// UpdateSelectedPath receives an announcement and applies the
// decision process of spec.md §4.2. It returns true when a new
// loc_rib was installed (either the first accepted route, or an
// accepted replacement), and false when the announcement is rejected
// as a loop, an invalid path, or otherwise a no-op.
func (n *Node) UpdateSelectedPath(path string) (bool, error) {
	parts := splitPath(path)

	if pathContainsASN(parts, n.ASN) {
		return false, nil // loop
	}

	sourceASN, err := lastASN(parts)
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	nb, ok := n.Neighbours[sourceASN]
	if !ok {
		return false, fmt.Errorf("%w: %d is not a neighbour of %d", ErrInvalidPath, sourceASN, n.ASN)
	}

	if n.locRIB == nil {
		n.locRIB = &ribEntry{
			Path:      path,
			LocalPref: nb.LocalPref,
			PathLen:   len(parts),
			SourceASN: sourceASN,
		}
		return true, nil
	}

	previous := *n.locRIB
	n.adjRIBIn.removeSource(sourceASN)

	if n.locRIB.SourceASN != sourceASN {
		heap.Push(&n.adjRIBIn, *n.locRIB)
	}

	heap.Push(&n.adjRIBIn, ribEntry{
		Path:      path,
		LocalPref: nb.LocalPref,
		PathLen:   len(parts),
		SourceASN: sourceASN,
	})

	best := heap.Pop(&n.adjRIBIn).(ribEntry)
	n.locRIB = &best
	return best != previous, nil
}

// PreparePublish computes the announcement this node sends outbound:
// the path to send, and the set of neighbour ASNs to send it to.
func (n *Node) PreparePublish() (path string, recipients []int, err error) {
	if n.locRIB == nil {
		return strconv.Itoa(n.ASN), n.exportAll, nil
	}
	return n.preparePublishTransit()
}

func (n *Node) preparePublishTransit() (string, []int, error) {
	route := n.locRIB.Path + "," + strconv.Itoa(n.ASN)
	source := n.locRIB.SourceASN

	if n.ExportPolicy != nil {
		if recipients, ok := n.ExportPolicy[source]; ok {
			return route, recipients, nil
		}
	}

	if !n.usesValleyFree {
		return route, n.exportAll, nil
	}

	nb, ok := n.Neighbours[source]
	if !ok {
		// source_ASN unknown to this node's topology: spec.md §9 Open
		// Question — treat as InvalidPath rather than panicking.
		return "", nil, fmt.Errorf("%w: source ASN %d not a neighbour of %d", ErrInvalidPath, source, n.ASN)
	}
	if nb.Relation == P2C {
		return route, n.exportAll, nil
	}
	return route, n.exportCustomers, nil
}

// SetRIB switches this node between normal and hijack-checkpointed
// RIB state. continueWithHijack=true takes a checkpoint (bounding the
// Adj-RIB-In backup to 10 entries); false restores from the
// checkpoint.
func (n *Node) SetRIB(continueWithHijack bool) {
	if continueWithHijack {
		n.adjRIBInBackup = n.adjRIBIn.copyBounded(10)
		n.locRIBBackup = copyEntryPtr(n.locRIB)
		return
	}
	n.adjRIBIn = n.adjRIBInBackup.copyAll()
	n.adjRIBInBackup = nil
	n.locRIB = copyEntryPtr(n.locRIBBackup)
	n.locRIBBackup = nil
}

// Reset clears the node's entire RIB and backup.
func (n *Node) Reset() {
	n.adjRIBIn = nil
	n.adjRIBInBackup = nil
	n.locRIB = nil
	n.locRIBBackup = nil
}

// ResetFromBackup restores the live RIB from the backup without
// clearing the backup, so a hijack can be rerun from the same
// pre-hijack state.
func (n *Node) ResetFromBackup() {
	n.adjRIBIn = n.adjRIBInBackup.copyAll()
	n.locRIB = copyEntryPtr(n.locRIBBackup)
}

func copyEntryPtr(e *ribEntry) *ribEntry {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

/* ------------------------- Read-only accessors ------------------------- */

// SelectedRoute returns the currently selected route, or
// (RouteInfo{}, false) if Loc-RIB is empty.
func (n *Node) SelectedRoute() (RouteInfo, bool) {
	if n.locRIB == nil {
		return RouteInfo{}, false
	}
	return RouteInfo{
		Path:      n.locRIB.Path,
		LocalPref: n.locRIB.LocalPref,
		PathLen:   n.locRIB.PathLen,
		SourceASN: n.locRIB.SourceASN,
	}, true
}

// AlternativeRoutes returns the current Adj-RIB-In contents.
func (n *Node) AlternativeRoutes() []RouteInfo {
	out := make([]RouteInfo, 0, len(n.adjRIBIn))
	for _, e := range n.adjRIBIn {
		out = append(out, RouteInfo{
			Path:      e.Path,
			LocalPref: e.LocalPref,
			PathLen:   e.PathLen,
			SourceASN: e.SourceASN,
		})
	}
	return out
}

func (n *Node) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "AS%d", n.ASN)
	if r, ok := n.SelectedRoute(); ok {
		fmt.Fprintf(&b, " loc_rib=%s", r.Path)
	}
	return b.String()
}
