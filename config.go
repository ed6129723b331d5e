/* ============================================================= *\
   config.go

   Configuration layer for the loader. Grouped by concern, in the
   spirit of the teacher's Args struct, minus any flag parsing: CLI
   framing is out of scope for this module.
\* ============================================================= */

package bgpsim

// LoaderConfig names the three external data sources a Graph is built
// from (spec.md §6).
type LoaderConfig struct {
	// RelationsFile is the CAIDA AS-relationships file.
	RelationsFile string

	// DelegatedDir is a directory of RIR delegated-ASN summary files.
	DelegatedDir string

	// CollectorsFile is the route-collector peer list ("collectors.txt").
	CollectorsFile string
}
