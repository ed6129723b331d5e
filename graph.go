/* ============================================================= *\
   graph.go

   AS graph construction, three stages per original_source/
   GraphGenerator.py:

       1) parse CAIDA AS-relationships
       2) drop ASNs/neighbours absent from the RIR delegated summaries
       3) mark nodes reachable from a route collector as detectors

   ConnectedComponents is a diagnostic built on the teacher's
   basic_graph usage (rib_analysis.go/overlays_processing.go): it
   reports which ASNs the relationship data partitions into disjoint
   islands, useful for sanity-checking a relationships file before
   simulating over it.
\* ============================================================= */

package bgpsim

import (
	"fmt"
	"strconv"

	graph "github.com/Emeline-1/basic_graph"
)

// Graph is a complete AS topology ready for simulation.
type Graph struct {
	Nodes map[int]*Node
}

// Build runs the three construction stages against the files named in
// cfg and returns the resulting Graph.
func Build(cfg LoaderConfig) (*Graph, error) {
	relationships, err := parseRelationships(cfg.RelationsFile)
	if err != nil {
		return nil, err
	}

	allocated, err := parseDelegated(cfg.DelegatedDir)
	if err != nil {
		return nil, err
	}
	filterRelationships(relationships, allocated)

	detectors, err := parseDetectors(cfg.CollectorsFile)
	if err != nil {
		return nil, err
	}

	g := &Graph{Nodes: make(map[int]*Node, len(relationships))}
	for asn, neighbours := range relationships {
		n := NewNode(asn, neighbours, nil, nil)
		if _, ok := detectors[asn]; ok {
			n.SetDetector(true)
		}
		g.Nodes[asn] = n
	}
	return g, nil
}

// filterRelationships drops any ASN, and any neighbour reference, not
// present in allocated. Mirrors GraphGenerator.filter().
func filterRelationships(relationships map[int]map[int]Neighbour, allocated map[int]struct{}) {
	for asn, neighbours := range relationships {
		if _, ok := allocated[asn]; !ok {
			delete(relationships, asn)
			continue
		}
		for nbASN := range neighbours {
			if _, ok := allocated[nbASN]; !ok {
				delete(neighbours, nbASN)
			}
		}
	}
}

// ConnectedComponents groups this graph's ASNs into connected
// components under the undirected relationship graph.
func (g *Graph) ConnectedComponents() [][]int {
	gr := graph.New()
	for asn, n := range g.Nodes {
		for nbASN := range n.Neighbours {
			gr.Add_edge(strconv.Itoa(asn), strconv.Itoa(nbASN))
		}
	}

	var components [][]int
	gr.Set_iterator()
	for gr.Next_connected_component() {
		members := gr.Connected_component()
		comp := make([]int, 0, len(members))
		for _, m := range members {
			asn, err := strconv.Atoi(m)
			if err != nil {
				continue
			}
			comp = append(comp, asn)
		}
		components = append(components, comp)
	}
	return components
}

// Node looks up an ASN, reporting ErrUnknownASN if it is not present.
func (g *Graph) Node(asn int) (*Node, error) {
	n, ok := g.Nodes[asn]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownASN, asn)
	}
	return n, nil
}

// Clone produces an independent copy of the graph's nodes and RIB
// state, used by BatchSimulate so concurrent runs never share
// mutable Node state.
func (g *Graph) Clone() *Graph {
	out := &Graph{Nodes: make(map[int]*Node, len(g.Nodes))}
	for asn, n := range g.Nodes {
		cp := &Node{
			ASN:            n.ASN,
			Neighbours:     n.Neighbours, // immutable relationship data, safe to share
			ExportPolicy:   n.ExportPolicy,
			ImportPolicy:   n.ImportPolicy,
			isDetector:     n.isDetector,
			usesValleyFree: n.usesValleyFree,
			adjRIBIn:       n.adjRIBIn.copyAll(),
			locRIB:         copyEntryPtr(n.locRIB),
			adjRIBInBackup: n.adjRIBInBackup.copyAll(),
			locRIBBackup:   copyEntryPtr(n.locRIBBackup),
		}
		cp.groupNeighbours()
		out.Nodes[asn] = cp
	}
	return out
}
