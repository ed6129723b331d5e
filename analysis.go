/* ============================================================= *\
   analysis.go

   Read-only reporting views over a converged Simulator run. Neither
   function mutates the Graph or Simulator; both operate purely on
   already-collected path data.

   PropagationTree reuses the teacher's generic tree.Tree (BGP_
   heuristics.go's build_tree), walking AS hops oldest-first instead
   of IP-prefix octets. OverlapReport reuses the teacher's radix-tree
   grouping (overlays_processing.go's process_overlays/
   generate_walk_radix_tree), re-keyed on AS-path strings instead of
   binary IP prefixes, to report which ASes converged through a
   shared upstream path rather than which prefixes overlap.
\* ============================================================= */

package bgpsim

import (
	radix "github.com/Emeline-1/radix"

	"github.com/Cas-B/BGPSimulator/tree"
)

// PathTree is a tree.Tree rooted at the origin ASN, branching on
// each subsequent hop of every touched node's selected path.
type PathTree = tree.Tree

// PropagationTree builds a tree rooted at the origin ASN from every
// touched node's selected path, for rendering "who learned the route
// via whom".
func PropagationTree(paths map[int]string) PathTree {
	root := tree.Tree{}
	noop := func(string, interface{}) {}
	for _, path := range paths {
		hops := splitPath(path)
		root.Add(hops, noop, noop, nil)
	}
	return root
}

// OverlapReport groups ASes whose selected paths share a longest
// common AS-path prefix, reporting prefix -> member ASNs. Useful for
// spotting a hijack's blast-radius shape: ASes sharing a long common
// upstream segment converged through the same part of the network.
func OverlapReport(paths map[int]string) map[string][]int {
	asnsByPath := make(map[string][]int, len(paths))
	for asn, path := range paths {
		asnsByPath[path] = append(asnsByPath[path], asn)
	}

	t := radix.New()
	for path, asns := range asnsByPath {
		t.Insert(path, asns)
	}

	report := make(map[string][]int)
	t.Walk_post(func(parent *radix.LeafNode, children []*radix.LeafNode) {
		if len(children) == 0 {
			return
		}
		members := append([]int{}, asnsOf(parent)...)
		for _, child := range children {
			members = append(members, asnsOf(child)...)
		}
		if len(members) > 0 {
			report[parent.Key] = members
		}
	})
	return report
}

func asnsOf(n *radix.LeafNode) []int {
	if n == nil || n.Val == nil {
		return nil
	}
	asns, _ := n.Val.([]int)
	return asns
}
