/* ============================================================= *\
   rib.go

   Adj-RIB-In ordering: a container/heap-ordered collection of
   alternative routes, keyed so that heap.Pop always returns the most
   preferred entry under the selection order of spec.md §4.2:

       (-LocalPref, PathLen, SourceASN) ascending

   i.e. prefer higher local preference, then shorter paths, then lower
   source ASN. This generalizes the teacher's AS_weight/ByWeight
   sort.Interface pattern (probing_strategies_utils.go) from a single
   numeric weight to the three-way selection key, and mirrors the
   original's use of Python's heapq with a tuple key.
\* ============================================================= */

package bgpsim

import "container/heap"

// ribEntry is one candidate route: a path string plus the selection
// key fields.
type ribEntry struct {
	Path      string
	LocalPref int
	PathLen   int
	SourceASN int
}

func (e ribEntry) less(o ribEntry) bool {
	if e.LocalPref != o.LocalPref {
		return e.LocalPref > o.LocalPref // higher local pref sorts first
	}
	if e.PathLen != o.PathLen {
		return e.PathLen < o.PathLen
	}
	return e.SourceASN < o.SourceASN
}

// ribHeap implements container/heap.Interface over ribEntry, ordered
// so Pop yields the best route first.
type ribHeap []ribEntry

func (h ribHeap) Len() int            { return len(h) }
func (h ribHeap) Less(i, j int) bool  { return h[i].less(h[j]) }
func (h ribHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *ribHeap) Push(x interface{}) { *h = append(*h, x.(ribEntry)) }
func (h *ribHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// removeSource deletes the at-most-one entry sourced from asn,
// preserving the heap invariant. Mirrors the teacher's removeOldPath:
// every neighbour may hold at most one outstanding announcement in
// our RIB.
func (h *ribHeap) removeSource(asn int) {
	for i, e := range *h {
		if e.SourceASN == asn {
			heap.Remove(h, i)
			return
		}
	}
}

// copyBounded returns a copy of at most maxItems entries, in their
// current slice order. Mirrors the teacher's makeSmartCopy, used to
// bound the hijack-mode checkpoint on dense nodes.
func (h ribHeap) copyBounded(maxItems int) ribHeap {
	n := len(h)
	if n > maxItems {
		n = maxItems
	}
	out := make(ribHeap, n)
	copy(out, h[:n])
	return out
}

func (h ribHeap) copyAll() ribHeap {
	out := make(ribHeap, len(h))
	copy(out, h)
	return out
}
