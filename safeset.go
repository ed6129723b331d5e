/* ============================================================= *\
   safeset.go

   A set protected by a sync.Mutex, implementation using a map.
   Trimmed from the teacher's version to the operations this domain
   calls: it is the concurrent accumulator used while fanning out
   delegated-file parsing across a worker pool (delegated.go).
\* ============================================================= */

package bgpsim

import "sync"

type safeSet struct {
	mux sync.Mutex
	set map[string]struct{}
}

func createSafeSet() *safeSet {
	s := new(safeSet)
	s.set = make(map[string]struct{})
	return s
}

func (s *safeSet) add(key string) {
	s.mux.Lock()
	s.set[key] = struct{}{}
	s.mux.Unlock()
}

func (s *safeSet) unsafeKeys() []string {
	keys := make([]string, 0, len(s.set))
	for k := range s.set {
		keys = append(keys, k)
	}
	return keys
}

func (s *safeSet) len() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.set)
}
