/* ============================================================= *\
   simulator.go

   BFS propagation driver: seeds an announcement at a source ASN and
   drains a FIFO queue of (receiver, path) messages until either the
   queue empties or a message reaches a detector node.

   Grounded on original_source/BGPSimulator.py. The two unreferenced
   aliases in the original (self.needsToBeReset, and getUsedBGPNodes'
   use of asns instead of allocatedASNs elsewhere) are not reproduced:
   usedNodes is the sole authoritative record of touched ASNs.
\* ============================================================= */

package bgpsim

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	pool "github.com/Emeline-1/pool"
)

// Simulator drives one BGP propagation run over a *Graph. A Simulator
// must not be shared across concurrent Simulate calls; see
// BatchSimulate for running many sources in parallel.
type Simulator struct {
	graph *Graph

	usesValleyFree bool
	inHijackMode   bool

	caughtBy  int // 0 when not caught
	usedNodes map[int]struct{}
	queue     []queuedMessage
}

type queuedMessage struct {
	asn  int
	path string
}

// NewSimulator wraps g for simulation. The Simulator does not own g;
// multiple Simulators may wrap distinct Graph instances (e.g. from
// Graph.Clone) concurrently.
func NewSimulator(g *Graph) *Simulator {
	return &Simulator{
		graph:     g,
		usedNodes: make(map[int]struct{}),
	}
}

// SetValleyFree toggles valley-free export filtering on every node in
// the wrapped graph.
func (s *Simulator) SetValleyFree(useValleyFree bool) {
	s.usesValleyFree = useValleyFree
	for _, n := range s.graph.Nodes {
		n.SetTrafficPrinciple(useValleyFree)
	}
}

// SetToHijack puts every node into hijack mode, checkpointing
// (continueWithHijack=true) or restoring (false) its RIB state.
func (s *Simulator) SetToHijack(continueWithHijack bool) {
	s.inHijackMode = true
	for _, n := range s.graph.Nodes {
		n.SetRIB(continueWithHijack)
	}
}

// Reset clears per-run state. In hijack mode, every touched node is
// restored from its checkpoint rather than wiped, so a new hijack can
// be resimulated from the same pre-hijack baseline.
func (s *Simulator) Reset() {
	for asn := range s.usedNodes {
		n, ok := s.graph.Nodes[asn]
		if !ok {
			continue
		}
		if s.inHijackMode {
			n.ResetFromBackup()
		} else {
			n.Reset()
		}
	}
	s.caughtBy = 0
	s.queue = nil
	s.usedNodes = make(map[int]struct{})
}

// Simulate runs a propagation starting from sourceASN. Equivalent to
// SimulateContext(context.Background(), sourceASN).
func (s *Simulator) Simulate(sourceASN int) error {
	return s.SimulateContext(context.Background(), sourceASN)
}

// SimulateContext runs a propagation starting from sourceASN,
// checking ctx once per dequeued message so a caller can bound a
// batch of runs with a deadline or cancellation.
func (s *Simulator) SimulateContext(ctx context.Context, sourceASN int) error {
	if _, ok := s.graph.Nodes[sourceASN]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownASN, sourceASN)
	}

	s.usedNodes[sourceASN] = struct{}{}
	if err := s.enqueueFrom(sourceASN); err != nil {
		return err
	}

	for len(s.queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg := s.queue[0]
		s.queue = s.queue[1:]

		node, ok := s.graph.Nodes[msg.asn]
		if !ok {
			continue
		}

		s.usedNodes[msg.asn] = struct{}{}
		updated, err := node.UpdateSelectedPath(msg.path)
		if err != nil && !errors.Is(err, ErrInvalidPath) {
			return err
		}
		if updated {
			if err := s.enqueueFrom(msg.asn); err != nil && !errors.Is(err, ErrInvalidPath) {
				return err
			}
		}

		if node.IsDetector() {
			s.caughtBy = msg.asn
			break
		}
	}
	return nil
}

func (s *Simulator) enqueueFrom(asn int) error {
	node, err := s.graph.Node(asn)
	if err != nil {
		return err
	}
	path, recipients, err := node.PreparePublish()
	if err != nil {
		return err
	}
	for _, nb := range recipients {
		s.queue = append(s.queue, queuedMessage{asn: nb, path: path})
	}
	return nil
}

// IsCaught reports whether a propagation since the last Reset reached
// a detector node.
func (s *Simulator) IsCaught() bool {
	return s.caughtBy != 0
}

// CaughtBy returns the detector ASN that ended the run, or 0 if none.
func (s *Simulator) CaughtBy() int {
	return s.caughtBy
}

// UsedNodes returns every ASN touched since the last Reset (all runs
// in between are accumulated).
func (s *Simulator) UsedNodes() []int {
	out := make([]int, 0, len(s.usedNodes))
	for asn := range s.usedNodes {
		out = append(out, asn)
	}
	return out
}

// SelectedPaths returns the winning path for every touched ASN.
func (s *Simulator) SelectedPaths() map[int]string {
	out := make(map[int]string, len(s.usedNodes))
	for asn := range s.usedNodes {
		if n, ok := s.graph.Nodes[asn]; ok {
			if r, ok := n.SelectedRoute(); ok {
				out[asn] = r.Path
			}
		}
	}
	return out
}

// AlternativePaths returns every touched ASN's rejected alternative
// routes.
func (s *Simulator) AlternativePaths() map[int][]RouteInfo {
	out := make(map[int][]RouteInfo, len(s.usedNodes))
	for asn := range s.usedNodes {
		if n, ok := s.graph.Nodes[asn]; ok {
			out[asn] = n.AlternativeRoutes()
		}
	}
	return out
}

// RunResult is one BatchSimulate entry.
type RunResult struct {
	SourceASN     int
	Caught        bool
	CaughtBy      int
	UsedNodes     []int
	SelectedPaths map[int]string
	Err           error
}

// BatchSimulate runs one independent Simulate per source ASN
// concurrently over workers goroutines. Each run gets its own
// Graph.Clone so RIB mutation never crosses shards, following the
// teacher's pool.Launch_pool fan-out over independent per-AS work.
func BatchSimulate(g *Graph, sources []int, workers int) map[int]*RunResult {
	items := make([]string, len(sources))
	for i, asn := range sources {
		items[i] = strconv.Itoa(asn)
	}

	results := make(map[int]*RunResult, len(sources))
	var mux sync.Mutex

	runOne := func(item string) {
		asn, err := strconv.Atoi(item)
		if err != nil {
			return
		}

		shard := g.Clone()
		sim := NewSimulator(shard)
		res := &RunResult{SourceASN: asn}

		if err := sim.Simulate(asn); err != nil {
			res.Err = err
		} else {
			res.Caught = sim.IsCaught()
			res.CaughtBy = sim.CaughtBy()
			res.UsedNodes = sim.UsedNodes()
			res.SelectedPaths = sim.SelectedPaths()
		}

		mux.Lock()
		results[asn] = res
		mux.Unlock()
	}
	pool.Launch_pool(workers, items, runOne)

	return results
}
