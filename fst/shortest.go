package fst

import (
	"container/heap"
	"errors"
)

// ErrNoAcceptingPath is returned by ShortestPath when no final state is
// reachable from the start state.
var ErrNoAcceptingPath = errors.New("no accepting path")

// Path is one start-to-final path through an FST.
type Path struct {
	Arcs   []Arc
	Weight Weight // sum of arc weights plus the final weight
}

// OLabels returns the path's non-epsilon output labels in order.
func (p *Path) OLabels() []Label {
	out := make([]Label, 0, len(p.Arcs))
	for _, a := range p.Arcs {
		if a.OLabel != Epsilon {
			out = append(out, a.OLabel)
		}
	}
	return out
}

// ILabels returns the path's non-epsilon input labels in order.
func (p *Path) ILabels() []Label {
	out := make([]Label, 0, len(p.Arcs))
	for _, a := range p.Arcs {
		if a.ILabel != Epsilon {
			out = append(out, a.ILabel)
		}
	}
	return out
}

// distHeap orders states by (distance, state id). The id component
// fixes the tie-break so identical inputs settle states in the same
// order every run.
type distHeap struct {
	states []StateID
	dist   []Weight
	pos    []int // pos[s] = index of s in states, -1 if absent
}

func (h *distHeap) Len() int { return len(h.states) }

func (h *distHeap) Less(i, j int) bool {
	si, sj := h.states[i], h.states[j]
	if h.dist[si] != h.dist[sj] {
		return h.dist[si].Less(h.dist[sj])
	}
	return si < sj
}

func (h *distHeap) Swap(i, j int) {
	h.states[i], h.states[j] = h.states[j], h.states[i]
	h.pos[h.states[i]] = i
	h.pos[h.states[j]] = j
}

func (h *distHeap) Push(x any) {
	s := x.(StateID)
	h.pos[s] = len(h.states)
	h.states = append(h.states, s)
}

func (h *distHeap) Pop() any {
	n := len(h.states) - 1
	s := h.states[n]
	h.states = h.states[:n]
	h.pos[s] = -1
	return s
}

// pred records how a state's best-known distance was last improved.
type pred struct {
	state StateID // source of the improving arc
	arc   Arc
}

// ShortestPath returns the minimum-weight accepting path of f under the
// tropical semiring, using Dijkstra relaxation (valid because weights
// are non-negative). Among final states tying on total weight, the one
// with the lowest id wins; relaxation keeps the first predecessor seen
// on equal distances. Both rules make the result deterministic.
func ShortestPath(f *FST) (*Path, error) {
	start := f.Start()
	if start == NoState {
		return nil, errors.New("shortest path: no start state")
	}

	n := f.NumStates()
	dist := make([]Weight, n)
	preds := make([]pred, n)
	settled := make([]bool, n)
	for i := range dist {
		dist[i] = WeightZero()
		preds[i].state = NoState
	}
	dist[start] = WeightOne()

	h := &distHeap{dist: dist, pos: make([]int, n)}
	for i := range h.pos {
		h.pos[i] = -1
	}
	heap.Push(h, start)

	for h.Len() > 0 {
		s := heap.Pop(h).(StateID)
		if settled[s] {
			continue
		}
		settled[s] = true

		for _, a := range f.Arcs(s) {
			nd := dist[s].Times(a.Weight)
			if !nd.Less(dist[a.Next]) {
				continue
			}
			dist[a.Next] = nd
			preds[a.Next] = pred{state: s, arc: a}
			if h.pos[a.Next] >= 0 {
				heap.Fix(h, h.pos[a.Next])
			} else if !settled[a.Next] {
				heap.Push(h, a.Next)
			}
		}
	}

	// Pick the best final state; strict Less keeps the lowest id on ties.
	best := NoState
	bestW := WeightZero()
	for s := 0; s < n; s++ {
		fw, ok := f.Final(s)
		if !ok || dist[s].IsZero() {
			continue
		}
		total := dist[s].Times(fw)
		if best == NoState || total.Less(bestW) {
			best = s
			bestW = total
		}
	}
	if best == NoState {
		return nil, ErrNoAcceptingPath
	}

	// Walk predecessor pointers back to the start, then reverse.
	var arcs []Arc
	for s := best; s != start; s = preds[s].state {
		arcs = append(arcs, preds[s].arc)
	}
	for i, j := 0, len(arcs)-1; i < j; i, j = i+1, j-1 {
		arcs[i], arcs[j] = arcs[j], arcs[i]
	}

	return &Path{Arcs: arcs, Weight: bestW}, nil
}
