// Package fst implements weighted finite-state transducers over the
// tropical semiring: the automaton representation, symbol tables,
// linear acceptors, composition, shortest-path extraction, and model
// persistence.
package fst

import "fmt"

// StateID identifies a state within one FST.
type StateID = int

// NoState marks an unset state reference.
const NoState StateID = -1

// Arc is a single weighted transition.
type Arc struct {
	ILabel Label
	OLabel Label
	Weight Weight
	Next   StateID
}

// FST is a weighted finite-state transducer. States are numbered in
// creation order; arcs out of a state keep insertion order. Both
// orders are load-bearing: composition and shortest-path break ties by
// them, which is what makes decoding deterministic.
type FST struct {
	arcs  [][]Arc  // arcs[s] = outgoing arcs of state s
	final []Weight // WeightZero() = not final
	start StateID

	isyms *SymbolTable
	osyms *SymbolTable
}

// New creates an empty FST with no states and no start state.
func New() *FST {
	return &FST{start: NoState}
}

// AddState appends a new non-final state and returns its id.
func (f *FST) AddState() StateID {
	s := len(f.arcs)
	f.arcs = append(f.arcs, nil)
	f.final = append(f.final, WeightZero())
	return s
}

// NumStates returns the number of states.
func (f *FST) NumStates() int {
	return len(f.arcs)
}

func (f *FST) validState(s StateID) bool {
	return s >= 0 && s < len(f.arcs)
}

// SetStart designates s as the start state.
func (f *FST) SetStart(s StateID) error {
	if !f.validState(s) {
		return fmt.Errorf("set start: no such state %d", s)
	}
	f.start = s
	return nil
}

// Start returns the start state, or NoState if none is set.
func (f *FST) Start() StateID {
	return f.start
}

// SetFinal marks s final with weight w. WeightZero() clears finality.
func (f *FST) SetFinal(s StateID, w Weight) error {
	if !f.validState(s) {
		return fmt.Errorf("set final: no such state %d", s)
	}
	f.final[s] = w
	return nil
}

// Final returns the final weight of s and whether s is final.
func (f *FST) Final(s StateID) (Weight, bool) {
	if !f.validState(s) || f.final[s].IsZero() {
		return WeightZero(), false
	}
	return f.final[s], true
}

// AddArc appends an arc leaving s.
func (f *FST) AddArc(s StateID, a Arc) error {
	if !f.validState(s) {
		return fmt.Errorf("add arc: no such source state %d", s)
	}
	if !f.validState(a.Next) {
		return fmt.Errorf("add arc: no such destination state %d", a.Next)
	}
	f.arcs[s] = append(f.arcs[s], a)
	return nil
}

// Arcs returns the outgoing arcs of s in insertion order. The returned
// slice is owned by the FST and must not be modified.
func (f *FST) Arcs(s StateID) []Arc {
	if !f.validState(s) {
		return nil
	}
	return f.arcs[s]
}

// NumArcs returns the total arc count across all states.
func (f *FST) NumArcs() int {
	n := 0
	for _, as := range f.arcs {
		n += len(as)
	}
	return n
}

// InputSymbols returns the input symbol table, or nil.
func (f *FST) InputSymbols() *SymbolTable {
	return f.isyms
}

// OutputSymbols returns the output symbol table, or nil.
func (f *FST) OutputSymbols() *SymbolTable {
	return f.osyms
}

// SetInputSymbols attaches the input symbol table.
func (f *FST) SetInputSymbols(t *SymbolTable) {
	f.isyms = t
}

// SetOutputSymbols attaches the output symbol table.
func (f *FST) SetOutputSymbols(t *SymbolTable) {
	f.osyms = t
}

// Validate checks structural invariants: a start state is set, all arc
// endpoints exist, and every arc label resolves through the attached
// symbol tables (when present).
func (f *FST) Validate() error {
	if f.start == NoState {
		return fmt.Errorf("validate: no start state")
	}
	if !f.validState(f.start) {
		return fmt.Errorf("validate: start state %d out of range", f.start)
	}
	for s, as := range f.arcs {
		for i, a := range as {
			if !f.validState(a.Next) {
				return fmt.Errorf("validate: state %d arc %d: destination %d out of range", s, i, a.Next)
			}
			if f.isyms != nil {
				if _, ok := f.isyms.Symbol(a.ILabel); !ok {
					return fmt.Errorf("validate: state %d arc %d: input label %d not in symbol table", s, i, a.ILabel)
				}
			}
			if f.osyms != nil {
				if _, ok := f.osyms.Symbol(a.OLabel); !ok {
					return fmt.Errorf("validate: state %d arc %d: output label %d not in symbol table", s, i, a.OLabel)
				}
			}
		}
	}
	return nil
}
