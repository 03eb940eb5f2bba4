package fst

// NewLinearAcceptor builds the chain automaton that accepts exactly the
// given label sequence, echoing it unchanged on the output side. Every
// arc and the single final state carry WeightOne, so a composition with
// it is weighted entirely by the other operand.
func NewLinearAcceptor(labels []Label) *FST {
	f := New()
	s := f.AddState()
	f.SetStart(s)
	for _, l := range labels {
		next := f.AddState()
		f.AddArc(s, Arc{ILabel: l, OLabel: l, Weight: WeightOne(), Next: next})
		s = next
	}
	f.SetFinal(s, WeightOne())
	return f
}
