package fst

import (
	"reflect"
	"sort"
	"testing"
)

// enumeratePaths lists every accepting path of an acyclic FST as
// (ilabels, olabels, total weight), in DFS order.
type flatPath struct {
	in     []Label
	out    []Label
	weight Weight
}

func enumeratePaths(t *testing.T, f *FST) []flatPath {
	t.Helper()
	var paths []flatPath
	var walk func(s StateID, in, out []Label, w Weight, depth int)
	walk = func(s StateID, in, out []Label, w Weight, depth int) {
		if depth > 64 {
			t.Fatal("path enumeration too deep; FST is not acyclic?")
		}
		if fw, ok := f.Final(s); ok {
			paths = append(paths, flatPath{
				in:     append([]Label(nil), in...),
				out:    append([]Label(nil), out...),
				weight: w.Times(fw),
			})
		}
		for _, a := range f.Arcs(s) {
			nin, nout := in, out
			if a.ILabel != Epsilon {
				nin = append(append([]Label(nil), in...), a.ILabel)
			}
			if a.OLabel != Epsilon {
				nout = append(append([]Label(nil), out...), a.OLabel)
			}
			walk(a.Next, nin, nout, w.Times(a.Weight), depth+1)
		}
	}
	walk(f.Start(), nil, nil, WeightOne(), 0)
	return paths
}

// chainTransducer builds a linear transducer over the given
// (ilabel, olabel, weight) triples with the given final weight.
func chainTransducer(triples [][3]float64, finalWeight Weight) *FST {
	f := New()
	s := f.AddState()
	f.SetStart(s)
	for _, tr := range triples {
		next := f.AddState()
		f.AddArc(s, Arc{ILabel: Label(tr[0]), OLabel: Label(tr[1]), Weight: Weight(tr[2]), Next: next})
		s = next
	}
	f.SetFinal(s, finalWeight)
	return f
}

func TestCompose_LinearMatch(t *testing.T) {
	// Acceptor for [1 2], transducer 1->10 (0.5), 2->20 (0.25), final 0.75.
	a := NewLinearAcceptor([]Label{1, 2})
	b := chainTransducer([][3]float64{{1, 10, 0.5}, {2, 20, 0.25}}, 0.75)

	c, err := Compose(a, b)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	paths := enumeratePaths(t, c)
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	p := paths[0]
	if !reflect.DeepEqual(p.in, []Label{1, 2}) {
		t.Errorf("input labels = %v, want [1 2]", p.in)
	}
	if !reflect.DeepEqual(p.out, []Label{10, 20}) {
		t.Errorf("output labels = %v, want [10 20]", p.out)
	}
	if p.weight != 1.5 {
		t.Errorf("weight = %v, want 1.5", p.weight)
	}
}

func TestCompose_NoMatch(t *testing.T) {
	a := NewLinearAcceptor([]Label{1})
	b := chainTransducer([][3]float64{{2, 20, 0}}, 0)

	c, err := Compose(a, b)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if paths := enumeratePaths(t, c); len(paths) != 0 {
		t.Errorf("got %d accepting paths for disjoint labels, want 0", len(paths))
	}
}

func TestCompose_EpsilonInputOnRight(t *testing.T) {
	// B inserts an output symbol via an epsilon-input arc between two
	// real matches: 1->10, eps->99, 2->20.
	a := NewLinearAcceptor([]Label{1, 2})
	b := chainTransducer([][3]float64{{1, 10, 0.5}, {0, 99, 0.125}, {2, 20, 0.25}}, 0)

	c, err := Compose(a, b)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	paths := enumeratePaths(t, c)
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	p := paths[0]
	if !reflect.DeepEqual(p.in, []Label{1, 2}) {
		t.Errorf("input labels = %v, want [1 2]", p.in)
	}
	if !reflect.DeepEqual(p.out, []Label{10, 99, 20}) {
		t.Errorf("output labels = %v, want [10 99 20]", p.out)
	}
	if p.weight != 0.875 {
		t.Errorf("weight = %v, want 0.875", p.weight)
	}
}

func TestCompose_EpsilonOutputOnLeft(t *testing.T) {
	// A deletes a symbol: 1:eps then 2:2. B only consumes the 2.
	a := chainTransducer([][3]float64{{1, 0, 0.5}, {2, 2, 0}}, 0)
	b := chainTransducer([][3]float64{{2, 20, 0.25}}, 0)

	c, err := Compose(a, b)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	paths := enumeratePaths(t, c)
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	p := paths[0]
	if !reflect.DeepEqual(p.in, []Label{1, 2}) {
		t.Errorf("input labels = %v, want [1 2]", p.in)
	}
	if !reflect.DeepEqual(p.out, []Label{20}) {
		t.Errorf("output labels = %v, want [20]", p.out)
	}
	if p.weight != 0.75 {
		t.Errorf("weight = %v, want 0.75", p.weight)
	}
}

func TestCompose_EpsilonNeverMatchesRealLabel(t *testing.T) {
	// A outputs only epsilon; B consumes only a real label. The two
	// one-sided advances must not fuse into a joint step, so B can
	// never reach its final state.
	a := chainTransducer([][3]float64{{1, 0, 0}}, 0)
	b := chainTransducer([][3]float64{{5, 50, 0}}, 0)

	c, err := Compose(a, b)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if paths := enumeratePaths(t, c); len(paths) != 0 {
		t.Errorf("epsilon matched a real label: %d accepting paths", len(paths))
	}
}

func TestCompose_NondeterministicAlternatives(t *testing.T) {
	// B offers two outputs for input 1 at different weights; both
	// survive composition.
	a := NewLinearAcceptor([]Label{1})
	b := New()
	s0 := b.AddState()
	s1 := b.AddState()
	b.SetStart(s0)
	b.AddArc(s0, Arc{ILabel: 1, OLabel: 10, Weight: 0.5, Next: s1})
	b.AddArc(s0, Arc{ILabel: 1, OLabel: 11, Weight: 0.25, Next: s1})
	b.SetFinal(s1, 0)

	c, err := Compose(a, b)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	paths := enumeratePaths(t, c)
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(paths))
	}
	var outs []Label
	for _, p := range paths {
		if len(p.out) != 1 {
			t.Fatalf("path output = %v, want single label", p.out)
		}
		outs = append(outs, p.out[0])
	}
	sort.Ints(outs)
	if !reflect.DeepEqual(outs, []Label{10, 11}) {
		t.Errorf("alternative outputs = %v, want [10 11]", outs)
	}
}

// TestCompose_IdentityRestriction checks the unit-level composition
// property: composing an acceptor with a transducer keeps exactly the
// transducer paths whose input matches the acceptor.
func TestCompose_IdentityRestriction(t *testing.T) {
	// B has two branches: input [1 2] -> [10 20] (weight 0.5) and
	// input [1 3] -> [10 30] (weight 0.25).
	b := New()
	s0 := b.AddState()
	s1 := b.AddState()
	s2 := b.AddState()
	s3 := b.AddState()
	b.SetStart(s0)
	b.AddArc(s0, Arc{ILabel: 1, OLabel: 10, Weight: 0.25, Next: s1})
	b.AddArc(s1, Arc{ILabel: 2, OLabel: 20, Weight: 0.25, Next: s2})
	b.AddArc(s1, Arc{ILabel: 3, OLabel: 30, Weight: 0, Next: s3})
	b.SetFinal(s2, 0)
	b.SetFinal(s3, 0)

	a := NewLinearAcceptor([]Label{1, 3})
	c, err := Compose(a, b)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	paths := enumeratePaths(t, c)
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	if !reflect.DeepEqual(paths[0].out, []Label{10, 30}) {
		t.Errorf("output labels = %v, want [10 30]", paths[0].out)
	}
	if paths[0].weight != 0.25 {
		t.Errorf("weight = %v, want 0.25", paths[0].weight)
	}
}

func TestCompose_FinalWeightCombination(t *testing.T) {
	a := New()
	sa := a.AddState()
	a.SetStart(sa)
	a.SetFinal(sa, 0.5)

	b := New()
	sb := b.AddState()
	b.SetStart(sb)
	b.SetFinal(sb, 0.25)

	c, err := Compose(a, b)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	w, ok := c.Final(c.Start())
	if !ok || w != 0.75 {
		t.Errorf("product final weight = %v, %v; want 0.75, true", w, ok)
	}
}

func TestCompose_FinalRequiresBothSides(t *testing.T) {
	a := New()
	sa := a.AddState()
	a.SetStart(sa)
	a.SetFinal(sa, 0)

	b := New()
	sb := b.AddState()
	b.SetStart(sb) // not final

	c, err := Compose(a, b)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if _, ok := c.Final(c.Start()); ok {
		t.Error("product state final although right side is not")
	}
}

func TestCompose_MissingStart(t *testing.T) {
	ok := NewLinearAcceptor([]Label{1})
	noStart := New()
	noStart.AddState()

	if _, err := Compose(noStart, ok); err == nil {
		t.Error("Compose succeeded with startless left operand")
	}
	if _, err := Compose(ok, noStart); err == nil {
		t.Error("Compose succeeded with startless right operand")
	}
}

func TestCompose_SymbolTablePropagation(t *testing.T) {
	isyms := NewSymbolTable()
	isyms.Add("a")
	osyms := NewSymbolTable()
	osyms.Add("X")

	a := NewLinearAcceptor([]Label{1})
	a.SetInputSymbols(isyms)
	a.SetOutputSymbols(isyms)
	b := chainTransducer([][3]float64{{1, 1, 0}}, 0)
	b.SetInputSymbols(isyms)
	b.SetOutputSymbols(osyms)

	c, err := Compose(a, b)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if c.InputSymbols() != isyms {
		t.Error("composed FST did not inherit the left input table")
	}
	if c.OutputSymbols() != osyms {
		t.Error("composed FST did not inherit the right output table")
	}
}
