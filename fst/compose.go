package fst

import "fmt"

// statePair is a product state (state of A, state of B).
type statePair struct {
	a StateID
	b StateID
}

// Compose builds the product automaton C of A and B: C transduces x to
// z with weight w exactly when A transduces x to some y and B
// transduces y to z, with w the combined weight of the two paths.
//
// Matching follows standard FST composition semantics. A non-epsilon
// output label of A pairs with an equal input label of B as one joint
// step. An epsilon output on A advances A alone; an epsilon input on B
// advances B alone. Epsilon is never matched against a real label.
//
// Product states are discovered breadth-first from (startA, startB) and
// numbered in discovery order; unreachable pairs are never built.
func Compose(a, b *FST) (*FST, error) {
	if a.Start() == NoState {
		return nil, fmt.Errorf("compose: left operand has no start state")
	}
	if b.Start() == NoState {
		return nil, fmt.Errorf("compose: right operand has no start state")
	}

	c := New()
	c.SetInputSymbols(a.InputSymbols())
	c.SetOutputSymbols(b.OutputSymbols())

	ids := make(map[statePair]StateID)
	var queue []statePair

	// discover returns the product state id for p, creating it and
	// enqueueing it on first sight.
	discover := func(p statePair) StateID {
		if id, ok := ids[p]; ok {
			return id
		}
		id := c.AddState()
		ids[p] = id
		queue = append(queue, p)
		return id
	}

	start := statePair{a.Start(), b.Start()}
	c.SetStart(discover(start))

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		src := ids[p]

		if wa, okA := a.Final(p.a); okA {
			if wb, okB := b.Final(p.b); okB {
				c.SetFinal(src, wa.Times(wb))
			}
		}

		for _, arcA := range a.Arcs(p.a) {
			if arcA.OLabel == Epsilon {
				// A emits nothing; B stays put.
				dst := discover(statePair{arcA.Next, p.b})
				c.AddArc(src, Arc{
					ILabel: arcA.ILabel,
					OLabel: Epsilon,
					Weight: arcA.Weight,
					Next:   dst,
				})
				continue
			}
			for _, arcB := range b.Arcs(p.b) {
				if arcB.ILabel != arcA.OLabel {
					continue
				}
				dst := discover(statePair{arcA.Next, arcB.Next})
				c.AddArc(src, Arc{
					ILabel: arcA.ILabel,
					OLabel: arcB.OLabel,
					Weight: arcA.Weight.Times(arcB.Weight),
					Next:   dst,
				})
			}
		}

		// B consumes nothing; A stays put.
		for _, arcB := range b.Arcs(p.b) {
			if arcB.ILabel != Epsilon {
				continue
			}
			dst := discover(statePair{p.a, arcB.Next})
			c.AddArc(src, Arc{
				ILabel: Epsilon,
				OLabel: arcB.OLabel,
				Weight: arcB.Weight,
				Next:   dst,
			})
		}
	}

	return c, nil
}
