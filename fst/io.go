package fst

import (
	"encoding/gob"
	"fmt"
	"io"
	"math"
)

// serializable types for gob encoding. Final weights use a negative
// sentinel instead of +Inf because gob round-trips infinities but a
// flat slice with an in-band marker keeps the format obvious.
const notFinal = -1

type serializedFST struct {
	Start int
	Final []float64         // notFinal = state is not final
	Arcs  [][]serializedArc // per state
	ISyms []string          // index = label, "" = gap
	OSyms []string
}

type serializedArc struct {
	ILabel int
	OLabel int
	Weight float64
	Next   int
}

func serializeSymbols(t *SymbolTable) []string {
	if t == nil {
		return nil
	}
	out := make([]string, t.Len())
	for l := 0; l < t.Len(); l++ {
		if s, ok := t.Symbol(l); ok {
			out[l] = s
		}
	}
	return out
}

func deserializeSymbols(syms []string) *SymbolTable {
	if syms == nil {
		return nil
	}
	t := NewSymbolTable()
	for l, s := range syms {
		if l == Epsilon || s == "" {
			continue
		}
		t.AddWithLabel(s, l)
	}
	return t
}

// Save serializes the FST, including both symbol tables, using gob.
func (f *FST) Save(w io.Writer) error {
	sf := serializedFST{
		Start: f.start,
		Final: make([]float64, len(f.final)),
		Arcs:  make([][]serializedArc, len(f.arcs)),
		ISyms: serializeSymbols(f.isyms),
		OSyms: serializeSymbols(f.osyms),
	}
	for s, fw := range f.final {
		if fw.IsZero() {
			sf.Final[s] = notFinal
		} else {
			sf.Final[s] = float64(fw)
		}
	}
	for s, as := range f.arcs {
		sas := make([]serializedArc, len(as))
		for i, a := range as {
			sas[i] = serializedArc{
				ILabel: a.ILabel,
				OLabel: a.OLabel,
				Weight: float64(a.Weight),
				Next:   a.Next,
			}
		}
		sf.Arcs[s] = sas
	}
	return gob.NewEncoder(w).Encode(sf)
}

// Load deserializes an FST written by Save and validates its
// structural invariants.
func Load(r io.Reader) (*FST, error) {
	var sf serializedFST
	if err := gob.NewDecoder(r).Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if len(sf.Final) != len(sf.Arcs) {
		return nil, fmt.Errorf("decode model: %d final weights for %d states", len(sf.Final), len(sf.Arcs))
	}

	f := New()
	for range sf.Arcs {
		f.AddState()
	}
	if err := f.SetStart(sf.Start); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	for s, fw := range sf.Final {
		if fw == notFinal {
			continue
		}
		if fw < 0 || math.IsNaN(fw) {
			return nil, fmt.Errorf("decode model: state %d has invalid final weight %v", s, fw)
		}
		f.SetFinal(s, Weight(fw))
	}
	for s, sas := range sf.Arcs {
		for _, sa := range sas {
			if sa.Weight < 0 || math.IsNaN(sa.Weight) {
				return nil, fmt.Errorf("decode model: state %d has arc with invalid weight %v", s, sa.Weight)
			}
			if err := f.AddArc(s, Arc{
				ILabel: sa.ILabel,
				OLabel: sa.OLabel,
				Weight: Weight(sa.Weight),
				Next:   sa.Next,
			}); err != nil {
				return nil, fmt.Errorf("decode model: %w", err)
			}
		}
	}
	f.SetInputSymbols(deserializeSymbols(sf.ISyms))
	f.SetOutputSymbols(deserializeSymbols(sf.OSyms))

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return f, nil
}
