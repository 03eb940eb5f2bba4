package fst

// Label is a dense integer id for a symbol within one SymbolTable.
type Label = int

// Epsilon is the reserved label meaning "no symbol consumed/produced".
const Epsilon Label = 0

// EpsilonSymbol is the conventional textual name for the epsilon label.
const EpsilonSymbol = "<eps>"

// SymbolTable is a bidirectional mapping between symbol strings and
// labels. Label 0 is always epsilon. A table is append-only; entries
// are never removed or reassigned.
type SymbolTable struct {
	symbols []string        // index = label
	labels  map[string]Label
}

// NewSymbolTable creates a table containing only the epsilon entry.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		symbols: []string{EpsilonSymbol},
		labels:  map[string]Label{EpsilonSymbol: Epsilon},
	}
}

// Add inserts sym and returns its label. If sym is already present its
// existing label is returned.
func (t *SymbolTable) Add(sym string) Label {
	if l, ok := t.labels[sym]; ok {
		return l
	}
	l := len(t.symbols)
	t.symbols = append(t.symbols, sym)
	t.labels[sym] = l
	return l
}

// AddWithLabel inserts sym at an explicit label, growing the table as
// needed. Gaps are left unnamed. Used by the text-format loader, where
// the symbol file dictates label numbering.
func (t *SymbolTable) AddWithLabel(sym string, l Label) {
	if l < 0 {
		return
	}
	for len(t.symbols) <= l {
		t.symbols = append(t.symbols, "")
	}
	t.symbols[l] = sym
	t.labels[sym] = l
}

// Label returns the label for sym.
func (t *SymbolTable) Label(sym string) (Label, bool) {
	l, ok := t.labels[sym]
	return l, ok
}

// Symbol returns the symbol for label l.
func (t *SymbolTable) Symbol(l Label) (string, bool) {
	if l < 0 || l >= len(t.symbols) || t.symbols[l] == "" && l != Epsilon {
		return "", false
	}
	return t.symbols[l], true
}

// Len returns the number of label slots in the table, including epsilon.
func (t *SymbolTable) Len() int {
	return len(t.symbols)
}
