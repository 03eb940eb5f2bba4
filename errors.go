package g2p

import (
	"errors"
	"fmt"

	"github.com/ieee0824/g2p-go/fst"
)

// ErrNoPathFound is returned when the input word has no accepting path
// through the model's transducer. Expected for words structurally
// incompatible with the training data.
var ErrNoPathFound = errors.New("no path through model for input word")

// UnknownSymbolError is returned when a character of the input word is
// absent from the model's input symbol table. Expected for
// out-of-vocabulary characters.
type UnknownSymbolError struct {
	Symbol rune
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("symbol %q not found in the model's input symbol table", e.Symbol)
}

// CompositionError wraps a failure while composing the input acceptor
// with the model transducer. It signals an internal inconsistency in
// the model, not bad input.
type CompositionError struct {
	Err error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("composing input with model: %v", e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}

// DanglingLabelError is returned when a label on the best path has no
// entry in the output symbol table. It signals model corruption.
type DanglingLabelError struct {
	Label fst.Label
}

func (e *DanglingLabelError) Error() string {
	return fmt.Sprintf("label %d has no entry in the output symbol table", e.Label)
}
