// Package g2p converts written words into phonetic transcriptions
// using a pretrained weighted finite-state transducer, in the manner of
// phonetisaurus: the word is encoded as a linear acceptor, composed
// with the transducer, and the cheapest accepting path is decoded into
// a phoneme string.
package g2p

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ieee0824/g2p-go/fst"
)

// Model-convention output tokens. Phonetisaurus-trained transducers
// emit these as part of their alignment scheme; they are properties of
// the training convention, not of this package.
const (
	// skipToken marks an output position that produces no phoneme.
	skipToken = "_"
	// delimiterToken joins multi-phoneme chunks and is stripped from
	// the final string.
	delimiterToken = "|"
)

// Model is a loaded grapheme-to-phoneme transducer. It is immutable
// after load: any number of goroutines may call PhonemizeWord on the
// same Model concurrently.
type Model struct {
	t *fst.FST
}

// LoadModel reads a binary model from r.
func LoadModel(r io.Reader) (*Model, error) {
	t, err := fst.Load(r)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if t.InputSymbols() == nil || t.InputSymbols().Len() <= 1 {
		return nil, fmt.Errorf("load model: no input symbol table")
	}
	if t.OutputSymbols() == nil || t.OutputSymbols().Len() <= 1 {
		return nil, fmt.Errorf("load model: no output symbol table")
	}
	return &Model{t: t}, nil
}

// LoadModelFile reads a binary model from a file path.
func LoadModelFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()
	return LoadModel(f)
}

// LoadModelBytes reads a binary model from an in-memory buffer,
// typically one embedded with go:embed.
func LoadModelBytes(b []byte) (*Model, error) {
	return LoadModel(bytes.NewReader(b))
}

// NewModel wraps an already-constructed transducer. The caller must not
// modify t afterwards. Both symbol tables must be attached.
func NewModel(t *fst.FST) (*Model, error) {
	if t.InputSymbols() == nil || t.OutputSymbols() == nil {
		return nil, fmt.Errorf("new model: transducer is missing symbol tables")
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("new model: %w", err)
	}
	return &Model{t: t}, nil
}

// FST returns the underlying transducer, read-only.
func (m *Model) FST() *fst.FST {
	return m.t
}

// PhonemizeWord returns the most likely phoneme sequence for word and
// its negative log likelihood score.
//
// Error cases: *UnknownSymbolError for a character outside the model's
// alphabet, ErrNoPathFound when the word has no accepting path,
// *CompositionError and *DanglingLabelError for model-integrity
// violations.
func (m *Model) PhonemizeWord(word string) (*PhonetizationResult, error) {
	labels, err := m.encodeWord(word)
	if err != nil {
		return nil, err
	}

	acceptor := fst.NewLinearAcceptor(labels)
	acceptor.SetInputSymbols(m.t.InputSymbols())
	acceptor.SetOutputSymbols(m.t.InputSymbols())

	composed, err := fst.Compose(acceptor, m.t)
	if err != nil {
		return nil, &CompositionError{Err: err}
	}

	path, err := fst.ShortestPath(composed)
	if err != nil {
		if errors.Is(err, fst.ErrNoAcceptingPath) {
			return nil, ErrNoPathFound
		}
		return nil, err
	}

	phonemes, err := m.decodePath(path)
	if err != nil {
		return nil, err
	}

	return &PhonetizationResult{
		Phonemes:    phonemes,
		NegLogScore: float64(path.Weight),
	}, nil
}

// encodeWord resolves the word's graphemes into input labels. The word
// is NFC-normalized first so composed and decomposed spellings of the
// same character hit the same table entry.
func (m *Model) encodeWord(word string) ([]fst.Label, error) {
	isyms := m.t.InputSymbols()
	var labels []fst.Label
	for _, r := range norm.NFC.String(word) {
		l, ok := isyms.Label(string(r))
		if !ok {
			return nil, &UnknownSymbolError{Symbol: r}
		}
		labels = append(labels, l)
	}
	return labels, nil
}

// decodePath resolves the path's output labels into the phoneme
// string. Skip tokens contribute nothing, delimiter characters are
// stripped from each token, and a token that was nothing but
// delimiters is dropped so the single-space join stays clean.
func (m *Model) decodePath(path *fst.Path) (string, error) {
	osyms := m.t.OutputSymbols()
	var tokens []string
	for _, l := range path.OLabels() {
		sym, ok := osyms.Symbol(l)
		if !ok {
			return "", &DanglingLabelError{Label: l}
		}
		if sym == skipToken {
			continue
		}
		sym = strings.ReplaceAll(sym, delimiterToken, "")
		if sym == "" {
			continue
		}
		tokens = append(tokens, sym)
	}
	return strings.Join(tokens, " "), nil
}
