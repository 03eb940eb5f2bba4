package fst

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LoadSymbols reads a symbol table in the two-column text format
// emitted alongside text FST dumps: one "symbol label" pair per line,
// whitespace separated. Blank lines and #-comments are skipped.
func LoadSymbols(r io.Reader) (*SymbolTable, error) {
	t := NewSymbolTable()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("symbols line %d: expected 2 fields, got %d", lineNum, len(fields))
		}
		label, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("symbols line %d: bad label %q: %w", lineNum, fields[1], err)
		}
		if label < 0 {
			return nil, fmt.Errorf("symbols line %d: negative label %d", lineNum, label)
		}
		t.AddWithLabel(fields[0], label)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadATT reads an FST in the AT&T text format produced by fstprint:
//
//	src dst isym osym [weight]   arc
//	state [weight]               final state
//
// Symbols are resolved through the given tables; omitted weights
// default to WeightOne. The first state mentioned becomes the start
// state. States are created densely up to the highest id seen.
func LoadATT(r io.Reader, isyms, osyms *SymbolTable) (*FST, error) {
	if isyms == nil || osyms == nil {
		return nil, fmt.Errorf("att: both symbol tables are required")
	}

	f := New()
	f.SetInputSymbols(isyms)
	f.SetOutputSymbols(osyms)

	ensure := func(s int) {
		for f.NumStates() <= s {
			f.AddState()
		}
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch len(fields) {
		case 1, 2: // final state line
			s, err := strconv.Atoi(fields[0])
			if err != nil || s < 0 {
				return nil, fmt.Errorf("att line %d: bad state %q", lineNum, fields[0])
			}
			w := WeightOne()
			if len(fields) == 2 {
				v, err := strconv.ParseFloat(fields[1], 64)
				if err != nil {
					return nil, fmt.Errorf("att line %d: bad final weight %q: %w", lineNum, fields[1], err)
				}
				w = Weight(v)
			}
			ensure(s)
			f.SetFinal(s, w)
			if f.Start() == NoState {
				f.SetStart(s)
			}

		case 4, 5: // arc line
			src, err1 := strconv.Atoi(fields[0])
			dst, err2 := strconv.Atoi(fields[1])
			if err1 != nil || err2 != nil || src < 0 || dst < 0 {
				return nil, fmt.Errorf("att line %d: bad state pair %q %q", lineNum, fields[0], fields[1])
			}
			ilabel, ok := isyms.Label(fields[2])
			if !ok {
				return nil, fmt.Errorf("att line %d: input symbol %q not in table", lineNum, fields[2])
			}
			olabel, ok := osyms.Label(fields[3])
			if !ok {
				return nil, fmt.Errorf("att line %d: output symbol %q not in table", lineNum, fields[3])
			}
			w := WeightOne()
			if len(fields) == 5 {
				v, err := strconv.ParseFloat(fields[4], 64)
				if err != nil {
					return nil, fmt.Errorf("att line %d: bad weight %q: %w", lineNum, fields[4], err)
				}
				w = Weight(v)
			}
			ensure(src)
			ensure(dst)
			f.AddArc(src, Arc{ILabel: ilabel, OLabel: olabel, Weight: w, Next: dst})
			if f.Start() == NoState {
				f.SetStart(src)
			}

		default:
			return nil, fmt.Errorf("att line %d: expected 1-2 or 4-5 fields, got %d", lineNum, len(fields))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("att: %w", err)
	}
	return f, nil
}
