// Command g2pconv converts an FST in AT&T text format (the output of
// fstprint, plus its two symbol files) into the binary model format
// loaded by the g2p library.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ieee0824/g2p-go/fst"
)

func main() {
	fstPath := flag.String("fst", "", "path to FST in AT&T text format")
	isymsPath := flag.String("isyms", "", "path to input symbol table")
	osymsPath := flag.String("osyms", "", "path to output symbol table")
	outPath := flag.String("o", "", "output path for the binary model")

	flag.Parse()

	if *fstPath == "" || *isymsPath == "" || *osymsPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: g2pconv -fst FST.txt -isyms ISYMS -osyms OSYMS -o MODEL")
		flag.PrintDefaults()
		os.Exit(1)
	}

	isyms, err := loadSymbolFile(*isymsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	osyms, err := loadSymbolFile(*osymsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(*fstPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open FST: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	t, err := fst.LoadATT(f, isyms, osyms)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parse FST: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: create output: %v\n", err)
		os.Exit(1)
	}
	if err := t.Save(out); err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "Error: write model: %v\n", err)
		os.Exit(1)
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: close output: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "wrote %s: %d states, %d arcs\n", *outPath, t.NumStates(), t.NumArcs())
}

func loadSymbolFile(path string) (*fst.SymbolTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbols: %w", err)
	}
	defer f.Close()
	t, err := fst.LoadSymbols(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}
