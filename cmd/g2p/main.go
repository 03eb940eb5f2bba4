// Command g2p phonemizes a single word with a pretrained FST model.
package main

import (
	"flag"
	"fmt"
	"os"

	g2p "github.com/ieee0824/g2p-go"
)

func main() {
	modelPath := flag.String("model", "", "path to binary G2P model file")
	verbose := flag.Bool("v", false, "print the path score to stderr")

	flag.Parse()

	if *modelPath == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: g2p -model MODEL [-v] WORD")
		flag.PrintDefaults()
		os.Exit(1)
	}
	word := flag.Arg(0)

	model, err := g2p.LoadModelFile(*modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := model.PhonemizeWord(word)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(result.Phonemes)

	if *verbose {
		fmt.Fprintf(os.Stderr, "Score: %.4f\n", result.NegLogScore)
	}
}
