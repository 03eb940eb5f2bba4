// Command g2pserver exposes a loaded G2P model as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/phonemize?word=<word>
//	POST /api/phonemize/batch   body: {"words":["...", ...]}
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/rs/cors"

	g2p "github.com/ieee0824/g2p-go"
)

// ---- JSON response types ------------------------------------------------

type phonemizeResponse struct {
	Word        string  `json:"word"`
	Phonemes    string  `json:"phonemes"`
	NegLogScore float64 `json:"neg_log_score"`
}

type batchRequest struct {
	Words []string `json:"words"`
}

type batchEntry struct {
	Word        string  `json:"word"`
	Phonemes    string  `json:"phonemes,omitempty"`
	NegLogScore float64 `json:"neg_log_score"`
	Error       string  `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchEntry `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps the phonemization error taxonomy to HTTP statuses:
// bad input is the client's problem, broken model invariants are ours.
func statusFor(err error) int {
	var unknown *g2p.UnknownSymbolError
	switch {
	case errors.As(err, &unknown), errors.Is(err, g2p.ErrNoPathFound):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ---- handlers -----------------------------------------------------------

func handlePhonemize(model *g2p.Model) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		word := r.URL.Query().Get("word")
		if word == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}

		result, err := model.PhonemizeWord(word)
		if err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				log.Printf("phonemize %q: %v", word, err)
			}
			writeError(w, status, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, phonemizeResponse{
			Word:        word,
			Phonemes:    result.Phonemes,
			NegLogScore: result.NegLogScore,
		})
	}
}

func handlePhonemizeBatch(model *g2p.Model) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body batchRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Words) == 0 {
			writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'words' list")
			return
		}

		out := make([]batchEntry, 0, len(body.Words))
		for _, word := range body.Words {
			result, err := model.PhonemizeWord(word)
			if err != nil {
				out = append(out, batchEntry{Word: word, Error: err.Error()})
				continue
			}
			out = append(out, batchEntry{
				Word:        word,
				Phonemes:    result.Phonemes,
				NegLogScore: result.NegLogScore,
			})
		}
		writeJSON(w, http.StatusOK, batchResponse{Results: out})
	}
}

func main() {
	modelPath := flag.String("model", "", "path to binary G2P model file")
	addr := flag.String("addr", ":8080", "listen address")

	flag.Parse()

	if *modelPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: g2pserver -model MODEL [-addr :8080]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	model, err := g2p.LoadModelFile(*modelPath)
	if err != nil {
		log.Fatalf("load model: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/phonemize", handlePhonemize(model))
	mux.HandleFunc("/api/phonemize/batch", handlePhonemizeBatch(model))

	handler := cors.Default().Handler(mux)

	log.Printf("listening on %s", *addr)
	if err := http.ListenAndServe(*addr, handler); err != nil {
		log.Fatal(err)
	}
}
