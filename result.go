package g2p

// PhonetizationResult is the outcome of phonemizing one word.
type PhonetizationResult struct {
	// Phonemes is the space-joined phoneme sequence.
	Phonemes string
	// NegLogScore is the weight of the best path found, a negative log
	// likelihood. Lower is better.
	NegLogScore float64
}
