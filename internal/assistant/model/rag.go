package model

// RAGResult is the outcome of a knowledge-base query.
// Confidence is binary: 0 when nothing was retrieved or the answer itself
// signals no information, 1 otherwise.
type RAGResult struct {
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources"`
	Confidence float64  `json:"confidence"`
}
