// Package tokens implements the cheap token-count heuristic used for
// UX-facing order-of-magnitude feedback. It is deliberately not a real
// tokenizer against any model vocabulary.
package tokens

// Estimate returns an estimated token count for text: byte length divided
// by 4, using integer division.
func Estimate(text string) int {
	return len(text) / 4
}
