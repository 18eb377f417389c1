package inbound

// TextChunkerPort splits document text into ordered, bounded, non-empty
// segments ending at sentence boundaries where possible. Total over all
// inputs: it never returns zero segments and never fails.
type TextChunkerPort interface {
	Split(text string, maxChars int) []string
}
