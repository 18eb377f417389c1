package outbound

// TextExtractorPort yields the plain text of a source document. An empty or
// whitespace-only result is treated by the pipeline as an extraction failure.
type TextExtractorPort interface {
	Extract(documentBytes []byte) (string, error)
}
