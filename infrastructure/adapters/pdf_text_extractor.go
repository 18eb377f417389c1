package adapters

import (
	"audiobook-generation-api/application/ports/outbound"
	"bytes"
	"fmt"
	"github.com/ledongthuc/pdf"
)

type pdfTextExtractor struct {
	logger outbound.LoggerPort
}

// NewPDFTextExtractor pulls the plain text layer out of PDF bytes. A scanned
// document without a text layer extracts to an empty string, which the
// pipeline treats as an extraction failure.
func NewPDFTextExtractor(logger outbound.LoggerPort) outbound.TextExtractorPort {
	return &pdfTextExtractor{
		logger: logger,
	}
}

func (p *pdfTextExtractor) Extract(documentBytes []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(documentBytes), int64(len(documentBytes)))
	if err != nil {
		p.logger.Error(err, "Failed to open PDF document")
		return "", fmt.Errorf("could not open PDF document: %v", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		p.logger.Error(err, "Failed to extract text from PDF document")
		return "", fmt.Errorf("could not extract text from PDF document: %v", err)
	}

	var buf bytes.Buffer
	_, err = buf.ReadFrom(textReader)
	if err != nil {
		p.logger.Error(err, "Failed to read extracted PDF text")
		return "", fmt.Errorf("could not read extracted text: %v", err)
	}

	return buf.String(), nil
}
