package feed

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/markethub/backend/internal/domain/catalog"
)

// Parse decodes a partner price-list document. Decoding is strict:
// unknown keys reject the document, and the decoded document is validated
// as a whole before it is returned.
func Parse(r io.Reader) (*catalog.FeedDocument, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc catalog.FeedDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("feed document is empty")
		}
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// ParseBytes decodes a feed document from a byte slice
func ParseBytes(data []byte) (*catalog.FeedDocument, error) {
	return Parse(bytes.NewReader(data))
}
