package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"cardvault/internal/domain"
)

// JSONCodec handles JSON export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Export writes the card collection as indented JSON
func (c *JSONCodec) Export(cards []domain.Card, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(cards); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
