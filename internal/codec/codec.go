package codec

import (
	"io"

	"cardvault/internal/domain"
)

// Exporter writes a card collection to an output format
type Exporter interface {
	Export(cards []domain.Card, w io.Writer) error
	Format() string
}
