package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"cardvault/internal/domain"
)

// YAMLCodec handles YAML export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlCard is the YAML export shape for one card. Child ids and photo
// references are storage details and are left out of exports.
type yamlCard struct {
	Name      string        `yaml:"name"`
	Title     string        `yaml:"title,omitempty"`
	Company   string        `yaml:"company,omitempty"`
	Website   string        `yaml:"website,omitempty"`
	Notes     string        `yaml:"notes,omitempty"`
	Phones    []yamlPhone   `yaml:"phones,omitempty"`
	Emails    []yamlEmail   `yaml:"emails,omitempty"`
	Addresses []yamlAddress `yaml:"addresses,omitempty"`
	Tags      []string      `yaml:"tags,omitempty"`
}

type yamlPhone struct {
	Label  string `yaml:"label"`
	Number string `yaml:"number"`
}

type yamlEmail struct {
	Label   string `yaml:"label"`
	Address string `yaml:"address"`
}

type yamlAddress struct {
	Label   string `yaml:"label"`
	Street  string `yaml:"street,omitempty"`
	City    string `yaml:"city,omitempty"`
	Country string `yaml:"country,omitempty"`
	Postal  string `yaml:"postal,omitempty"`
}

// Export writes the card collection as YAML
func (c *YAMLCodec) Export(cards []domain.Card, w io.Writer) error {
	out := make([]yamlCard, 0, len(cards))
	for _, card := range cards {
		yc := yamlCard{
			Name:    card.Name,
			Title:   card.Title,
			Company: card.Company,
			Website: card.Website,
			Notes:   card.Notes,
			Tags:    card.Tags,
		}
		for _, p := range card.Phones {
			yc.Phones = append(yc.Phones, yamlPhone{Label: p.Label, Number: p.Number})
		}
		for _, e := range card.Emails {
			yc.Emails = append(yc.Emails, yamlEmail{Label: e.Label, Address: e.Address})
		}
		for _, a := range card.Addresses {
			yc.Addresses = append(yc.Addresses, yamlAddress{
				Label: a.Label, Street: a.Street, City: a.City,
				Country: a.Country, Postal: a.Postal,
			})
		}
		out = append(out, yc)
	}

	encoder := yaml.NewEncoder(w)
	defer encoder.Close()

	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
