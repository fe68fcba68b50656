// Package dataset holds the fixed reference data questions are generated from.
package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"trivia-quiz-service/internal/domain"
)

//go:embed countries.json
var countriesJSON []byte

// regionalIndicatorOffset maps 'A' to U+1F1E6 REGIONAL INDICATOR SYMBOL LETTER A.
const regionalIndicatorOffset = 0x1F1E6 - 'A'

// Country is one entity of the reference dataset.
type Country struct {
	Name    string `json:"name"`
	Capital string `json:"capital"`
	Code    string `json:"country_code"`
}

// Flag derives the flag pictograph from the two-letter country code.
func (c Country) Flag() string {
	return Flag(c.Code)
}

// Flag maps each letter of an ISO 3166 alpha-2 code to its regional indicator symbol.
func Flag(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		b.WriteRune(r + regionalIndicatorOffset)
	}
	return b.String()
}

// Countries is the read-only reference dataset.
type Countries []Country

// Names returns every display name in dataset order.
func (cs Countries) Names() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

// Capitals returns every capital in dataset order.
func (cs Countries) Capitals() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Capital
	}
	return out
}

// Load decodes the embedded dataset.
func Load() (Countries, error) {
	return Parse(countriesJSON)
}

// LoadFile decodes a dataset from a JSON file on disk.
func LoadFile(path string) (Countries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDataset, err)
	}
	return Parse(data)
}

// Parse decodes and validates a JSON array of countries.
func Parse(data []byte) (Countries, error) {
	var cs Countries
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDataset, err)
	}
	if len(cs) == 0 {
		return nil, fmt.Errorf("%w: no countries", domain.ErrInvalidDataset)
	}
	for i, c := range cs {
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", domain.ErrInvalidDataset, i, err)
		}
	}
	return cs, nil
}

func (c Country) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("missing name")
	}
	if strings.TrimSpace(c.Capital) == "" {
		return fmt.Errorf("%s: missing capital", c.Name)
	}
	if len(c.Code) != 2 {
		return fmt.Errorf("%s: country code %q is not two letters", c.Name, c.Code)
	}
	for _, r := range strings.ToUpper(c.Code) {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("%s: country code %q is not alphabetic", c.Name, c.Code)
		}
	}
	return nil
}
