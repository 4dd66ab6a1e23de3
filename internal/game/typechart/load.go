package typechart

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// chartFile is the YAML document shape for a custom chart.
type chartFile struct {
	// Types maps attacking type to its deviation row; defending types not
	// listed in a row resolve to Neutral.
	Types map[string]map[string]float64 `yaml:"types"`
}

// Load reads a custom chart from r. Decoding is strict: unknown document
// fields are an error.
//
// Postcondition: Returns a valid Chart or a non-nil error.
func Load(r io.Reader) (*Chart, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file chartFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding type chart: %w", err)
	}

	for atk, row := range file.Types {
		for def, mult := range row {
			if mult < 0 {
				return nil, fmt.Errorf("type chart entry %s->%s: multiplier must be >= 0, got %v", atk, def, mult)
			}
		}
	}

	return FromDeviations(file.Types), nil
}

// LoadFile reads a custom chart from the YAML file at path.
func LoadFile(path string) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening type chart file: %w", err)
	}
	defer f.Close()

	chart, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading type chart %s: %w", path, err)
	}
	return chart, nil
}
