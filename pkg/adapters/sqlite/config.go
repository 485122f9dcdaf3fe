package sqlite

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

// Params holds SQLite-specific configuration.
// Parsed from adapter.Config.Params using mapstructure.
type Params struct {
	// Pragmas applied after connecting (e.g., query_only, cache_size)
	Pragmas map[string]string `mapstructure:"pragmas"`

	// ReadOnly opens file databases with mode=ro
	ReadOnly bool `mapstructure:"read_only"`
}

var (
	pragmaName  = regexp.MustCompile(`^[a-z_]+$`)
	pragmaValue = regexp.MustCompile(`^-?[A-Za-z0-9_]+$`)
)

// ParseParams decodes raw adapter params into Params.
func ParseParams(raw map[string]any) (*Params, error) {
	params := &Params{}
	if len(raw) == 0 {
		return params, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           params,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create params decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid sqlite params: %w", err)
	}

	for name, value := range params.Pragmas {
		if !pragmaName.MatchString(name) {
			return nil, fmt.Errorf("invalid sqlite pragma name %q", name)
		}
		if !pragmaValue.MatchString(value) {
			return nil, fmt.Errorf("invalid value %q for sqlite pragma %s", value, name)
		}
	}
	return params, nil
}

func (p *Params) sortedPragmas() []string {
	names := make([]string, 0, len(p.Pragmas))
	for name := range p.Pragmas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
