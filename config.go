package gwrite

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ConfigSection is the top-level TOML table holding profiles.
const ConfigSection = "gwrite"

const defaultProfileKey = "default_profile"

//go:embed bundled.toml
var bundled []byte

// DefaultConfig returns the bundled profiles.
func DefaultConfig() (*Config, error) {
	cfg, err := parseConfig(bundled)
	if err != nil {
		return nil, fmt.Errorf("bundled config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads a TOML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfig reads a TOML configuration from r. Profiles live in
// [gwrite.<name>] tables; [gwrite] may set default_profile. A document
// without a gwrite table yields an empty Config. Unknown profile keys are
// ignored.
func LoadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	var root map[string]any
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	cfg := &Config{Profiles: make(map[string]Profile)}

	section, ok := root[ConfigSection]
	if !ok {
		return cfg, nil
	}
	table, ok := section.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be a table", ErrConfiguration, ConfigSection)
	}

	for key, value := range table {
		if key == defaultProfileKey {
			name, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s.%s must be a string", ErrConfiguration, ConfigSection, key)
			}
			cfg.DefaultProfile = name
			continue
		}
		raw, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s must be a profile table", ErrConfiguration, ConfigSection, key)
		}
		p, err := decodeProfile(key, raw)
		if err != nil {
			return nil, err
		}
		cfg.Profiles[key] = p
	}
	return cfg, nil
}

func decodeProfile(name string, raw map[string]any) (Profile, error) {
	p := NewProfile(name)
	for key, value := range raw {
		var err error
		switch key {
		case "unit":
			p.Unit, err = asString(value)
		case "info":
			p.Info, err = asString(value)
		case "scale_x":
			p.ScaleX, err = asFloat(value)
		case "scale_y":
			p.ScaleY, err = asFloat(value)
		case "offset_x":
			p.OffsetX, err = asFloat(value)
		case "offset_y":
			p.OffsetY, err = asFloat(value)
		case "invert_x":
			p.InvertX, err = asBool(value)
		case "invert_y":
			p.InvertY, err = asBool(value)
		case "default_values":
			m, ok := value.(map[string]any)
			if !ok {
				err = fmt.Errorf("expected table, got %T", value)
				break
			}
			p.DefaultValues = m
		default:
			h, perr := ParseHook(key)
			if perr != nil {
				continue
			}
			p.Templates[h], err = asString(value)
		}
		if err != nil {
			return Profile{}, fmt.Errorf("%w: %s.%s.%s: %w", ErrConfiguration, ConfigSection, name, key, err)
		}
	}
	return p, nil
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", v)
	}
	return s, nil
}

// TOML integers decode as int64.
func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func asBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
	return b, nil
}
