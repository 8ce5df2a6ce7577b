package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/example/annotator/internal/shape"
)

// Parse reads TOML configuration from r over the defaults. Keys no field
// takes are listed in Unknown rather than rejected. Tool aliases such as
// rect are stored under the canonical kind name.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	for _, key := range md.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, key.String())
	}
	tools := make(map[string]Tool, len(cfg.Tools))
	for name, tool := range cfg.Tools {
		kind, ok := shape.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("parse config: [tools.%s]: unknown tool", name)
		}
		tools[kind.String()] = tool
	}
	cfg.Tools = tools
	cfg.validate()
	return cfg, nil
}
