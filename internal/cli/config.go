package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mlindqvist/pedigree/pkg/pipeline"
)

// Config holds the optional TOML configuration file contents. Every field is
// optional; unset fields fall through to the pipeline defaults. Explicit CLI
// flags always win over the config file.
type Config struct {
	NodeSpacing       float64 `toml:"node_spacing"`
	GenerationSpacing float64 `toml:"generation_spacing"`
	SpouseSpacing     float64 `toml:"spouse_spacing"`
	FamilySpacing     float64 `toml:"family_spacing"`
	Width             float64 `toml:"width"`
	Height            float64 `toml:"height"`
	SpouseOrder       string  `toml:"spouse_order"`
}

// loadConfig reads a TOML config file. An empty path loads the default
// location and tolerates a missing file; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = configPath()
		if err != nil {
			return Config{}, nil
		}
	}

	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// apply copies config values onto pipeline options, filling only fields the
// flags left unset.
func (cfg Config) apply(opts *pipeline.Options) {
	if opts.NodeSpacing == 0 {
		opts.NodeSpacing = cfg.NodeSpacing
	}
	if opts.GenerationSpacing == 0 {
		opts.GenerationSpacing = cfg.GenerationSpacing
	}
	if opts.SpouseSpacing == 0 {
		opts.SpouseSpacing = cfg.SpouseSpacing
	}
	if opts.FamilySpacing == 0 {
		opts.FamilySpacing = cfg.FamilySpacing
	}
	if opts.Width == 0 {
		opts.Width = cfg.Width
	}
	if opts.Height == 0 {
		opts.Height = cfg.Height
	}
	if opts.SpouseOrder == "" {
		opts.SpouseOrder = cfg.SpouseOrder
	}
}
