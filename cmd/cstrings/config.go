package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/compress/zstd"
)

// config holds the settings shared by every subcommand.
type config struct {
	MinLen    int
	Printable bool
	Escape    bool
	Compress  bool
	Level     zstd.EncoderLevel
}

func defaultConfig() config {
	return config{
		MinLen:    4,
		Printable: true,
		Escape:    true,
		Compress:  true,
	}
}

// cstrings.toml key mapping.
type fileConfig struct {
	MinLen    int    `toml:"min_len"`
	Printable bool   `toml:"printable"`
	Escape    bool   `toml:"escape"`
	Compress  bool   `toml:"compress"`
	Level     string `toml:"level"`
}

// loadConfig overlays the keys present in the TOML file at path on the
// defaults. An empty path returns the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load cstrings config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, fmt.Errorf("load cstrings config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("min_len") {
		cfg.MinLen = raw.MinLen
	}
	if meta.IsDefined("printable") {
		cfg.Printable = raw.Printable
	}
	if meta.IsDefined("escape") {
		cfg.Escape = raw.Escape
	}
	if meta.IsDefined("compress") {
		cfg.Compress = raw.Compress
	}
	if meta.IsDefined("level") {
		ok, level := zstd.EncoderLevelFromString(raw.Level)
		if !ok {
			return config{}, fmt.Errorf("load cstrings config: unknown level %q", raw.Level)
		}
		cfg.Level = level
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	if c.MinLen < 1 {
		return fmt.Errorf("min_len must be at least 1, got %d", c.MinLen)
	}
	return nil
}
