package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Template renders DefaultConfig as a TOML document.
func Template() ([]byte, error) {
	cfg := DefaultConfig()
	raw := fileConfig{
		Format:          cfg.Format,
		Snaplen:         cfg.Snaplen,
		ShowLink:        cfg.ShowLink,
		CheckLength:     cfg.CheckLength,
		EtherType:       int64(cfg.EtherType),
		MetricsTextfile: cfg.MetricsTextfile,
		LogLevel:        cfg.LogLevel,
	}
	out, err := toml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("render config template: %w", err)
	}
	return out, nil
}

func WriteTemplate(path string, overwrite bool) error {
	template, err := Template()
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, template, 0o600)
}
