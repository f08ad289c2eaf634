package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/romonctl/internal/protocol/romon"
)

// Input formats accepted by the capture reader.
const (
	FormatAuto   = "auto"
	FormatPcap   = "pcap"
	FormatPcapNG = "pcapng"
	FormatHex    = "hex"
)

// Config drives the dump tool.
type Config struct {
	// Format of input files; auto sniffs the file magic.
	Format string
	// Snaplen caps the bytes of each packet handed to the decoder. Zero
	// keeps the whole capture.
	Snaplen int
	// ShowLink prefixes each trace with the link-layer addresses.
	ShowLink bool
	// CheckLength adds a diagnostic line when the declared frame length
	// differs from the RoMON payload length.
	CheckLength     bool
	EtherType       uint16
	MetricsTextfile string
	LogLevel        string
}

// romonctl config.toml key mapping.
type fileConfig struct {
	Format          string `toml:"format"`
	Snaplen         int    `toml:"snaplen"`
	ShowLink        bool   `toml:"show_link"`
	CheckLength     bool   `toml:"check_length"`
	EtherType       int64  `toml:"ethertype"`
	MetricsTextfile string `toml:"metrics_textfile"`
	LogLevel        string `toml:"log_level,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Format:    FormatAuto,
		ShowLink:  true,
		EtherType: romon.EtherType,
	}
}

// Load overlays the keys present in the TOML file at path on DefaultConfig.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load romonctl config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load romonctl config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	}
	if meta.IsDefined("snaplen") {
		cfg.Snaplen = raw.Snaplen
	}
	if meta.IsDefined("show_link") {
		cfg.ShowLink = raw.ShowLink
	}
	if meta.IsDefined("check_length") {
		cfg.CheckLength = raw.CheckLength
	}
	if meta.IsDefined("ethertype") {
		if raw.EtherType <= 0 || raw.EtherType > 0xffff {
			return Config{}, fmt.Errorf("parse ethertype: out of range: %d", raw.EtherType)
		}
		cfg.EtherType = uint16(raw.EtherType)
	}
	if meta.IsDefined("metrics_textfile") {
		cfg.MetricsTextfile = strings.TrimSpace(raw.MetricsTextfile)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	switch cfg.Format {
	case FormatAuto, FormatPcap, FormatPcapNG, FormatHex:
	default:
		return fmt.Errorf("config invalid format: %q", cfg.Format)
	}
	if cfg.Snaplen < 0 {
		return fmt.Errorf("config snaplen must not be negative: %d", cfg.Snaplen)
	}
	if cfg.EtherType == 0 {
		return fmt.Errorf("config missing ethertype")
	}
	return nil
}
