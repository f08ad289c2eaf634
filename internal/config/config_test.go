package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/romonctl/internal/protocol/romon"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
format = "PCAPNG"
snaplen = 64
show_link = false
check_length = true
ethertype = 0x88b5
metrics_textfile = " /var/lib/node_exporter/romon.prom "
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Format != FormatPcapNG {
		t.Fatalf("unexpected format: %q", cfg.Format)
	}
	if cfg.Snaplen != 64 || cfg.ShowLink || !cfg.CheckLength {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.EtherType != 0x88b5 {
		t.Fatalf("unexpected ethertype: %#x", cfg.EtherType)
	}
	if cfg.MetricsTextfile != "/var/lib/node_exporter/romon.prom" {
		t.Fatalf("unexpected metrics textfile: %q", cfg.MetricsTextfile)
	}
	if cfg.LogLevel != "" {
		t.Fatalf("log level should be unset: %q", cfg.LogLevel)
	}
}

func TestLoadEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "\n"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.EtherType != romon.EtherType {
		t.Fatalf("unexpected default ethertype: %#x", cfg.EtherType)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for _, content := range []string{
		`format = "csv"`,
		`snaplen = -1`,
		`ethertype = 70000`,
		`colour = true`,
		`snaplen = "abc"`,
	} {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Fatalf("expected error for %q", content)
		}
	}
}

func TestWriteTemplateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "romonctl.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("overwrite template: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("template does not reproduce defaults: %+v", cfg)
	}
}
