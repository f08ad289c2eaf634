package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		" DEBUG ":  zerolog.DebugLevel,
		"warning":  zerolog.WarnLevel,
		"off":      zerolog.Disabled,
		"error":    zerolog.ErrorLevel,
		"info":     zerolog.InfoLevel,
		"inactive": zerolog.Disabled,
	}
	for raw, want := range cases {
		got, ok := parseLevel(raw)
		if !ok || got != want {
			t.Fatalf("parseLevel(%q) = %v,%v want %v", raw, got, ok, want)
		}
	}
	if _, ok := parseLevel("loud"); ok {
		t.Fatalf("expected unknown level to be rejected")
	}
	if err := SetLevel("loud"); err == nil {
		t.Fatalf("expected SetLevel error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogNoColor, "true")
	t.Setenv(EnvLogBypass, "nope")

	cfg := defaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	if cfg.Level != zerolog.ErrorLevel || cfg.Timestamp || !cfg.NoColor || cfg.Bypass {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestApplyBypassWritesJSON(t *testing.T) {
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	defer func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	}()

	var buf bytes.Buffer
	apply(Config{Level: zerolog.DebugLevel, Bypass: true, Out: &buf})
	l := For("capture")
	l.Debug().Str("file", "a.pcap").Msg("opened")
	if !strings.Contains(buf.String(), `"component":"capture"`) || !strings.Contains(buf.String(), `"file":"a.pcap"`) {
		t.Fatalf("unexpected log output: %s", buf.String())
	}
}
