package config

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/ngld/knossos/packages/galconf/pkg/platform"
)

func validConfig() *Config {
	cfg := &Config{Script: "configure.star", Cache: ".galconf.cache"}
	cfg.Log.Level = "info"
	return cfg
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	cfg := validConfig()
	cfg.Log.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted log level loud")
	}

	cfg = validConfig()
	cfg.Script = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted an empty script name")
	}

	cfg = validConfig()
	cfg.Cache = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted an empty cache path")
	}
}

func TestLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "warning"
	if cfg.LogLevel() != zerolog.WarnLevel {
		t.Errorf("LogLevel() = %v, want warn", cfg.LogLevel())
	}
}

func TestApplyTarget(t *testing.T) {
	host := platform.Platform{System: platform.Linux, CPU: platform.X86_64}

	cfg := validConfig()
	if got := cfg.ApplyTarget(host); got != host {
		t.Errorf("ApplyTarget() without overrides = %v", got)
	}

	cfg.Target.CPU = "riscv64"
	got := cfg.ApplyTarget(host)
	want := platform.Platform{System: platform.Linux, CPU: platform.RISCV64}
	if got != want {
		t.Errorf("ApplyTarget() = %v, want %v", got, want)
	}
}

func TestLoaderDefaults(t *testing.T) {
	cfg, loader := Loader(t.TempDir() + "/missing.toml")
	if err := loader.Load(); err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if cfg.Log.Level != "info" || cfg.Script != "configure.star" || cfg.Cache != ".galconf.cache" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
