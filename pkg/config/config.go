package config

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigtoml"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/ngld/knossos/packages/galconf/pkg/platform"
)

// Config describes all settings of the galconf tool
type Config struct {
	Log struct {
		Level string `default:"info"`
		JSON  bool   `default:"false" usage:"Output JSONND instead of pretty console messages"`
	}
	Script string `default:"configure.star" usage:"Name of the configure script to search for"`
	Cache  string `default:".galconf.cache" usage:"Where configure stores its results (relative to the script)"`
	Strict bool   `default:"false" usage:"Fail instead of warning about unknown or disabled drivers"`
	Target struct {
		System string `usage:"Override the detected host system (meson name, i.e. linux)"`
		CPU    string `usage:"Override the detected host CPU family (meson name, i.e. x86_64)"`
	}
}

var logLevels = map[string]zerolog.Level{
	"trace":   zerolog.TraceLevel,
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
	"fatal":   zerolog.FatalLevel,
}

// Loader initializes an empty config object and returns a new Loader for this object.
// Command line flags are left to cobra.
func Loader(files ...string) (*Config, *aconfig.Loader) {
	if len(files) == 0 {
		files = []string{"galconf.toml"}
	}

	cfg := Config{}
	return &cfg, aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "GALCONF",
		SkipFlags: true,
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".toml": aconfigtoml.New(),
		},
	})
}

// Validate verifies that all config fields have valid values
func (cfg *Config) Validate() error {
	_, ok := logLevels[cfg.Log.Level]
	if !ok {
		return eris.Errorf(`Invalid value for log.level: %s`, cfg.Log.Level)
	}

	if cfg.Script == "" {
		return eris.New("script must not be empty")
	}

	if cfg.Cache == "" {
		return eris.New("cache must not be empty")
	}

	return nil
}

// LogLevel converts the .Log.Level field to a zerolog.Level
func (cfg *Config) LogLevel() zerolog.Level {
	return logLevels[cfg.Log.Level]
}

// ApplyTarget overrides the fields of host that were set in the config.
func (cfg *Config) ApplyTarget(host platform.Platform) platform.Platform {
	if cfg.Target.System != "" {
		host.System = platform.System(cfg.Target.System)
	}

	if cfg.Target.CPU != "" {
		host.CPU = platform.CPUFamily(cfg.Target.CPU)
	}

	return host
}
