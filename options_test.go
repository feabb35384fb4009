package textc

import (
	"errors"
	"testing"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Language = "en"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.StylesFile != "styles.csv" || cfg.StringsFile != "strings.csv" {
		t.Errorf("table file defaults = %q, %q", cfg.StylesFile, cfg.StringsFile)
	}
	if cfg.OutDir != "bin" || cfg.CacheFile != ".cache" {
		t.Errorf("output defaults = %q, %q", cfg.OutDir, cfg.CacheFile)
	}
	if cfg.BitmapSize != 128 || cfg.Padding != 2 || cfg.PxRange != 2 {
		t.Errorf("raster defaults = %d, %d, %d", cfg.BitmapSize, cfg.Padding, cfg.PxRange)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "no language", mutate: func(c *Config) { c.Language = "" }, field: "Language"},
		{name: "no dir", mutate: func(c *Config) { c.Dir = "" }, field: "Dir"},
		{name: "no styles file", mutate: func(c *Config) { c.StylesFile = "" }, field: "StylesFile"},
		{name: "no strings file", mutate: func(c *Config) { c.StringsFile = "" }, field: "StringsFile"},
		{name: "no out dir", mutate: func(c *Config) { c.OutDir = "" }, field: "OutDir"},
		{name: "no cache file", mutate: func(c *Config) { c.CacheFile = "" }, field: "CacheFile"},
		{name: "tiny bitmap", mutate: func(c *Config) { c.BitmapSize = 8 }, field: "BitmapSize"},
		{name: "negative padding", mutate: func(c *Config) { c.Padding = -1 }, field: "Padding"},
		{name: "padding eats bitmap", mutate: func(c *Config) { c.Padding = 64 }, field: "Padding"},
		{name: "zero pxrange", mutate: func(c *Config) { c.PxRange = 0 }, field: "PxRange"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate: %v, want nil", err)
				}
				return
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("Validate error = %v, want *ConfigError", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("ConfigError.Field = %q, want %q", cerr.Field, tt.field)
			}
		})
	}
}
