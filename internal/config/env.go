package config

import "strings"

// EnvPrefix is the prefix of environment variables read by ApplyEnv.
const EnvPrefix = "MASKFIELD_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overlays MASKFIELD_LOG_LEVEL and MASKFIELD_LOCALE. Fields that
// inherited the global locale follow the override; fields with their own
// locale keep it.
func ApplyEnv(cfg *Config, lookup LookupFunc) {
	if lookup == nil {
		return
	}

	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if v, ok := lookup(EnvPrefix + "LOCALE"); ok && v != "" {
		old := cfg.Locale
		cfg.Locale = v
		for i := range cfg.Fields {
			if cfg.Fields[i].Locale == old {
				cfg.Fields[i].Locale = v
			}
		}
	}
}
