package config

import (
	"os"
	"strconv"
)

// FromEnv overlays KTRACE_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("KTRACE_BUFSIZE_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.BufferSizeMB = n
		}
	}
	if v := os.Getenv("KTRACE_GRPMASK"); v != "" {
		// accepts decimal or 0x-prefixed hex
		if n, err := strconv.ParseUint(v, 0, 32); err == nil {
			cfg.GroupMask = uint32(n)
		}
	}
	if v := os.Getenv("KTRACE_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("KTRACE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("KTRACE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}
