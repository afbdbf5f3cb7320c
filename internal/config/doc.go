// Package config defines the ktrace runtime configuration: trace buffer
// sizing, the default group mask, listen addresses, and logging.
//
// Values come from built-in defaults, optionally overlaid by a JSON file and
// then by KTRACE_* environment variables:
//
//	cfg := config.Default()
//	cfg, _ = config.Load(path) // path may be empty
//	config.FromEnv(&cfg)
package config
