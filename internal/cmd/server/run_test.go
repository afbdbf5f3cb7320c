package serverrun

import (
	"context"
	"testing"
	"time"

	cfgpkg "github.com/chenxiaowo/ktrace/internal/config"
)

func TestOptionsHTTPAddrFallback(t *testing.T) {
	tests := []struct {
		name     string
		httpAddr string
		expected string
	}{
		{
			name:     "empty addr falls back to config",
			httpAddr: "",
			expected: ":8080",
		},
		{
			name:     "provided addr is preserved",
			httpAddr: "127.0.0.1:9090",
			expected: "127.0.0.1:9090",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{
				HTTPAddr: tt.httpAddr,
				Config:   cfgpkg.Default(),
			}

			if opts.HTTPAddr == "" {
				opts.HTTPAddr = opts.Config.HTTPAddr
			}

			if opts.HTTPAddr != tt.expected {
				t.Errorf("expected HTTPAddr %s, got %s", tt.expected, opts.HTTPAddr)
			}
		})
	}
}

// TestRunIntegration is a basic integration test that verifies Run can be
// called without immediately failing. This is a minimal test since Run starts
// an actual server.
func TestRunIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := cfgpkg.Default()
	cfg.BufferSizeMB = 1
	cfg.LogLevel = "error"

	opts := Options{
		HTTPAddr: "127.0.0.1:0", // automatic port selection
		Config:   cfg,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// Run should start the server and then be stopped by the timeout.
	err := Run(ctx, opts)
	if err != nil && err != context.DeadlineExceeded && err != context.Canceled {
		t.Errorf("expected clean shutdown, got %v", err)
	}
}
