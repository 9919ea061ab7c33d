// Package providers lists the services the framework itself registers into
// every application container before the module graph is walked.
package providers

import (
	"log/slog"

	"github.com/km-arc/go-nestforge/framework/config"
	"github.com/km-arc/go-nestforge/framework/container"
)

// ── Core ──────────────────────────────────────────────────────────────────────

// Core returns the framework providers, in registration order.
//
// Registered types:
//   - *config.Config  the framework configuration
//   - *slog.Logger    the application logger
func Core(cfg *config.Config, logger *slog.Logger) []container.Provider {
	return []container.Provider{
		container.Value(cfg),
		container.Value(logger),
	}
}

// Register registers ps into c in order and stops at the first error.
func Register(c *container.Container, ps ...container.Provider) error {
	for _, p := range ps {
		if err := container.RegisterProvider(c, p); err != nil {
			return err
		}
	}
	return nil
}
