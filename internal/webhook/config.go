package webhook

import (
	"fmt"

	"github.com/mattjoyce/skydispatch/internal/config"
)

// FromConfig converts the server section of the global config.
func FromConfig(cfg *config.Config) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("config is nil")
	}

	maxBodySize := int64(DefaultMaxBodySize)
	if cfg.Server.MaxBodySize != "" {
		n, err := config.ParseByteSize(cfg.Server.MaxBodySize)
		if err != nil {
			return Config{}, fmt.Errorf("invalid max_body_size %q: %w", cfg.Server.MaxBodySize, err)
		}
		maxBodySize = n
	}

	out := Config{
		Listen:       cfg.Server.Addr(),
		MaxBodySize:  maxBodySize,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	if out.ReadTimeout <= 0 {
		out.ReadTimeout = DefaultReadTimeout
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = DefaultWriteTimeout
	}
	return out, nil
}
