package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/assertgrant/pkg/jwtx"
)

// LoadAssertionKey loads the key that verifies incoming assertions. It is
// read once at startup; there is no runtime rotation.
func LoadAssertionKey(cfg Config, logger *slog.Logger) (*jwtx.Key, error) {
	if cfg.JWTSecret != "" {
		key, err := jwtx.NewSecretKey([]byte(cfg.JWTSecret))
		if err != nil {
			return nil, fmt.Errorf("load assertion secret: %w", err)
		}
		logger.Info("assertion key loaded", "kind", key.Kind(), "algorithms", key.Algorithms())
		return key, nil
	}

	key, err := jwtx.LoadKeyFile(cfg.JWTKeyFile, cfg.JWTKeyPassphrase)
	if err != nil {
		return nil, fmt.Errorf("load assertion key %s: %w", cfg.JWTKeyFile, err)
	}

	logger.Info("assertion key loaded",
		"file", cfg.JWTKeyFile,
		"kind", key.Kind(),
		"kid", key.KID(),
		"algorithms", key.Algorithms(),
		"can_sign", key.CanSign(),
	)
	return key, nil
}
