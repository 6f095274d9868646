package recordx

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/vkazmin/budgetvault/internal/cryptox"
	"github.com/vkazmin/budgetvault/internal/logging"
)

// EncryptionKeyEnv names the environment variable supplying the
// process-wide master key.
const EncryptionKeyEnv = "ENCRYPTION_KEY"

// MasterKeyFromEnv returns the configured master key or, when the variable
// is unset, generates a fresh one and logs a warning: a generated key is
// ephemeral and data encrypted under it is unreadable after restart unless
// the caller persists the key externally. A set but malformed key is an
// error, not a silent fallback.
func MasterKeyFromEnv(ctx context.Context, logger logging.Logger) (string, error) {
	key := os.Getenv(EncryptionKeyEnv)
	if key == "" {
		logger.Warn(ctx, "encryption key not configured, generated an ephemeral one",
			"env", EncryptionKeyEnv)
		return cryptox.GenerateMasterKey(), nil
	}

	if err := cryptox.ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// Provider owns the process-wide default Transform for call sites that
// have no per-user password context. It is constructed once at startup
// and passed by reference; there is no ambient global instance.
//
// Reinitialize builds a complete replacement and swaps it atomically, so
// a concurrent reader always observes either the old or the new transform,
// never a half-updated one.
type Provider struct {
	logger  logging.Logger
	opts    []Option
	current atomic.Pointer[Transform]
}

// NewProvider provisions a master key and builds the initial Transform
// with the given options.
func NewProvider(ctx context.Context, logger logging.Logger, opts ...Option) (*Provider, error) {
	p := &Provider{logger: logger, opts: opts}
	if err := p.Reinitialize(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// Transform returns the current default transform.
func (p *Provider) Transform() *Transform {
	return p.current.Load()
}

// Reinitialize re-reads the key material and atomically replaces the
// current transform. On error the previous transform stays in place.
func (p *Provider) Reinitialize(ctx context.Context) error {
	key, err := MasterKeyFromEnv(ctx, p.logger)
	if err != nil {
		return err
	}

	t, err := NewTransform(key, p.opts...)
	if err != nil {
		return err
	}

	p.current.Store(t)
	return nil
}
