package sessionauth

import (
	"fmt"

	"github.com/dmitrymomot/memberauth/pkg/member"
	"github.com/dmitrymomot/memberauth/pkg/password"
)

// Config holds reconciler configuration.
type Config struct {
	// PasswordHasher is "md5" for legacy records or "bcrypt".
	PasswordHasher string `env:"AUTH_PASSWORD_HASHER" envDefault:"md5"`
}

func DefaultConfig() Config {
	return Config{PasswordHasher: "md5"}
}

// NewFromConfig creates a Reconciler using the hasher named in cfg.
// Options given after cfg take precedence.
func NewFromConfig(cfg Config, store member.Store, binder SessionBinder, opts ...Option) (*Reconciler, error) {
	h, err := password.New(cfg.PasswordHasher)
	if err != nil {
		return nil, fmt.Errorf("sessionauth config: %w", err)
	}
	return New(store, binder, append([]Option{WithHasher(h)}, opts...)...), nil
}
