package main

import (
	"time"

	"github.com/dmitrymomot/memberauth/pkg/cookie"
	"github.com/dmitrymomot/memberauth/pkg/httpserver"
	"github.com/dmitrymomot/memberauth/pkg/loginthrottle"
	"github.com/dmitrymomot/memberauth/pkg/session"
	"github.com/dmitrymomot/memberauth/pkg/sessionauth"
)

// Member store backends.
const (
	backendMemory   = "memory"
	backendPostgres = "postgres"
	backendMongo    = "mongo"
	backendRedis    = "redis"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Service  string `env:"APP_SERVICE" envDefault:"memberauthd"`
	LogLevel string `env:"LOG_LEVEL" envDefault:""`

	// MemberBackend is memory, postgres or mongo.
	MemberBackend string `env:"MEMBER_BACKEND" envDefault:"memory"`
	// MembersFixture is an optional YAML file of members loaded at startup.
	// The memory backend is populated from it; the other backends upsert it.
	MembersFixture string `env:"MEMBERS_FIXTURE" envDefault:""`
	// Migrate runs the postgres migrations on startup.
	Migrate bool `env:"PG_MIGRATE" envDefault:"true"`

	// ThrottleEnabled guards POST /auth/login with a per-address token bucket.
	ThrottleEnabled bool `env:"LOGIN_THROTTLE_ENABLED" envDefault:"true"`

	MetricsEnabled bool          `env:"METRICS_ENABLED" envDefault:"true"`
	ReadyTimeout   time.Duration `env:"READY_CHECK_TIMEOUT" envDefault:"2s"`
}

type settings struct {
	App      appConfig
	HTTP     httpserver.Config
	Cookie   cookie.Config
	Session  session.Config
	Auth     sessionauth.Config
	Throttle loginthrottle.Config
}
