package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/memberauth/pkg/authhttp"
	"github.com/dmitrymomot/memberauth/pkg/authmetrics"
	"github.com/dmitrymomot/memberauth/pkg/config"
	"github.com/dmitrymomot/memberauth/pkg/cookie"
	"github.com/dmitrymomot/memberauth/pkg/httpserver"
	"github.com/dmitrymomot/memberauth/pkg/logger"
	"github.com/dmitrymomot/memberauth/pkg/loginthrottle"
	"github.com/dmitrymomot/memberauth/pkg/member"
	"github.com/dmitrymomot/memberauth/pkg/member/mongostore"
	"github.com/dmitrymomot/memberauth/pkg/member/pgstore"
	"github.com/dmitrymomot/memberauth/pkg/mongo"
	"github.com/dmitrymomot/memberauth/pkg/pg"
	"github.com/dmitrymomot/memberauth/pkg/redis"
	"github.com/dmitrymomot/memberauth/pkg/session"
	"github.com/dmitrymomot/memberauth/pkg/sessionauth"
)

var requestIDKey any = middleware.RequestIDKey

// deps collects what run wires together; closers run on shutdown.
type deps struct {
	members  member.Store
	sessions session.Store
	redis    *goredis.Client
	checks   []httpserver.Check
	closers  []httpserver.Option
}

func (d *deps) onShutdown(name string, fn func(context.Context) error) {
	d.closers = append(d.closers, httpserver.WithShutdownFunc(name, fn))
}

func run(ctx context.Context, cfg settings, log *slog.Logger) error {
	d := &deps{}

	if err := openMemberStore(ctx, cfg.App, log, d); err != nil {
		return err
	}
	if err := openSessionStore(ctx, cfg.Session, d); err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return fmt.Errorf("cookie manager: %w", err)
	}
	sessions := session.NewFromConfig(cfg.Session,
		session.WithCookieManager(cookies),
		session.WithStore(d.sessions),
	)

	reg := prometheus.NewRegistry()
	observers := []sessionauth.Option{sessionauth.WithObserver(sessionauth.NewLogObserver(log))}
	if cfg.App.MetricsEnabled {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := authmetrics.New(reg)
		if err != nil {
			return fmt.Errorf("auth metrics: %w", err)
		}
		observers = append(observers, sessionauth.WithObserver(metrics))
	}

	reconciler, err := sessionauth.NewFromConfig(cfg.Auth, d.members, sessions, observers...)
	if err != nil {
		return err
	}
	handlerOpts := []authhttp.Option{authhttp.WithLogger(log)}
	if cfg.App.ThrottleEnabled {
		limiter, err := openThrottle(ctx, cfg.Throttle, d)
		if err != nil {
			return err
		}
		handlerOpts = append(handlerOpts, authhttp.WithThrottle(limiter))
	}
	auth := authhttp.NewHandler(reconciler, sessions, cookies, handlerOpts...)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(log), middleware.Recoverer)
	r.Get("/healthz", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(log, cfg.App.ReadyTimeout, d.checks...))
	if cfg.App.MetricsEnabled {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}
	r.Mount("/auth", auth.Routes())

	srv := httpserver.NewFromConfig(cfg.HTTP, append(d.closers, httpserver.WithLogger(log))...)
	log.InfoContext(ctx, "starting memberauthd",
		slog.String("addr", cfg.HTTP.Addr),
		slog.String("member_backend", cfg.App.MemberBackend),
		slog.String("session_backend", cfg.Session.Backend),
	)
	return srv.Run(ctx, r)
}

func openMemberStore(ctx context.Context, app appConfig, log *slog.Logger, d *deps) error {
	switch app.MemberBackend {
	case backendMemory, "":
		store := member.NewMemoryStore()
		if err := seed(app.MembersFixture, func(m *member.Member) error { return store.Put(m) }); err != nil {
			return err
		}
		d.members = store

	case backendPostgres:
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		d.onShutdown("postgres", func(context.Context) error { pool.Close(); return nil })
		if app.Migrate {
			if err := pg.Migrate(ctx, pool, pgstore.Migrations, cfg, log); err != nil {
				return err
			}
		}
		store := pgstore.New(pool)
		if err := seed(app.MembersFixture, func(m *member.Member) error { return store.Upsert(ctx, m) }); err != nil {
			return err
		}
		d.members = store
		d.checks = append(d.checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})

	case backendMongo:
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return err
		}
		client, err := mongo.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		d.onShutdown("mongo", client.Disconnect)
		store := mongostore.New(client.Database(cfg.Database))
		if err := seed(app.MembersFixture, func(m *member.Member) error { return store.Upsert(ctx, m) }); err != nil {
			return err
		}
		d.members = store
		d.checks = append(d.checks, httpserver.Check{Name: "mongo", Fn: mongo.Healthcheck(client)})

	default:
		return fmt.Errorf("unknown member backend %q", app.MemberBackend)
	}
	return nil
}

func openSessionStore(ctx context.Context, cfg session.Config, d *deps) error {
	switch cfg.Backend {
	case backendMemory, "":
		store := session.NewMemoryStore(cfg.CleanupInterval)
		d.onShutdown("session memory store", func(context.Context) error { return store.Close() })
		d.sessions = store

	case backendRedis:
		client, err := d.redisClient(ctx)
		if err != nil {
			return err
		}
		d.sessions = session.NewRedisStore(client, cfg.RedisKeyPrefix)

	default:
		return fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
	return nil
}

func openThrottle(ctx context.Context, cfg loginthrottle.Config, d *deps) (*loginthrottle.Limiter, error) {
	var store loginthrottle.Store
	switch cfg.Backend {
	case backendMemory, "":
		mem := loginthrottle.NewMemoryStore(time.Minute, 2*cfg.RefillInterval*time.Duration(cfg.Capacity))
		d.onShutdown("throttle memory store", func(context.Context) error { return mem.Close() })
		store = mem

	case backendRedis:
		client, err := d.redisClient(ctx)
		if err != nil {
			return nil, err
		}
		store = loginthrottle.NewRedisStore(client, cfg.RedisPrefix)

	default:
		return nil, fmt.Errorf("unknown login throttle backend %q", cfg.Backend)
	}

	limiter, err := loginthrottle.New(store, cfg)
	if err != nil {
		return nil, fmt.Errorf("login throttle: %w", err)
	}
	return limiter, nil
}

// redisClient connects on first use and shares the client between the
// session store and the login throttle.
func (d *deps) redisClient(ctx context.Context) (*goredis.Client, error) {
	if d.redis != nil {
		return d.redis, nil
	}
	var cfg redis.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	d.redis = client
	d.onShutdown("redis", func(context.Context) error { return client.Close() })
	d.checks = append(d.checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	return client, nil
}

// seed loads the members fixture at path, if any, and passes each member to put.
func seed(path string, put func(*member.Member) error) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open members fixture: %w", err)
	}
	defer f.Close()

	staging := member.NewMemoryStore()
	if err := staging.LoadYAML(f); err != nil {
		return err
	}
	for _, m := range staging.All() {
		if err := put(m); err != nil {
			return fmt.Errorf("seed member %q: %w", m.ID, err)
		}
	}
	return nil
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
