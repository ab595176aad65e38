package cmd

import (
	"context"
	"crypto/rand"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"infinitech-web/common/constant"
	"infinitech-web/common/form"
	"infinitech-web/common/otel"
	"infinitech-web/common/session"
	"infinitech-web/outbound/backend"
	"infinitech-web/outbound/email"
	"infinitech-web/outbound/report"
	"log"
	"log/slog"
	"os"
	"time"
)

// envBindings maps config keys to the environment variables the site has
// always been deployed with. Earlier names win.
var envBindings = map[string][]string{
	"admin.password":         {"ADMIN_PASSWORD"},
	"admin.password_hash":    {"ADMIN_PASSWORD_HASH"},
	"admin.session_secret":   {"ADMIN_SESSION_SECRET"},
	"smtp.host":              {"SMTP_HOST"},
	"smtp.port":              {"SMTP_PORT"},
	"smtp.username":          {"SMTP_USERNAME", "SMTP_USER"},
	"smtp.password":          {"SMTP_PASSWORD", "SMTP_PASS"},
	"smtp.from":              {"SMTP_FROM_EMAIL", "SMTP_FROM"},
	"smtp.receiver":          {"SMTP_RECEIVER"},
	"backend.url":            {"NEXT_PUBLIC_API_URL", "BACKEND_API_URL"},
	"email.provider":         {"EMAIL_PROVIDER"},
	"email.sendgrid.api_key": {"SENDGRID_API_KEY"},
	"redis.addr":             {"REDIS_ADDR"},
	"redis.password":         {"REDIS_PASSWORD"},
	"nats.addr":              {"NATS_ADDR"},
	"otel.endpoint":          {"OTEL_EXPORTER_OTLP_ENDPOINT"},
}

func newCfg(name string) *viper.Viper {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	config := viper.New()

	config.SetConfigName(name)
	config.SetConfigType("yaml")
	config.AddConfigPath(".")

	setDefaults(config)

	for key, envs := range envBindings {
		if err := config.BindEnv(append([]string{key}, envs...)...); err != nil {
			log.Fatalln(err)
		}
	}

	if err := config.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalln(err)
		}
	}

	err := os.Setenv("TZ", config.GetString("server.timezone"))
	if err != nil {
		log.Fatalln(err)
	}

	return config
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("server.port", 8080)
	config.SetDefault("server.timezone", "Asia/Manila")
	config.SetDefault("server.timeout", "60s")
	config.SetDefault("log.level", 0)

	config.SetDefault("backend.url", "http://localhost:8000")
	config.SetDefault("backend.timeout.default", "15s")
	config.SetDefault("backend.timeout.list", "10s")
	config.SetDefault("backend.timeout.upload", "30s")
	config.SetDefault("backend.timeout.ping", "5s")

	config.SetDefault("admin.session_ttl", "168h")

	config.SetDefault("smtp.host", "smtp.gmail.com")
	config.SetDefault("smtp.port", 587)
	config.SetDefault("email.provider", email.ProviderSMTP)
	config.SetDefault("email.logo_path", "public/images/logo.png")

	config.SetDefault("ratelimit.limit", 20)
	config.SetDefault("ratelimit.window", "1m")

	config.SetDefault("cron.backend_health.spec", "@every 30s")
}

func newLocation(cfg *viper.Viper) *time.Location {
	loc, err := time.LoadLocation(cfg.GetString("server.timezone"))
	if err != nil {
		slog.Warn("unknown server timezone, using UTC", slog.String("timezone", cfg.GetString("server.timezone")))
		return time.UTC
	}
	return loc
}

// newRedis returns nil when no redis address is configured. Sessions are
// then not revocable and public routes are not rate limited.
func newRedis(cfg *viper.Viper) *redis.Client {
	if cfg.GetString("redis.addr") == "" {
		slog.Warn("redis not configured, session revocation and rate limiting disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.GetString("redis.addr"),
		Password: cfg.GetString("redis.password"),
		DB:       0,
	})

	err := rdb.Ping(context.Background()).Err()
	if err != nil {
		log.Fatalln(err)
	}

	return rdb
}

func newNats(viper *viper.Viper) *nats.Conn {
	if viper.GetString("nats.addr") == "" {
		slog.Warn("nats not configured, submission events disabled")
		return nil
	}

	conn, err := nats.Connect(viper.GetString("nats.addr"))
	if err != nil {
		log.Fatalln(err)
	}

	return conn
}

func newJs(conn *nats.Conn) jetstream.JetStream {
	if conn == nil {
		return nil
	}

	js, err := jetstream.New(conn)
	if err != nil {
		log.Fatalln(err)
	}

	return js
}

// createEventStream keeps submission events for downstream consumers. Old
// events are dropped once the stream is full.
func createEventStream(ctx context.Context, js jetstream.JetStream) jetstream.Stream {
	cfg := jetstream.StreamConfig{
		Name:      constant.EventStreamName,
		Retention: jetstream.LimitsPolicy,
		Subjects:  []string{constant.AllWildcard},
		MaxAge:    30 * 24 * time.Hour,
		MaxBytes:  -1,
	}

	st, err := js.CreateOrUpdateStream(ctx, cfg)
	if err != nil {
		panic(err)
	}

	return st
}

func newTracer(ctx context.Context, cfg *viper.Viper) func(context.Context) error {
	endpoint := cfg.GetString("otel.endpoint")
	if endpoint == "" {
		return func(context.Context) error { return nil }
	}

	shutdown, err := otel.InitTracerProvider(ctx, endpoint)
	if err != nil {
		log.Fatalln(err)
	}

	slog.Info("tracing enabled", slog.String("endpoint", endpoint))
	return shutdown
}

func newMailer(cfg *viper.Viper) *email.EmailOutbound {
	mailer := &email.EmailOutbound{Cfg: cfg}
	mailer.Init()

	if !mailer.Configured() {
		slog.Warn("email service not configured, sends will fail", slog.String("provider", cfg.GetString("email.provider")))
	}

	return mailer
}

func newComposer(cfg *viper.Viper) *email.Composer {
	receiver := cfg.GetString("smtp.receiver")
	if receiver == "" {
		receiver = cfg.GetString("smtp.username")
	}

	return email.NewComposer(receiver, cfg.GetString("email.logo_path"))
}

func newBackend(cfg *viper.Viper) *backend.Client {
	client := backend.NewClient(cfg.GetString("backend.url"), cfg.GetDuration("backend.timeout.default"))
	client.ListTimeout = cfg.GetDuration("backend.timeout.list")
	client.UploadTimeout = cfg.GetDuration("backend.timeout.upload")
	client.PingTimeout = cfg.GetDuration("backend.timeout.ping")

	return client
}

func newReports(cfg *viper.Viper) *report.Generator {
	return report.NewGenerator(cfg.GetString("email.logo_path"), newLocation(cfg))
}

// newSessions signs with a random per-process secret when none is
// configured, so sessions do not survive a restart.
func newSessions(cfg *viper.Viper, cache *redis.Client) *session.Manager {
	secret := []byte(cfg.GetString("admin.session_secret"))
	if len(secret) == 0 {
		slog.Warn("admin.session_secret not set, using a random secret")

		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatalln(err)
		}
	}

	return session.NewManager(secret, cfg.GetDuration("admin.session_ttl"), cache)
}

func newValidator() *validator.Validate {
	return form.NewValidator()
}
