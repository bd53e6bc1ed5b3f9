// Command authkit runs the authentication service for the chat app: it
// fronts the account service with credential and Google sign-in, mints
// client-held sessions, and gates page routes.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chatly/authkit/accounts"
	"github.com/chatly/authkit/auth/oidc"
	"github.com/chatly/authkit/config"
	"github.com/chatly/authkit/gate"
	"github.com/chatly/authkit/logger"
	"github.com/chatly/authkit/observability"
	"github.com/chatly/authkit/server"
	"github.com/chatly/authkit/server/handler"
	"github.com/chatly/authkit/session"
	"github.com/chatly/authkit/util"
	"github.com/chatly/authkit/version"
)

func main() {
	var cfg config.Config
	if err := config.Load("authkit", &cfg); err != nil {
		logger.Fatal("failed to load configuration", logger.ErrorFields("load_config", err))
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", logger.ErrorFields("validate_config", err))
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	log.Info("starting authkit", logger.Fields(
		"version", version.GetShortVersion(),
		"environment", cfg.Environment,
		"accounts", cfg.Accounts.BaseURL,
		"jwt_secret", util.MaskSecret(cfg.Session.JWT.Secret, 4),
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.AuthMetrics
	if cfg.Telemetry.Enabled {
		tp, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: version.GetVersionInfo().Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Telemetry.Endpoint,
			Insecure:       cfg.Telemetry.Insecure,
			SampleRate:     cfg.Telemetry.SampleRate,
		})
		if err != nil {
			log.Fatal("failed to init tracer", logger.ErrorFields("init_tracer", err))
		}
		defer shutdown(tp.Shutdown, log, "tracer")

		mp, err := observability.InitMeter(ctx, &observability.MeterConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: version.GetVersionInfo().Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Telemetry.Endpoint,
			Insecure:       cfg.Telemetry.Insecure,
			Interval:       cfg.Telemetry.Interval,
		})
		if err != nil {
			log.Fatal("failed to init meter", logger.ErrorFields("init_meter", err))
		}
		defer shutdown(mp.Shutdown, log, "meter")

		metrics, err = observability.NewAuthMetrics(observability.Meter(cfg.Name))
		if err != nil {
			log.Fatal("failed to create metrics", logger.ErrorFields("init_metrics", err))
		}
	}

	accountsClient, err := accounts.New(cfg.Accounts)
	if err != nil {
		log.Fatal("failed to create accounts client", logger.ErrorFields("init_accounts", err))
	}

	codec, err := session.NewCodec(&cfg.Session.JWT, cfg.Session.EncryptionKey)
	if err != nil {
		log.Fatal("failed to create session codec", logger.ErrorFields("init_session", err))
	}
	sessions := session.NewManager(codec, log)
	jar := session.NewCookieJar(cfg.Session.Cookie)

	var google oidc.Provider
	if cfg.Google.Enabled {
		google, err = oidc.NewGoogle(cfg.Google.Config)
		if err != nil {
			log.Fatal("failed to create google provider", logger.ErrorFields("init_google", err))
		}
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.RegisterDefaultEndpoints(cfg.Name, func(ctx context.Context) map[string]error {
		return map[string]error{"accounts": accountsClient.Health(ctx)}
	})

	accessGate := gate.New(cfg.Gate, codec.Validator(), jar.Read, log)
	if metrics != nil {
		accessGate.WithMetrics(metrics)
	}
	srv.GinEngine().Use(accessGate.Middleware())

	h := handler.New(cfg.Handler, accountsClient, sessions, jar, google, metrics, log)
	h.RegisterRoutes(srv.GinEngine())

	if err := srv.Start(ctx); err != nil {
		log.Fatal("failed to start server", logger.ErrorFields("start_server", err))
	}

	<-ctx.Done()
	log.Info("shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(stopCtx); err != nil {
		log.Error("server stopped uncleanly", logger.ErrorFields("stop_server", err))
		os.Exit(1)
	}
}

func shutdown(fn func(context.Context) error, log *logger.Logger, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Warn("telemetry shutdown failed", logger.Fields("component", name, "error", err.Error()))
	}
}
