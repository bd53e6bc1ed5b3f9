package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/chatly/authkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string        `yaml:"service_name" mapstructure:"service_name"`
	ServiceVersion string        `yaml:"service_version" mapstructure:"service_version"`
	Environment    string        `yaml:"environment" mapstructure:"environment"`
	Endpoint       string        `yaml:"endpoint" mapstructure:"endpoint"` // OTLP HTTP host:port
	Insecure       bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval       time.Duration `yaml:"interval" mapstructure:"interval"`
}

// InitMeter initializes the global meter provider. The returned provider
// must be shut down on exit so pending exports flush.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Sign-in methods as recorded on metrics.
const (
	MethodCredentials = "credentials"
	MethodGoogle      = "google"
)

// Sign-in outcomes as recorded on metrics.
const (
	OutcomeSuccess     = "success"
	OutcomeRejected    = "rejected"
	OutcomeUnreachable = "unreachable"
	OutcomeError       = "error"
)

// AuthMetrics holds the auth service's metric instruments.
type AuthMetrics struct {
	signInTotal        metric.Int64Counter
	signUpTotal        metric.Int64Counter
	sessionUpdateTotal metric.Int64Counter
	gateRedirectTotal  metric.Int64Counter
}

// NewAuthMetrics creates the instruments on the given meter.
func NewAuthMetrics(meter metric.Meter) (*AuthMetrics, error) {
	signInTotal, err := meter.Int64Counter("auth.signin.total",
		metric.WithDescription("Sign-in attempts by method and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.signin.total counter: %w", err)
	}

	signUpTotal, err := meter.Int64Counter("auth.signup.total",
		metric.WithDescription("Sign-up attempts by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.signup.total counter: %w", err)
	}

	sessionUpdateTotal, err := meter.Int64Counter("auth.session.update.total",
		metric.WithDescription("Session patch operations by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.session.update.total counter: %w", err)
	}

	gateRedirectTotal, err := meter.Int64Counter("auth.gate.redirect.total",
		metric.WithDescription("Gate redirects by target"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.gate.redirect.total counter: %w", err)
	}

	return &AuthMetrics{
		signInTotal:        signInTotal,
		signUpTotal:        signUpTotal,
		sessionUpdateTotal: sessionUpdateTotal,
		gateRedirectTotal:  gateRedirectTotal,
	}, nil
}

// RecordSignIn records one sign-in attempt.
func (m *AuthMetrics) RecordSignIn(ctx context.Context, method, outcome string) {
	m.signInTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("outcome", outcome),
	))
}

// RecordSignUp records one sign-up attempt.
func (m *AuthMetrics) RecordSignUp(ctx context.Context, outcome string) {
	m.signUpTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

// RecordSessionUpdate records one session patch.
func (m *AuthMetrics) RecordSessionUpdate(ctx context.Context, outcome string) {
	m.sessionUpdateTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

// RecordGateRedirect records one gate redirect.
func (m *AuthMetrics) RecordGateRedirect(ctx context.Context, target string) {
	m.gateRedirectTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("target", target),
	))
}
