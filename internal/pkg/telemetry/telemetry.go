// Package telemetry wires the OpenTelemetry SDK and the process-wide slog
// logger. With telemetry disabled only the JSON stdout handler is installed and
// the global providers stay no-op.
package telemetry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	slogmulti "github.com/samber/slog-multi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	batchTimeout   = 5 * time.Second
	exportInterval = 5 * time.Second
)

type Settings struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	Endpoint       string
	Level          slog.Level
	// Output defaults to os.Stdout.
	Output io.Writer
}

// Setup bootstraps tracing, log export and the default logger.
// If it does not return an error, call shutdown for proper cleanup.
func Setup(ctx context.Context, cfg Settings) (logger *slog.Logger, shutdown func(context.Context) error, err error) {
	var shutdownFuncs []func(context.Context) error

	shutdown = func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		shutdownFuncs = nil
		return err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	jsonHandler := slog.NewJSONHandler(out, &slog.HandlerOptions{AddSource: true, Level: cfg.Level})
	pipeline := slogmulti.Pipe(slogmulti.NewHandleInlineMiddleware(formatErrors))

	otel.SetTextMapPropagator(newPropagator())

	if !cfg.Enabled {
		logger = slog.New(pipeline.Handler(jsonHandler))
		slog.SetDefault(logger)
		return logger, shutdown, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	tracerProvider, err := newTraceProvider(ctx, cfg, res)
	if err != nil {
		return nil, nil, err
	}
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	otel.SetTracerProvider(tracerProvider)

	loggerProvider, err := newLoggerProvider(ctx, cfg, res)
	if err != nil {
		return nil, nil, errors.Join(err, shutdown(ctx))
	}
	shutdownFuncs = append(shutdownFuncs, loggerProvider.Shutdown)
	global.SetLoggerProvider(loggerProvider)

	otelHandler := otelslog.NewHandler(
		cfg.ServiceName,
		otelslog.WithLoggerProvider(loggerProvider),
		otelslog.WithVersion(cfg.ServiceVersion),
		otelslog.WithSource(true),
	)

	logger = slog.New(pipeline.Handler(slogmulti.Fanout(jsonHandler, otelHandler)))
	slog.SetDefault(logger)
	logger.InfoContext(ctx, "Telemetry initialized", "endpoint", cfg.Endpoint)

	return logger, shutdown, nil
}

//nolint:ireturn
func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}

func newTraceProvider(ctx context.Context, cfg Settings, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(batchTimeout)),
		sdktrace.WithResource(res),
	), nil
}

func newLoggerProvider(ctx context.Context, cfg Settings, res *resource.Resource) (*sdklog.LoggerProvider, error) {
	exporter, err := otlploggrpc.New(ctx,
		otlploggrpc.WithEndpoint(cfg.Endpoint),
		otlploggrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	return sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter, sdklog.WithExportInterval(exportInterval))),
	), nil
}

// formatErrors renders error attributes as their message so JSON output does
// not collapse them to {}.
func formatErrors(ctx context.Context, record slog.Record, next func(context.Context, slog.Record) error) error {
	formatted := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		if err, ok := attr.Value.Any().(error); ok && attr.Value.Kind() == slog.KindAny {
			attr = slog.String(attr.Key, err.Error())
		}
		formatted.AddAttrs(attr)
		return true
	})
	return next(ctx, formatted)
}
