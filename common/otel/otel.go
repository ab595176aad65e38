package otel

import (
	"context"
	"fmt"
	gootel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const ServiceName = "infinitech-web"

// Tracer resolves through the global provider, so spans started before
// InitTracerProvider are no-ops and later ones are exported.
var Tracer = gootel.Tracer(ServiceName)

// InitTracerProvider installs an OTLP/gRPC exporter as the global tracer provider.
// The returned func flushes and stops it.
func InitTracerProvider(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", ServiceName))),
	)

	gootel.SetTracerProvider(provider)
	gootel.SetTextMapPropagator(propagation.TraceContext{})

	return provider.Shutdown, nil
}
