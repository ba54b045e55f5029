package infrastructure

import "go.opentelemetry.io/otel"

var tracer = otel.GetTracerProvider().Tracer("bookingHub/internal/modules/reservations/infrastructure")
