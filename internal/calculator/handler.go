package calculator

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("calculator")

// CalculateHandler handles POST /calculate.
func CalculateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.calculate",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	req, err := DecodeRequest(r.Body)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "unknown", Kind(err), Message(err), err, http.StatusBadRequest, w)
		return
	}

	opName := req.Operation.String()
	span.SetName(fmt.Sprintf("calculator.%s", opName))
	span.SetAttributes(
		attribute.String("calculator.operation", opName),
		attribute.Float64("calculator.operand.a", req.Operand1),
		attribute.Float64("calculator.operand.b", req.Operand2),
	)

	start := time.Now()
	result, err := Calculate(req)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, Kind(err), Message(err), err, http.StatusBadRequest, w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	calculationsCounter.Add(ctx, 1, attrs)
	durationHistogram.Record(ctx, elapsed, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculation completed",
		zap.String("operation", opName),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	// JSON has no encoding for NaN or Inf; such results go out as null.
	if math.IsNaN(result) || math.IsInf(result, 0) {
		handlers.WriteJSON(w, http.StatusOK, map[string]any{"result": nil})
		return
	}

	resultGauge.Record(ctx, result, attrs)
	handlers.WriteJSON(w, http.StatusOK, CalculateResponse{Result: &result})
}
