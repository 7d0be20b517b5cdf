package middleware

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Telemetry middleware adds OpenTelemetry tracing. With no provider
// configured the global tracer is a no-op.
func Telemetry() echo.MiddlewareFunc {
	tracer := otel.Tracer("goldlinks-api")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			spanName := req.Method + " " + c.Path()
			ctx, span := tracer.Start(req.Context(), spanName)
			defer span.End()

			span.SetAttributes(
				attribute.String("http.method", req.Method),
				attribute.String("http.url", req.URL.String()),
				attribute.String("http.route", c.Path()),
				attribute.String("user_agent", req.UserAgent()),
			)

			if requestID, ok := c.Get("request_id").(string); ok {
				span.SetAttributes(attribute.String("request.id", requestID))
			}
			if storeID := c.Param("id"); storeID != "" {
				span.SetAttributes(attribute.String("resource.id", storeID))
			}

			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			// user_id is only known after the auth middleware ran
			if userID, ok := c.Get("user_id").(uuid.UUID); ok {
				span.SetAttributes(attribute.String("user.id", userID.String()))
			}

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			span.SetAttributes(attribute.Int("http.status_code", status))

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else if status >= 500 {
				span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
			}

			return err
		}
	}
}
