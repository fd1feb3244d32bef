package api

import (
	"errors"
	"strings"

	domain "github.com/example/calculator-demo/domain/calculator"
	"github.com/example/calculator-demo/middleware/ratelimit"
	"github.com/example/calculator-demo/modules/calculator"
	"github.com/gofiber/fiber/v2"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	// Calculator form
	app.Get("/", m.showForm)
	app.Post("/", m.submitForm)

	api := app.Group("/api/v1")
	api.Post("/calculate", m.calculate)
	api.Post("/validate", m.validate)
	api.Get("/operations", m.listOperations)
	api.Get("/stats", m.stats)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.port,
		},
	})
}

// calculate handles POST /api/v1/calculate.
func (m *APIModule) calculate(c *fiber.Ctx) error {
	var req CalculateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	resp, err := m.calculator.Calculate(c.Context(), &calculator.CalculateRequest{
		A:         req.A,
		B:         req.B,
		Operation: req.Operation,
	})
	if err != nil {
		m.logger.Error("Calculate call failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error:   "calculate_failed",
			Message: err.Error(),
		})
	}

	if resp.Error != "" {
		return c.Status(statusForCode(resp.Code)).JSON(CalculateResponse{
			ID:        resp.ID,
			Operation: resp.Operation,
			Error:     resp.Error,
			Code:      resp.Code,
		})
	}

	result := resp.Result
	return c.JSON(CalculateResponse{
		ID:        resp.ID,
		Operation: resp.Operation,
		Result:    &result,
	})
}

// validate handles POST /api/v1/validate.
func (m *APIModule) validate(c *fiber.Ctx) error {
	var req ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	resp, err := m.calculator.Validate(c.Context(), req.Value)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error:   "validate_failed",
			Message: err.Error(),
		})
	}

	return c.JSON(ValidateResponse{
		Value: resp.Value,
		Valid: resp.Valid,
	})
}

// listOperations handles GET /api/v1/operations.
func (m *APIModule) listOperations(c *fiber.Ctx) error {
	resp, err := m.calculator.Operations(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error:   "operations_failed",
			Message: err.Error(),
		})
	}

	ops := make([]OperationResponse, 0, len(resp.Operations))
	for _, op := range resp.Operations {
		ops = append(ops, OperationResponse{
			Tag:    op.Tag,
			Symbol: op.Symbol,
			Label:  op.Label,
		})
	}
	return c.JSON(ListOperationsResponse{Operations: ops})
}

// stats handles GET /api/v1/stats.
func (m *APIModule) stats(c *fiber.Ctx) error {
	resp, err := m.audit.Summary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error:   "stats_failed",
			Message: err.Error(),
		})
	}

	return c.JSON(StatsResponse{
		Performed:    resp.Performed,
		Failed:       resp.Failed,
		ByOperation:  resp.ByOperation,
		FailedByCode: resp.FailedByCode,
		LastActivity: resp.LastActivity,
	})
}

// statusForCode maps a calculator error code to an HTTP status.
func statusForCode(code string) int {
	switch code {
	case ratelimit.CodeRateLimited:
		return fiber.StatusTooManyRequests
	case domain.CodeResultOutOfRange:
		return fiber.StatusUnprocessableEntity
	case domain.CodeUnknown, "":
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

// formMessage turns a form-layer error into the message shown under the form.
func formMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingOperand):
		return "Please enter both numbers"
	case errors.Is(err, domain.ErrInvalidNumber):
		return "Please enter valid numbers"
	default:
		return capitalize(err.Error())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
