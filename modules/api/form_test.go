package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	domain "github.com/example/calculator-demo/domain/calculator"
	"github.com/example/calculator-demo/modules/calculator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowForm(t *testing.T) {
	app := newTestApp(&mockCalculatorPort{}, &mockAuditPort{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	_, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, body, `<option value="add" selected>Add (+)</option>`)
	assert.Contains(t, body, `Divide (÷)`)
	assert.NotContains(t, body, "error-message")
	assert.NotContains(t, body, "Result:")
}

func TestSubmitForm(t *testing.T) {
	tests := []struct {
		name        string
		form        url.Values
		wantContain []string
		wantAbsent  []string
		wantCalled  bool
	}{
		{
			name:        "divide",
			form:        url.Values{"num1": {"10"}, "num2": {"2"}, "operation": {"divide"}},
			wantContain: []string{"Result:", `<p class="result-value">5</p>`, `<option value="divide" selected>`},
			wantAbsent:  []string{"error-message"},
			wantCalled:  true,
		},
		{
			name:        "decimals",
			form:        url.Values{"num1": {"2.5"}, "num2": {"1.5"}, "operation": {"add"}},
			wantContain: []string{`<p class="result-value">4</p>`},
			wantCalled:  true,
		},
		{
			name:        "missing operand",
			form:        url.Values{"num1": {"5"}, "num2": {""}, "operation": {"add"}},
			wantContain: []string{"Please enter both numbers", `value="5"`},
			wantAbsent:  []string{"Result:"},
		},
		{
			name:        "invalid operand",
			form:        url.Values{"num1": {"12.34.56"}, "num2": {"1"}, "operation": {"add"}},
			wantContain: []string{"Please enter valid numbers"},
			wantAbsent:  []string{"Result:"},
		},
		{
			name:        "division by zero",
			form:        url.Values{"num1": {"10"}, "num2": {"0"}, "operation": {"divide"}},
			wantContain: []string{"Division by zero is not allowed"},
			wantAbsent:  []string{"Result:"},
			wantCalled:  true,
		},
		{
			name:        "unknown operation",
			form:        url.Values{"num1": {"1"}, "num2": {"2"}, "operation": {"modulo"}},
			wantContain: []string{"Invalid operation: modulo"},
			wantCalled:  true,
		},
		{
			name:        "overflow",
			form:        url.Values{"num1": {"1e308"}, "num2": {"10"}, "operation": {"multiply"}},
			wantContain: []string{"Result is out of range"},
			wantAbsent:  []string{"Result:", "unavailable"},
			wantCalled:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := &mockCalculatorPort{}
			app := newTestApp(calc, &mockAuditPort{})

			status, body := doRequest(t, app, formRequest(tt.form))
			assert.Equal(t, http.StatusOK, status)
			for _, s := range tt.wantContain {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.wantAbsent {
				assert.NotContains(t, body, s)
			}
			assert.Equal(t, tt.wantCalled, calc.lastRequest != nil)
		})
	}
}

func TestSubmitForm_SendsNumericOperands(t *testing.T) {
	calc := &mockCalculatorPort{}
	app := newTestApp(calc, &mockAuditPort{})

	_, _ = doRequest(t, app, formRequest(url.Values{"num1": {" 3.5 "}, "num2": {"-2"}, "operation": {"multiply"}}))

	require.NotNil(t, calc.lastRequest)
	assert.JSONEq(t, "3.5", string(calc.lastRequest.A))
	assert.JSONEq(t, "-2", string(calc.lastRequest.B))
	assert.Equal(t, "multiply", calc.lastRequest.Operation)
}

func TestSubmitForm_ServiceUnavailable(t *testing.T) {
	calc := &mockCalculatorPort{
		calculateFunc: func(context.Context, *calculator.CalculateRequest) (*calculator.CalculateResponse, error) {
			return nil, errors.New("nats: no responders")
		},
	}
	app := newTestApp(calc, &mockAuditPort{})

	status, body := doRequest(t, app, formRequest(url.Values{"num1": {"1"}, "num2": {"2"}, "operation": {"add"}}))
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, body, "The calculator is unavailable")
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5, "5"},
		{0, "0"},
		{-2.5, "-2.5"},
		{0.1 + 0.2, "0.30000000000000004"},
		{1e21, "1e+21"},
		{1e-7, "1e-07"},
		{123456789, "123456789"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatResult(tt.in), "formatResult(%v)", tt.in)
	}
}

func TestStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests, statusForCode("rate_limited"))
	assert.Equal(t, http.StatusBadRequest, statusForCode(domain.CodeDivisionByZero))
	assert.Equal(t, http.StatusBadRequest, statusForCode(domain.CodeInvalidOperation))
	assert.Equal(t, http.StatusUnprocessableEntity, statusForCode(domain.CodeResultOutOfRange))
	assert.Equal(t, http.StatusInternalServerError, statusForCode(domain.CodeUnknown))
	assert.Equal(t, http.StatusInternalServerError, statusForCode(""))
}

func TestFormMessage(t *testing.T) {
	assert.Equal(t, "Please enter both numbers", formMessage(domain.ErrMissingOperand))
	assert.Equal(t, "Please enter valid numbers", formMessage(domain.ErrInvalidNumber))
	assert.Equal(t, "Division by zero is not allowed", formMessage(domain.ErrDivisionByZero))
	assert.Equal(t, "", capitalize(""))
}
