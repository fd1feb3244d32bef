package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"math"
	"strconv"

	domain "github.com/example/calculator-demo/domain/calculator"
	"github.com/example/calculator-demo/modules/calculator"
	"github.com/gofiber/fiber/v2"
)

var formTemplate = template.Must(template.New("calculator").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Calculator</title>
</head>
<body>
<div class="calculator-container">
<h1>Calculator</h1>
<form method="post" action="/">
  <div class="input-group">
    <label for="num1">First number:</label>
    <input id="num1" name="num1" type="text" inputmode="decimal" value="{{.Num1}}" placeholder="Enter a number" autofocus>
  </div>
  <div class="input-group">
    <label for="operation">Operation:</label>
    <select id="operation" name="operation">
    {{- range .Operations}}
      <option value="{{.Tag}}"{{if eq .Tag $.Operation}} selected{{end}}>{{.Label}}</option>
    {{- end}}
    </select>
  </div>
  <div class="input-group">
    <label for="num2">Second number:</label>
    <input id="num2" name="num2" type="text" inputmode="decimal" value="{{.Num2}}" placeholder="Enter a number">
  </div>
  <div class="button-group">
    <button type="submit" class="btn-calculate">Calculate</button>
    <a href="/" class="btn-clear">Clear</a>
  </div>
</form>
{{- if .Error}}
<div class="error-message" role="alert">{{.Error}}</div>
{{- end}}
{{- if .HasResult}}
<div class="result">
  <h2>Result:</h2>
  <p class="result-value">{{.Result}}</p>
</div>
{{- end}}
</div>
</body>
</html>
`))

// formView is the data rendered by formTemplate.
type formView struct {
	Num1       string
	Num2       string
	Operation  string
	Operations []OperationResponse
	Error      string
	Result     string
	HasResult  bool
}

func newFormView() formView {
	ops := domain.Operations()
	view := formView{
		Operation:  domain.OpAdd.String(),
		Operations: make([]OperationResponse, 0, len(ops)),
	}
	for _, op := range ops {
		view.Operations = append(view.Operations, OperationResponse{
			Tag:    op.String(),
			Symbol: op.Symbol(),
			Label:  op.Label(),
		})
	}
	return view
}

// showForm handles GET /. It always renders an empty form with "add" selected.
func (m *APIModule) showForm(c *fiber.Ctx) error {
	return renderForm(c, fiber.StatusOK, newFormView())
}

// submitForm handles POST /: validate the raw inputs, then calculate.
func (m *APIModule) submitForm(c *fiber.Ctx) error {
	view := newFormView()
	view.Num1 = c.FormValue("num1")
	view.Num2 = c.FormValue("num2")
	view.Operation = c.FormValue("operation", domain.OpAdd.String())

	a, errA := domain.ParseOperand(view.Num1)
	b, errB := domain.ParseOperand(view.Num2)
	switch {
	case errors.Is(errA, domain.ErrMissingOperand), errors.Is(errB, domain.ErrMissingOperand):
		view.Error = formMessage(domain.ErrMissingOperand)
		return renderForm(c, fiber.StatusOK, view)
	case errA != nil:
		view.Error = formMessage(errA)
		return renderForm(c, fiber.StatusOK, view)
	case errB != nil:
		view.Error = formMessage(errB)
		return renderForm(c, fiber.StatusOK, view)
	}

	resp, err := m.calculator.Calculate(c.Context(), &calculator.CalculateRequest{
		A:         rawNumber(a),
		B:         rawNumber(b),
		Operation: view.Operation,
	})
	if err != nil {
		m.logger.Error("Calculate call failed", "error", err)
		view.Error = "The calculator is unavailable, please try again"
		return renderForm(c, fiber.StatusBadGateway, view)
	}
	if resp.Error != "" {
		view.Error = capitalize(resp.Error)
		return renderForm(c, fiber.StatusOK, view)
	}

	view.Result = formatResult(resp.Result)
	view.HasResult = true
	return renderForm(c, fiber.StatusOK, view)
}

func renderForm(c *fiber.Ctx, status int, view formView) error {
	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, view); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render form")
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// rawNumber encodes a finite float64 as a JSON number.
func rawNumber(f float64) json.RawMessage {
	return json.RawMessage(strconv.FormatFloat(f, 'g', -1, 64))
}

// formatResult prints plain decimals for everyday magnitudes and
// switches to exponent notation for very large or very small values.
func formatResult(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
