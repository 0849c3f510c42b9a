package mailer

import (
	"fmt"
	"html/template"
	"strings"
)

// PaymentResults feeds the payment notification template.
type PaymentResults struct {
	Message  string
	Severity string
	Approved bool
	Details  template.HTML
}

var paymentTmpl = template.Must(template.New("payment").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 600px; margin: 0 auto;">
    <h2 style="color: {{if .Approved}}#28a745{{else}}#dc3545{{end}};">{{.Message}}</h2>
    {{.Details}}
    <p style="color: #777; font-size: 12px;">Please keep this email for your records.</p>
  </div>
</body>
</html>`))

// PaymentEmail renders the payment notification body.
func PaymentEmail(results PaymentResults) (string, error) {
	var body strings.Builder
	if err := paymentTmpl.Execute(&body, results); err != nil {
		return "", fmt.Errorf("rendering payment email: %w", err)
	}
	return body.String(), nil
}
