package handlers

import (
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/havenapp/haven-api/models"
	templates "github.com/havenapp/haven-api/templates/html"
)

// AlertMailer emails the authority inbox when something needs eyes
// sooner than the dashboard would surface it. With no API key or
// recipient configured it degrades to a no-op.
type AlertMailer struct {
	apiKey string
	to     string
}

func NewAlertMailer(apiKey, to string) *AlertMailer {
	return &AlertMailer{apiKey: apiKey, to: to}
}

// Enabled reports whether the mailer has enough configuration to send
func (m *AlertMailer) Enabled() bool {
	return m.apiKey != "" && m.to != ""
}

// SendHighSeverityAlert notifies the authority inbox about a freshly
// reported high severity case
func (m *AlertMailer) SendHighSeverityAlert(c models.Case) {
	if !m.Enabled() {
		return
	}

	subject := "High Severity Case Reported"
	htmlContent := templates.RenderHighSeverityAlertEmail(c)
	plainText := "A new high severity case needs immediate attention. Case ID: " + c.ID

	if err := m.send(subject, htmlContent, plainText); err != nil {
		zap.S().Errorw("failed to send high severity alert", "error", err, "caseId", c.ID)
		return
	}
	zap.S().Infow("sent high severity alert", "caseId", c.ID)
}

// SendCaseDigest emails the daily summary of cases awaiting closure
func (m *AlertMailer) SendCaseDigest(cases []models.Case) {
	if !m.Enabled() {
		return
	}

	subject := "Daily Case Digest"
	htmlContent := templates.RenderCaseDigestEmail(cases)
	plainText := "Cases awaiting closure: see the authority dashboard."

	if err := m.send(subject, htmlContent, plainText); err != nil {
		zap.S().Errorw("failed to send case digest", "error", err)
		return
	}
	zap.S().Infow("sent case digest", "cases", len(cases))
}

func (m *AlertMailer) send(subject, htmlContent, plainText string) error {
	from := mail.NewEmail("Haven Safety Network", "no-reply@havenapp.local")
	to := mail.NewEmail("Authority Desk", m.to)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
