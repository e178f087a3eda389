package templates

import (
	"fmt"
	"html"
	"strings"

	"github.com/havenapp/haven-api/models"
)

// RenderGenericEmail generates branded HTML for a generic email.
// The subject is displayed in the header banner, and bodyContent is plain text
// that gets HTML-escaped and has newlines converted to <br> tags.
func RenderGenericEmail(subject, bodyContent string) string {
	// HTML-escape the body to prevent injection, then convert newlines to <br>
	escaped := html.EscapeString(bodyContent)
	htmlBody := strings.ReplaceAll(escaped, "\n", "<br>")

	// HTML-escape the subject for safe display in the header
	safeSubject := html.EscapeString(subject)

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>%s</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #faf7fb; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: linear-gradient(135deg, #7c3aed 0%%, #db2777 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #1f2937; line-height: 1.6; font-size: 15px; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid rgba(0,0,0,0.1); }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      %s
    </div>
    <div class="footer">
      <p>Haven Safety Network</p>
      <p>This mailbox is not monitored.</p>
    </div>
  </div>
</body>
</html>`, safeSubject, safeSubject, htmlBody)
}

// RenderHighSeverityAlertEmail builds the notification sent to the
// authority inbox when a newly reported case scores high severity.
func RenderHighSeverityAlertEmail(c models.Case) string {
	body := fmt.Sprintf(`A new high severity case needs immediate attention.

Case ID: %s
Reported by: %s
Phone: %s
Nature: %s
Risk level: %s
Location: %s

Open the authority dashboard to triage this case.`,
		c.ID, c.Name, c.Phone, c.Nature, c.RiskLevel, c.Location.Address)

	return RenderGenericEmail("High Severity Case Reported", body)
}

// RenderCaseDigestEmail builds the daily summary of cases that are
// still awaiting closure.
func RenderCaseDigestEmail(cases []models.Case) string {
	var b strings.Builder
	fmt.Fprintf(&b, "There are %d cases awaiting closure.\n\n", len(cases))
	for _, c := range cases {
		fmt.Fprintf(&b, "%s  [%s / %s]  %s\n", c.ID, c.Status, c.Severity, c.Name)
	}
	b.WriteString("\nOpen the authority dashboard to review them.")

	return RenderGenericEmail("Daily Case Digest", b.String())
}
