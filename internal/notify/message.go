package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/voyagetravel/voyage-backend/internal/model"
)

// shortMessage is the SMS and WhatsApp rendering of an alert.
func shortMessage(alert model.SecurityAlert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s ALERT: %s\n\n%s\n\nLocation: %s",
		strings.ToUpper(alert.Severity), alert.Title, alert.Message, alert.Location)
	if alert.ActionRequired != "" {
		fmt.Fprintf(&b, "\n\nAction: %s", alert.ActionRequired)
	}
	b.WriteString("\n\n- Voyage Security Team")
	return b.String()
}

func emailSubject(alert model.SecurityAlert) string {
	return fmt.Sprintf("%s Security Alert: %s", strings.ToUpper(alert.Severity), alert.Title)
}

// emailBodies renders the HTML body and its plain text fallback.
func emailBodies(alert model.SecurityAlert) (string, string) {
	severity := strings.ToUpper(alert.Severity)

	var h strings.Builder
	h.WriteString("<!DOCTYPE html><html><body style=\"font-family:Arial,sans-serif;color:#333\">")
	fmt.Fprintf(&h, "<h1>Security Alert</h1><p><strong>%s PRIORITY</strong></p>", html.EscapeString(severity))
	fmt.Fprintf(&h, "<h2>%s</h2><p>%s</p>", html.EscapeString(alert.Title), html.EscapeString(alert.Message))
	fmt.Fprintf(&h, "<p>Location: %s</p>", html.EscapeString(alert.Location))
	if alert.ActionRequired != "" {
		fmt.Fprintf(&h, "<p><strong>Action Required:</strong> %s</p>", html.EscapeString(alert.ActionRequired))
	}
	h.WriteString("<p>Stay safe and keep your travel plans updated.</p>")
	fmt.Fprintf(&h, "<hr><p style=\"font-size:12px;color:#888\">This is an automated security alert from Voyage. "+
		"You are receiving this because you have an active trip to %s.</p>", html.EscapeString(alert.Location))
	h.WriteString("</body></html>")

	var t strings.Builder
	fmt.Fprintf(&t, "SECURITY ALERT - %s PRIORITY\n\n%s\n\n%s\n\nLocation: %s\n",
		severity, alert.Title, alert.Message, alert.Location)
	if alert.ActionRequired != "" {
		fmt.Fprintf(&t, "Action Required: %s\n", alert.ActionRequired)
	}
	t.WriteString("\nStay safe and keep your travel plans updated.\n\n---\nVoyage Security Team\n")

	return h.String(), t.String()
}
