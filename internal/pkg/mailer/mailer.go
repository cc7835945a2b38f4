package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/kriyahr/workforce-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// Mailer renders a named template with variables and delivers it to an
// address. Callers hold it as a nilable dependency: a nil Mailer means the
// gateway is not configured and sends are skipped, not failed.
type Mailer interface {
	Send(to, subject, templateName string, data map[string]any) error
}

type mailerImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// New creates a mailer from SMTP configuration. Returns nil (and no error)
// when no SMTP host is configured.
func New(cfg config.SMTPConfig) (Mailer, error) {
	if cfg.Host == "" {
		return nil, nil
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail templates: %w", err)
	}

	return &mailerImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

func (m *mailerImpl) Send(to, subject, templateName string, data map[string]any) error {
	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return m.sendHTML(to, subject, body.String())
}

func (m *mailerImpl) sendHTML(to, subject, htmlBody string) error {
	from := m.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", m.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
