package infra

import (
	"fmt"
	"net/smtp"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending aviso notifications.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     from,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendAviso sends a purchase-assignment notification. Body is HTML.
func (m *Mailer) SendAviso(to, subject, htmlBody string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(htmlBody)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}

// SendResetToken mails a password reset link to the user.
func (m *Mailer) SendResetToken(to, resetURL string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = "Restablecer contraseña"
	e.HTML = []byte(fmt.Sprintf(
		"<p>Para restablecer tu contraseña hacé clic en el siguiente enlace:</p><p><a href=%q>%s</a></p><p>El enlace vence pronto y sólo puede usarse una vez.</p>",
		resetURL, resetURL))

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
