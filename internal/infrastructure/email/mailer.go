package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/stocksync-api/internal/application/alert"
	"github.com/jhoicas/stocksync-api/pkg/config"
)

var _ alert.Mailer = (*GomailMailer)(nil)

// GomailMailer implementa el puerto Mailer sobre SMTP con gomail.
type GomailMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailMailer construye el mailer desde la configuración SMTP.
func NewGomailMailer(cfg config.SMTPConfig) *GomailMailer {
	return &GomailMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send entrega un correo de texto plano a los destinatarios.
// gomail no acepta contexto; se respeta la cancelación antes de marcar.
func (m *GomailMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	return nil
}
