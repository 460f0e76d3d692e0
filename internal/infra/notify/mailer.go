package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	domain "github.com/bryanwahyu/dealflow/internal/domain/deals"
)

// Mailer implements the Notifier port over SMTP.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password, from: from}
}

// Send renders the message template and delivers one mail to all
// recipients. Stored artifacts are referenced by link inside the rendered
// body; they live in object storage, not on this host.
func (m *Mailer) Send(ctx context.Context, msg domain.Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("send %s: no recipients", msg.Template)
	}

	subject, body, err := Render(msg.Template, msg.Vars)
	if err != nil {
		return err
	}

	mm := mail.NewMsg()
	if err := mm.From(m.from); err != nil {
		return fmt.Errorf("send %s: %w", msg.Template, err)
	}
	if err := mm.To(msg.To...); err != nil {
		return fmt.Errorf("send %s: %w", msg.Template, err)
	}
	mm.Subject(subject)
	mm.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
	)
	if err != nil {
		return fmt.Errorf("send %s: %w", msg.Template, err)
	}
	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("send %s: %w", msg.Template, err)
	}
	return nil
}
