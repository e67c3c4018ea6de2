package mailer

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
)

// SMTPMailer sends mail over SMTP with STARTTLS (the classic
// smtp.gmail.com:587 setup the product launched on).
type SMTPMailer struct {
	host string
	port int
	from string
	user string
	pass string
}

func NewSMTPMailer(host string, port int, from, user, pass string) *SMTPMailer {
	return &SMTPMailer{
		host: strings.TrimSpace(host),
		port: port,
		from: strings.TrimSpace(from),
		user: strings.TrimSpace(user),
		pass: pass,
	}
}

func (m *SMTPMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" {
		return "", fmt.Errorf("empty recipient email")
	}

	msgID := fmt.Sprintf("<%s@%s>", uuid.NewString(), m.host)

	var buf bytes.Buffer
	boundary := "alt-boundary"
	fmt.Fprintf(&buf, "From: %s\r\n", m.from)
	fmt.Fprintf(&buf, "To: %s\r\n", toEmail)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "Message-ID: %s\r\n", msgID)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", text)

	if html != "" {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
		fmt.Fprintf(&buf, "%s\r\n\r\n", html)
	}

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{toEmail}, buf.Bytes()); err != nil {
		return "", fmt.Errorf("smtp send failed: %w", err)
	}

	return msgID, nil
}
