package utils

import (
	"fmt"
	"html"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
)

// Mailer relaie les messages du formulaire de contact public.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer envoie via le SMTP configuré en .env.
type SMTPMailer struct{}

func (SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@packline.in"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// PasswordResetHTML génère le mail de réinitialisation envoyé à un
// admin qui a oublié son mot de passe.
func PasswordResetHTML(name, link string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body>
	<h2>Réinitialisation de votre mot de passe</h2>
	<p>Bonjour %s,</p>
	<p>Cliquez sur le lien ci-dessous pour choisir un nouveau mot de passe.
	Ce lien expire dans une heure.</p>
	<p><a href="%s">Réinitialiser mon mot de passe</a></p>
	<p>Si vous n'êtes pas à l'origine de cette demande, ignorez ce message.</p>
</body>
</html>`,
		html.EscapeString(name), link)
}

// ContactMessageHTML génère le corps du mail transmis à l'équipe
// quand un visiteur envoie le formulaire de contact.
func ContactMessageHTML(name, email, message string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body>
	<h2>Nouveau message depuis le site</h2>
	<p><strong>Nom :</strong> %s</p>
	<p><strong>Email :</strong> %s</p>
	<p><strong>Message :</strong></p>
	<p>%s</p>
</body>
</html>`,
		html.EscapeString(name), html.EscapeString(email), html.EscapeString(message))
}
