package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
)

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
}

func NewEmailService(apiKey, from, fromName string) *EmailService {
	return &EmailService{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
	}
}

var confirmationTmpl = template.Must(template.New("rsvp-confirmation").Parse(`
<html>
  <body>
    <p>Hola {{.Name}},</p>
    {{if .Attending}}
    <p>We got your RSVP — we can't wait to celebrate with you!</p>
    {{else}}
    <p>We got your RSVP. We're sorry you can't make it, and we'll miss you.</p>
    {{end}}
    <p>You can come back and add photos any time using the link on the invitation.</p>
    <p>&copy; {{.Year}}</p>
  </body>
</html>`))

// SendRSVPConfirmation emails the submitter a short acknowledgement. Callers
// treat failures as non-fatal.
func (s *EmailService) SendRSVPConfirmation(to, name string, attending bool) error {
	var html bytes.Buffer
	err := confirmationTmpl.Execute(&html, map[string]interface{}{
		"Name":      name,
		"Attending": attending,
		"Year":      time.Now().Year(),
	})
	if err != nil {
		return fmt.Errorf("render confirmation template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: "Your RSVP is in!",
		Html:    html.String(),
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("send confirmation to %s: %w", to, err)
	}
	return nil
}
