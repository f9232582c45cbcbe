package passwordresetmailer

import (
	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/mail"
	"authflow/internal/core/domain/user"
	"bytes"
	"context"
	"html/template"
	"net/url"
)

const Subject = "Password Reset Request"

var bodyTemplate = template.Must(template.New("password-reset").Parse(`<p>Hello{{if .Name}} {{.Name}}{{end}},</p>
<p>You requested a password reset. Click the link below to reset your password:</p>
<p><a href="{{.ResetURL}}">{{.ResetURL}}</a></p>
<p>This link will expire in {{.ValidForHours}} hour{{if ne .ValidForHours 1}}s{{end}}.</p>
<p>If you did not request a password reset, please ignore this email.</p>
`))

type templateParams struct {
	Name          string
	ResetURL      string
	ValidForHours int
}

// Mailer renders reset links pointing at the frontend reset page and hands them to a mail.Sender.
type Mailer struct {
	sender        mail.Sender
	resetPageURL  url.URL
	validForHours int
}

func New(sender mail.Sender, frontendURL url.URL, validForHours int) *Mailer {
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &Mailer{
		sender:        sender,
		resetPageURL:  *frontendURL.JoinPath("reset-password"),
		validForHours: validForHours,
	}
}

func (m *Mailer) ResetURL(token user.PasswordResetToken) string {
	u := m.resetPageURL
	q := url.Values{}
	q.Set("token", string(token))
	u.RawQuery = q.Encode()
	return u.String()
}

func (m *Mailer) SendPasswordResetToken(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	var body bytes.Buffer
	err := bodyTemplate.Execute(&body, templateParams{
		Name:          u.Name,
		ResetURL:      m.ResetURL(token),
		ValidForHours: m.validForHours,
	})
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, mail.Message{
		To:      u.Email,
		Subject: Subject,
		Body:    body.String(),
	})
}
