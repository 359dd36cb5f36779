package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var verifyEmailHTML = template.Must(template.New("verify_email").Parse(`
<p>Hi {{.Name}},</p>
<p>Use the code below to verify your email address:</p>
<p><strong>{{.Code}}</strong></p>
{{if .VerifyLink}}<p>Or open <a href="{{.VerifyLink}}">this verification link</a>.</p>{{end}}
<p>If you did not register, you can ignore this message.</p>
`))

var welcomeHTML = template.Must(template.New("welcome").Parse(`
<p>Hi {{.Name}},</p>
<p>Your email is verified and your account is ready to use.</p>
`))

// Render produces subject, text and HTML bodies for a job template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	var tpl *template.Template
	switch name {
	case TemplateVerifyEmail:
		tpl = verifyEmailHTML
		subject = "Verify your email address"
		text = fmt.Sprintf("Your verification code is %v", data["Code"])
	case TemplateWelcome:
		tpl = welcomeHTML
		subject = "Welcome"
		text = "Your email is verified and your account is ready to use."
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	return subject, text, buf.String(), nil
}
