package notification

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	subjectVerification = "Verify your CARE account"
	subjectOTP          = "Reset Password OTP"
)

type mailData struct {
	Name    string
	Link    string
	OTP     string
	Expires string
}

var verificationTmpl = template.Must(template.New("verification").Parse(`<div style="font-family: Arial, sans-serif; line-height: 1.6;">
<h2>Hey {{.Name}},</h2>
<p>Thanks for joining CARE. Please confirm your email address by clicking the link below:</p>
<p><a href="{{.Link}}">Verify my email</a></p>
<p>This link will expire in {{.Expires}}. If you did not create an account, you can safely ignore this email.</p>
<p>Thank you,<br>The CARE team</p>
</div>`))

var otpTmpl = template.Must(template.New("otp").Parse(`<div style="font-family: Arial, sans-serif; line-height: 1.6;">
<h2>Hey {{.Name}},</h2>
<p>Use this code to reset your password: <strong>{{.OTP}}</strong></p>
<p>This code will expire in {{.Expires}}. If you did not request a password reset, you can safely ignore this email.</p>
<p>Thank you,<br>The CARE team</p>
</div>`))

func render(t *template.Template, data mailData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}
