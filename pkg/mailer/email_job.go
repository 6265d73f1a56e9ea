package mailer

import (
	"errors"
	"fmt"

	"github.com/oksasatya/campus-events/pkg/mailer/templates"
)

// JobType is the AMQP message type used for email jobs.
const JobType = "email.job"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Html is optional; Text is recommended as fallback.
// You can also use a template by specifying Template and Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "registration_confirmed" or "registration_cancelled"
	Data     map[string]any `json:"data,omitempty"`
}

// Content returns the subject and bodies to send. A Template, when set,
// takes precedence over the literal Subject/Text/HTML fields.
func (j EmailJob) Content() (subject, text, html string, err error) {
	if j.To == "" {
		return "", "", "", errors.New("email job has no recipient")
	}
	if j.Template == "" {
		if j.Subject == "" || (j.Text == "" && j.HTML == "") {
			return "", "", "", errors.New("email job has no template and no literal content")
		}
		return j.Subject, j.Text, j.HTML, nil
	}
	if !templates.Known(j.Template) {
		return "", "", "", fmt.Errorf("unknown email template %q", j.Template)
	}
	return templates.Render(j.Template, j.Data)
}
