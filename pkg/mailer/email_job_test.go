package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/campus-events/pkg/mailer/templates"
)

func TestContentRendersTemplate(t *testing.T) {
	job := EmailJob{
		To:       "ann@kcau.ac.ke",
		Template: templates.RegistrationConfirmed,
		Data: templates.ToMap(templates.RegistrationData{
			Name:      "Ann",
			EventName: "Hack Night",
			EventDate: "2026-11-02",
			EventTime: "18:00",
		}),
	}

	subject, text, html, err := job.Content()
	require.NoError(t, err)
	assert.Contains(t, subject, "Hack Night")
	assert.Contains(t, text, "Ann")
	assert.NotEmpty(t, html)
}

func TestContentLiteral(t *testing.T) {
	job := EmailJob{To: "ann@kcau.ac.ke", Subject: "hi", Text: "body"}

	subject, text, html, err := job.Content()
	require.NoError(t, err)
	assert.Equal(t, "hi", subject)
	assert.Equal(t, "body", text)
	assert.Empty(t, html)
}

func TestContentRejectsBadJobs(t *testing.T) {
	cases := map[string]EmailJob{
		"no recipient":     {Subject: "hi", Text: "body"},
		"no content":       {To: "ann@kcau.ac.ke"},
		"unknown template": {To: "ann@kcau.ac.ke", Template: "welcome"},
	}
	for name, job := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, _, err := job.Content()
			assert.Error(t, err)
		})
	}
}
