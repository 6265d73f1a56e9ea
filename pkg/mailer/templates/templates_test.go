package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRegistrationConfirmed(t *testing.T) {
	data := ToMap(RegistrationData{
		AppName:       "Campus Events",
		Name:          "Wanjiru",
		EventName:     "Hackathon <2026>",
		EventDate:     "2026-11-02",
		EventTime:     "09:30",
		EventLocation: "Main Hall",
		OccurredAt:    time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC),
	})

	subject, text, html, err := Render(RegistrationConfirmed, data)
	require.NoError(t, err)

	assert.Equal(t, "You're registered: Hackathon <2026>", subject)
	assert.Contains(t, text, "2026-11-02 at 09:30")
	assert.Contains(t, html, "Hackathon &lt;2026&gt;", "html output is escaped")
}

func TestRenderDefaults(t *testing.T) {
	_, text, _, err := Render(RegistrationCancelled, map[string]any{"EventName": "Career Fair", "EventDate": "2026-12-01"})
	require.NoError(t, err)

	assert.Contains(t, text, "Hi there,")
	assert.Contains(t, text, "Campus Events")
}

func TestRenderUnknownTemplate(t *testing.T) {
	assert.False(t, Known("login_otp"))
	_, _, _, err := Render("login_otp", nil)
	assert.Error(t, err)
}
