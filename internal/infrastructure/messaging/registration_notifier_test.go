package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/campus-events/internal/application"
	"github.com/oksasatya/campus-events/internal/domain/entity"
	"github.com/oksasatya/campus-events/pkg/mailer"
	"github.com/oksasatya/campus-events/pkg/mailer/templates"
)

type capturePublisher struct {
	msgType string
	body    any
	err     error
}

func (c *capturePublisher) PublishJSON(_ context.Context, msgType string, body any) error {
	c.msgType, c.body = msgType, body
	return c.err
}

func notice(kind application.NoticeKind) application.RegistrationNotice {
	return application.RegistrationNotice{
		Kind:  kind,
		User:  &entity.User{ID: "u1", Email: "u1@kcau.ac.ke", Name: "Wanjiru"},
		Event: &entity.Event{ID: "e1", Name: "Hackathon", Date: "2026-11-02", Time: "09:30", Location: "Main Hall"},
		At:    time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC),
	}
}

func TestNotifyRegistrationPublishesTemplatedJob(t *testing.T) {
	pub := &capturePublisher{}
	n := NewRegistrationNotifier(pub, "Campus Events")

	require.NoError(t, n.NotifyRegistration(context.Background(), notice(application.NoticeRegistered)))

	assert.Equal(t, mailer.JobType, pub.msgType)
	job, ok := pub.body.(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "u1@kcau.ac.ke", job.To)
	assert.Equal(t, templates.RegistrationConfirmed, job.Template)
	assert.Equal(t, "Hackathon", job.Data["EventName"])

	// the worker must be able to render what we publish
	subject, _, _, err := templates.Render(job.Template, job.Data)
	require.NoError(t, err)
	assert.Equal(t, "You're registered: Hackathon", subject)
}

func TestNotifyDeregistrationUsesCancelledTemplate(t *testing.T) {
	pub := &capturePublisher{}
	n := NewRegistrationNotifier(pub, "Campus Events")

	require.NoError(t, n.NotifyRegistration(context.Background(), notice(application.NoticeDeregistered)))
	assert.Equal(t, templates.RegistrationCancelled, pub.body.(mailer.EmailJob).Template)
}

func TestNotifyRegistrationErrors(t *testing.T) {
	pub := &capturePublisher{err: errors.New("channel closed")}
	n := NewRegistrationNotifier(pub, "Campus Events")

	assert.EqualError(t, n.NotifyRegistration(context.Background(), notice(application.NoticeRegistered)), "channel closed")

	bad := notice(application.NoticeRegistered)
	bad.User.Email = ""
	assert.Error(t, n.NotifyRegistration(context.Background(), bad))
}
