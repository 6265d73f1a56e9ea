package messaging

import (
	"context"
	"fmt"

	"github.com/oksasatya/campus-events/internal/application"
	"github.com/oksasatya/campus-events/pkg/mailer"
	"github.com/oksasatya/campus-events/pkg/mailer/templates"
)

// Publisher is the part of helpers.RabbitPublisher the notifier needs.
type Publisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

// RegistrationNotifier turns ledger notices into email jobs on the queue.
type RegistrationNotifier struct {
	Publisher Publisher
	AppName   string
}

func NewRegistrationNotifier(p Publisher, appName string) *RegistrationNotifier {
	return &RegistrationNotifier{Publisher: p, AppName: appName}
}

func (n *RegistrationNotifier) NotifyRegistration(ctx context.Context, notice application.RegistrationNotice) error {
	job, err := n.buildJob(notice)
	if err != nil {
		return err
	}
	return n.Publisher.PublishJSON(ctx, mailer.JobType, job)
}

func (n *RegistrationNotifier) buildJob(notice application.RegistrationNotice) (mailer.EmailJob, error) {
	var tmpl string
	switch notice.Kind {
	case application.NoticeRegistered:
		tmpl = templates.RegistrationConfirmed
	case application.NoticeDeregistered:
		tmpl = templates.RegistrationCancelled
	default:
		return mailer.EmailJob{}, fmt.Errorf("unknown notice kind %q", notice.Kind)
	}
	if notice.User == nil || notice.User.Email == "" {
		return mailer.EmailJob{}, fmt.Errorf("notice has no recipient")
	}

	data := templates.RegistrationData{
		AppName:    n.AppName,
		Name:       notice.User.Name,
		Email:      notice.User.Email,
		OccurredAt: notice.At,
	}
	if notice.Event != nil {
		data.EventName = notice.Event.Name
		data.EventDate = notice.Event.Date
		data.EventTime = notice.Event.Time
		data.EventLocation = notice.Event.Location
	}
	return mailer.EmailJob{
		To:       notice.User.Email,
		Template: tmpl,
		Data:     templates.ToMap(data),
	}, nil
}
