package router

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oksasatya/campus-events/internal/application"
	"github.com/oksasatya/campus-events/internal/container"
	esinfra "github.com/oksasatya/campus-events/internal/infrastructure/elasticsearch"
	"github.com/oksasatya/campus-events/internal/infrastructure/gcs"
	"github.com/oksasatya/campus-events/internal/infrastructure/messaging"
	handlers "github.com/oksasatya/campus-events/internal/interface/http"
	"github.com/oksasatya/campus-events/internal/router/modules"
)

// Services groups the application services built from the container.
type Services struct {
	Users  *application.UserService
	Events *application.EventService
	Clubs  *application.ClubService
	Ledger *application.Ledger
}

func buildServices() Services {
	repos := container.GetRepositories()
	logger := container.GetLogger()
	rec := container.GetMetrics()
	cfg := container.GetConfig()

	// optional collaborators are only assigned when configured so the
	// interfaces stay nil instead of holding a nil pointer
	var notifier application.RegistrationNotifier
	if pub := container.GetRabbitPub(); pub != nil {
		notifier = messaging.NewRegistrationNotifier(pub, cfg.AppName)
	}
	var index application.EventIndex
	if client := container.GetES(); client != nil {
		index = esinfra.NewEventIndex(client, cfg.ESEventsIndex)
	}
	var posters application.PosterStore
	if ps := gcs.NewPosterStore(container.GetGCS(), cfg.GCSBucket); ps != nil {
		posters = ps
	}

	return Services{
		Users:  application.NewUserService(repos.Users, repos.Registrations, container.GetJWT(), cfg.AllowedEmailDomain, rec, logger),
		Events: application.NewEventService(repos.Events, repos.Registrations, index, posters, rec, logger),
		Clubs:  application.NewClubService(repos.Clubs),
		Ledger: application.NewLedger(repos.Users, repos.Events, repos.Registrations, notifier, rec, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	svc := buildServices()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	registrations := handlers.NewRegistrationHandler(svc.Ledger, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Users, logger), jwt, svc.Users))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, logger), registrations, jwt))
	r.Add(modules.NewEventModule(handlers.NewEventHandler(svc.Events, logger), registrations, jwt, svc.Users))
	r.Add(modules.NewClubModule(handlers.NewClubHandler(svc.Clubs, logger), jwt, svc.Users))

	if cfg := container.GetConfig(); cfg != nil && cfg.DebugMetricsEnabled {
		var gatherer prometheus.Gatherer
		if reg := container.GetMetricsRegistry(); reg != nil {
			gatherer = reg
		}
		r.Add(modules.NewDebugModule(gatherer))
	}
}
