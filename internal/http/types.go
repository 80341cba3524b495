package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/bracket-draft/internal/config"
	"github.com/mauv0809/bracket-draft/internal/draft"
	"github.com/mauv0809/bracket-draft/internal/games"
	"github.com/mauv0809/bracket-draft/internal/http/handlers"
	"github.com/mauv0809/bracket-draft/internal/leaderboard"
	"github.com/mauv0809/bracket-draft/internal/metrics"
	"github.com/mauv0809/bracket-draft/internal/notifier"
	"github.com/mauv0809/bracket-draft/internal/pubsub"
	"github.com/mauv0809/bracket-draft/internal/roster"
)

// Dependencies are the services the HTTP layer serves.
type Dependencies struct {
	DB             handlers.Pinger
	Players        roster.RosterStore
	Draft          draft.DraftStore
	Games          games.GameStore
	Leaderboard    leaderboard.Aggregator
	Refresher      handlers.RefreshRunner
	Notifier       notifier.Notifier
	PubSub         pubsub.PubSubClient
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
}

type Server struct {
	Dependencies
	Cfg    config.Config
	Router *chi.Mux
}
