package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mauv0809/bracket-draft/internal/config"
	"github.com/mauv0809/bracket-draft/internal/http/handlers"
	"github.com/rs/cors"
)

func NewServer(deps Dependencies, cfg config.Config) *Server {
	server := &Server{
		Dependencies: deps,
		Cfg:          cfg,
		Router:       chi.NewRouter(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	r := s.Router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.Cfg.CORSAllowOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}).Handler)
	r.Use(paramsMiddleware)

	r.Handle("/metrics", s.MetricsHandler)
	r.Get("/health", handlers.HealthCheckHandler(s.DB))

	r.Route("/api", func(r chi.Router) {
		r.Get("/players", handlers.ListPlayersHandler(s.Players))
		r.Get("/players/filters", handlers.PlayerFiltersHandler(s.Players))
		r.Get("/players/{id}", handlers.GetPlayerHandler(s.Players))
		r.Get("/available_players", handlers.AvailablePlayersHandler(s.Players))
		r.Get("/participants", handlers.ListParticipantsHandler(s.Draft))
		r.Get("/participants/{id}/score", handlers.ParticipantScoreHandler(s.Leaderboard))
		r.Get("/draft_picks", handlers.ListPicksHandler(s.Draft))
		r.Get("/draft_board", handlers.DraftBoardHandler(s.Draft))
		r.Get("/leaderboard", handlers.LeaderboardHandler(s.Leaderboard))
		r.Get("/games", handlers.ListGamesHandler(s.Games))
		r.Get("/games/{id}/stats", handlers.GameStatsHandler(s.Games))

		r.Group(func(r chi.Router) {
			if s.Cfg.RateLimit.Requests > 0 {
				r.Use(rateLimitMiddleware(s.Cfg.RateLimit.Requests, s.Cfg.RateLimit.Window))
			}
			r.Post("/players", handlers.UpsertPlayerHandler(s.Players))
			r.Post("/participants", handlers.CreateParticipantHandler(s.Draft))
			r.Delete("/participants/{id}", handlers.RemoveParticipantHandler(s.Draft))
			r.Post("/draft_picks", handlers.RecordPickHandler(s.Draft, s.Metrics, s.Notifier, s.PubSub))
			r.Post("/draft_picks/reset", handlers.ResetPicksHandler(s.Draft, s.Notifier, s.PubSub))
			r.Delete("/draft_picks/{id}", handlers.DeletePickHandler(s.Draft, s.PubSub))
			r.Post("/games", handlers.UpsertGameHandler(s.Games))
			r.Post("/game_stats", handlers.UpsertGameStatsHandler(s.Games))
			r.Post("/update_data", handlers.UpdateDataHandler(s.Refresher))
			r.Post("/update_game_scores", handlers.UpdateGameScoresHandler(s.Refresher))
		})
	})

	r.Route("/slack/command", func(r chi.Router) {
		r.Use(slackVerifyMiddleware(s.Cfg.Slack.SigningSecret))
		r.Post("/leaderboard", handlers.LeaderboardCommandHandler(s.Leaderboard, s.Notifier))
		r.Post("/draftboard", handlers.DraftBoardCommandHandler(s.Draft, s.Notifier))
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
