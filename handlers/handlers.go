package handlers

import (
	"net/http"

	"github.com/LordDeatHunter/Movienite/config"
	"github.com/LordDeatHunter/Movienite/events"
	"github.com/LordDeatHunter/Movienite/middleware"
	"github.com/LordDeatHunter/Movienite/services"

	"github.com/go-chi/chi/v5"
)

// App holds the handlers' shared dependencies.
type App struct {
	Cfg      *config.Config
	Hub      *events.Hub
	Ingestor *services.Ingestor
}

func New(cfg *config.Config, hub *events.Hub, ingestor *services.Ingestor) *App {
	return &App{Cfg: cfg, Hub: hub, Ingestor: ingestor}
}

// Routes builds the full route tree.
func (app *App) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(app.cors)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/login", app.Login)
		r.Get("/callback", app.Callback)
		r.Post("/logout", app.Logout)
		r.With(middleware.RequireAuth).Get("/user", app.CurrentUser)

		r.Get("/events", app.Events)

		r.Get("/movies", app.ListMovies)
		r.Post("/movies", app.AddMovie)
		r.Route("/movies/{movieID}", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/set_status", app.SetStatus)
			r.Post("/toggle_watch", app.ToggleWatch)
			r.Post("/discard", app.Discard)
			r.Post("/toggle_boobies", app.ToggleBoobies)
		})
	})

	return r
}

// cors lets the frontend origin call the API with credentials.
func (app *App) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && origin == app.Cfg.FrontendURL {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
