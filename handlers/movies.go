package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/LordDeatHunter/Movienite/events"
	"github.com/LordDeatHunter/Movienite/middleware"
	"github.com/LordDeatHunter/Movienite/models"
	"github.com/LordDeatHunter/Movienite/scraper"
	"github.com/LordDeatHunter/Movienite/services"

	"github.com/go-chi/chi/v5"
)

type addMovieRequest struct {
	MovieURL string `json:"movie_url"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// ListMovies returns every movie with its owner embedded.
func (app *App) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := services.GetMovies()
	if err != nil {
		slog.Error("Failed to list movies", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load movies")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"movies": movies})
}

// AddMovie ingests a submitted URL. A session is optional; when one is
// present the submitter becomes the movie's owner.
func (app *App) AddMovie(w http.ResponseWriter, r *http.Request) {
	var req addMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MovieURL == "" {
		writeError(w, http.StatusBadRequest, "movie_url is required")
		return
	}

	submitter := middleware.OptionalUser(r)

	movie, err := app.Ingestor.Ingest(r.Context(), req.MovieURL, submitter)
	switch {
	case errors.Is(err, scraper.ErrUnsupportedSite):
		writeError(w, http.StatusBadRequest, "URL must be from IMDb or Letterboxd")
		return
	case errors.Is(err, services.ErrMovieExists):
		writeError(w, http.StatusConflict, "Movie already exists")
		return
	case errors.Is(err, services.ErrFetchFailed):
		writeError(w, http.StatusBadGateway, "Failed to fetch movie data")
		return
	case err != nil:
		slog.Error("Failed to add movie", "url", req.MovieURL, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to add movie")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message":  "Movie added successfully",
		"movie_id": movie.ID,
	})
}

// SetStatus writes an explicit status. Admin only.
func (app *App) SetStatus(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	if !user.IsAdmin {
		writeError(w, http.StatusForbidden, "Only admins can set movie status")
		return
	}

	movie, ok := app.loadMovie(w, r)
	if !ok {
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	newStatus, err := services.SetMovieStatus(movie.ID, req.Status)
	if errors.Is(err, services.ErrInvalidStatus) {
		writeError(w, http.StatusBadRequest, "Invalid status value")
		return
	}
	if errors.Is(err, services.ErrMovieNotFound) {
		writeError(w, http.StatusNotFound, "Movie not found")
		return
	}
	if err != nil {
		slog.Error("Failed to set movie status", "movie_id", movie.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to set movie status")
		return
	}

	app.Hub.Publish(events.Event{Type: events.TypeMovieStatusSet, MovieID: movie.ID, Status: newStatus})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Movie status set", "status": newStatus})
}

// ToggleWatch advances the movie along the status cycle. Owners can
// push their movie forward until it lands on watched; after that only
// an admin can move it again.
func (app *App) ToggleWatch(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	movie, ok := app.loadMovie(w, r)
	if !ok {
		return
	}
	if !services.CanModifyMovie(user, movie) {
		writeError(w, http.StatusForbidden, forbiddenReason(user, movie))
		return
	}

	newStatus, err := services.CycleMovieStatus(movie.ID)
	if errors.Is(err, services.ErrMovieNotFound) {
		writeError(w, http.StatusNotFound, "Movie not found")
		return
	}
	if err != nil {
		slog.Error("Failed to cycle movie status", "movie_id", movie.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to cycle movie status")
		return
	}

	app.Hub.Publish(events.Event{Type: events.TypeMovieStatusSet, MovieID: movie.ID, Status: newStatus})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Movie status cycled", "status": newStatus})
}

// Discard deletes a movie, subject to the watched-lock.
func (app *App) Discard(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	movie, ok := app.loadMovie(w, r)
	if !ok {
		return
	}
	if !services.CanModifyMovie(user, movie) {
		writeError(w, http.StatusForbidden, forbiddenReason(user, movie))
		return
	}

	deleted, err := services.DeleteMovie(movie.ID)
	if err != nil || !deleted {
		slog.Error("Failed to delete movie", "movie_id", movie.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete movie")
		return
	}

	slog.Info("Movie deleted", "movie_id", movie.ID, "user_id", user.ID)
	app.Hub.Publish(events.Event{Type: events.TypeMovieDeleted, MovieID: movie.ID})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Movie deleted"})
}

// ToggleBoobies flips the content flag, subject to the watched-lock.
func (app *App) ToggleBoobies(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	movie, ok := app.loadMovie(w, r)
	if !ok {
		return
	}
	if !services.CanModifyMovie(user, movie) {
		writeError(w, http.StatusForbidden, forbiddenReason(user, movie))
		return
	}

	value, err := services.ToggleMovieBoobies(movie.ID)
	if errors.Is(err, services.ErrMovieNotFound) {
		writeError(w, http.StatusNotFound, "Movie not found")
		return
	}
	if err != nil {
		slog.Error("Failed to toggle boobies", "movie_id", movie.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to toggle boobies")
		return
	}

	app.Hub.Publish(events.Event{Type: events.TypeMovieBoobiesToggled, MovieID: movie.ID, Boobies: &value})
	writeJSON(w, http.StatusOK, map[string]any{"message": "Toggled boobies", "boobies": value})
}

// loadMovie fetches the movie named in the URL, writing the 404/500
// response itself when it cannot.
func (app *App) loadMovie(w http.ResponseWriter, r *http.Request) (*models.Movie, bool) {
	id := chi.URLParam(r, "movieID")

	movie, err := services.GetMovieByID(id)
	if err != nil {
		slog.Error("Failed to load movie", "movie_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load movie")
		return nil, false
	}
	if movie == nil {
		writeError(w, http.StatusNotFound, "Movie not found")
		return nil, false
	}
	return movie, true
}

func forbiddenReason(user *models.User, movie *models.Movie) string {
	if movie.UserID == nil || *movie.UserID != user.ID {
		return "You can only modify your own movies"
	}
	return "Cannot modify watched movies"
}
