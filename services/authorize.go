package services

import "github.com/LordDeatHunter/Movienite/models"

// CanModifyMovie decides whether a user may discard a movie, toggle
// its flag, or advance its watch cycle. Admins always can. Owners can
// until the movie is watched: watched movies are locked for everyone
// else, and ownerless movies have no one but admins to speak for them.
func CanModifyMovie(user *models.User, movie *models.Movie) bool {
	if user.IsAdmin {
		return true
	}
	if movie.UserID == nil || *movie.UserID != user.ID {
		return false
	}
	return movie.Status != models.StatusWatched
}
