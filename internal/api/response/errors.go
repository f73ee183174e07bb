package response

import (
	"errors"
	"net/http"

	"github.com/weatherdeck/weatherdeck/internal/credentials"
	"github.com/weatherdeck/weatherdeck/internal/favourites"
	"github.com/weatherdeck/weatherdeck/internal/weather/weatherapi"
)

// DomainError maps a domain error to its HTTP response.
//
// Malformed input (bad dates, out-of-range day counts) is a 400. Domain
// failures (unknown users, missing or duplicate favourites, rejected location
// names, empty collections) are a 404. Anything unrecognised, including
// storage and provider transport failures, is a 500.
func DomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, favourites.ErrInvalidDate),
		errors.Is(err, favourites.ErrInvalidDays):
		BadRequest(w, r, err.Error(), nil)

	case errors.Is(err, credentials.ErrUserNotFound),
		errors.Is(err, credentials.ErrUserExists),
		errors.Is(err, favourites.ErrRegistryNotFound),
		errors.Is(err, favourites.ErrEmpty),
		errors.Is(err, favourites.ErrNotFavourite),
		errors.Is(err, favourites.ErrDuplicate),
		errors.Is(err, weatherapi.ErrInvalidLocation):
		NotFound(w, r, err.Error())

	default:
		InternalError(w, r, "an unexpected error occurred")
	}
}
