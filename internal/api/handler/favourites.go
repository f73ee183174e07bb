package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/weatherdeck/weatherdeck/internal/api/models"
	"github.com/weatherdeck/weatherdeck/internal/api/response"
	"github.com/weatherdeck/weatherdeck/internal/favourites"
)

// FavouritesHandler handles per-user favourite location endpoints.
type FavouritesHandler struct {
	directory *favourites.Directory
	logger    zerolog.Logger
}

// NewFavouritesHandler creates a new FavouritesHandler.
func NewFavouritesHandler(directory *favourites.Directory, logger zerolog.Logger) *FavouritesHandler {
	return &FavouritesHandler{
		directory: directory,
		logger:    logger,
	}
}

// registry resolves the {username} path parameter to its registry. It writes
// the error response itself when the user has no registry.
func (h *FavouritesHandler) registry(w http.ResponseWriter, r *http.Request) (*favourites.Registry, bool) {
	username := chi.URLParam(r, "username")
	registry, err := h.directory.Get(username)
	if err != nil {
		response.DomainError(w, r, err)
		return nil, false
	}
	return registry, true
}

// Add handles POST /api/users/{username}/favourites.
func (h *FavouritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	registry, ok := h.registry(w, r)
	if !ok {
		return
	}

	var req models.AddFavouriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if req.Location == "" {
		response.BadRequest(w, r, "missing location", []models.FieldError{
			{Field: "location", Message: "location is required", Code: "required"},
		})
		return
	}

	if err := registry.Add(r.Context(), req.Location); err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.Created(w, r, "", models.MessageResponse{Message: "favourite added"})
}

// List handles GET /api/users/{username}/favourites.
func (h *FavouritesHandler) List(w http.ResponseWriter, r *http.Request) {
	registry, ok := h.registry(w, r)
	if !ok {
		return
	}

	locations, err := registry.List()
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.FavouritesResponse{
		Username:  registry.Username(),
		Locations: locations,
	})
}

// Clear handles DELETE /api/users/{username}/favourites.
func (h *FavouritesHandler) Clear(w http.ResponseWriter, r *http.Request) {
	registry, ok := h.registry(w, r)
	if !ok {
		return
	}

	registry.Clear()
	response.NoContent(w, r)
}

// Remove handles DELETE /api/users/{username}/favourites/{location}.
func (h *FavouritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	registry, ok := h.registry(w, r)
	if !ok {
		return
	}

	if err := registry.Remove(chi.URLParam(r, "location")); err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

// Count handles GET /api/users/{username}/favourites/count.
func (h *FavouritesHandler) Count(w http.ResponseWriter, r *http.Request) {
	registry, ok := h.registry(w, r)
	if !ok {
		return
	}

	response.JSON(w, r, http.StatusOK, models.FavouritesCountResponse{
		Username: registry.Username(),
		Count:    registry.Len(),
	})
}

// CurrentWeather handles GET /api/users/{username}/favourites/{location}/weather/current.
func (h *FavouritesHandler) CurrentWeather(w http.ResponseWriter, r *http.Request) {
	registry, ok := h.registry(w, r)
	if !ok {
		return
	}

	current, err := registry.CurrentWeather(r.Context(), chi.URLParam(r, "location"))
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewCurrentWeather(current))
}

// AllCurrentWeather handles GET /api/users/{username}/favourites/weather/current.
func (h *FavouritesHandler) AllCurrentWeather(w http.ResponseWriter, r *http.Request) {
	registry, ok := h.registry(w, r)
	if !ok {
		return
	}

	all, err := registry.AllCurrentWeather(r.Context())
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewCurrentWeatherList(all))
}

// HistoricalWeather handles GET /api/users/{username}/favourites/{location}/weather/history.
// The date query parameter is required, in YYYY-MM-DD form.
func (h *FavouritesHandler) HistoricalWeather(w http.ResponseWriter, r *http.Request) {
	registry, ok := h.registry(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, r, "missing date", []models.FieldError{
			{Field: "date", Message: "date query parameter is required", Code: "required"},
		})
		return
	}

	day, err := registry.HistoricalWeather(r.Context(), chi.URLParam(r, "location"), date)
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewDayWeather(day))
}

// Forecast handles GET /api/users/{username}/favourites/{location}/weather/forecast.
// The days query parameter is required, between 1 and 10.
func (h *FavouritesHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	registry, ok := h.registry(w, r)
	if !ok {
		return
	}

	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		response.BadRequest(w, r, "missing or non-numeric days", []models.FieldError{
			{Field: "days", Message: "days query parameter must be an integer", Code: "invalid"},
		})
		return
	}

	forecast, err := registry.Forecast(r.Context(), chi.URLParam(r, "location"), days)
	if err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewDayWeatherList(forecast))
}
