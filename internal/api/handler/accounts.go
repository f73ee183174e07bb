package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/weatherdeck/weatherdeck/internal/api/models"
	"github.com/weatherdeck/weatherdeck/internal/api/response"
	"github.com/weatherdeck/weatherdeck/internal/credentials"
	"github.com/weatherdeck/weatherdeck/internal/favourites"
)

// AccountsHandler handles login and account management endpoints.
type AccountsHandler struct {
	credentials *credentials.Service
	directory   *favourites.Directory
	logger      zerolog.Logger
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(creds *credentials.Service, directory *favourites.Directory, logger zerolog.Logger) *AccountsHandler {
	return &AccountsHandler{
		credentials: creds,
		directory:   directory,
		logger:      logger,
	}
}

// decodeCredentials reads and validates a username/password body. It writes
// the error response itself and reports success via the bool.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (models.CredentialsRequest, bool) {
	var req models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return req, false
	}
	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "missing credentials", errs)
		return req, false
	}
	return req, true
}

// Login handles POST /api/login.
func (h *AccountsHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	authenticated, err := h.credentials.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.DomainError(w, r, err)
		return
	}
	if !authenticated {
		response.Unauthorized(w, r, "incorrect password")
		return
	}

	response.JSON(w, r, http.StatusOK, models.MessageResponse{Message: "logged in"})
}

// CreateAccount handles POST /api/create-account. A new account gets an
// empty favourites registry alongside its credential record.
func (h *AccountsHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	if err := h.credentials.Create(r.Context(), req.Username, req.Password); err != nil {
		response.DomainError(w, r, err)
		return
	}
	h.directory.Create(req.Username)

	response.Created(w, r, "/api/users/"+req.Username+"/favourites",
		models.MessageResponse{Message: "account created"})
}

// UpdatePassword handles POST /api/update-password.
func (h *AccountsHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	if err := h.credentials.UpdatePassword(r.Context(), req.Username, req.Password); err != nil {
		response.DomainError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.MessageResponse{Message: "password updated"})
}

// InitDB handles POST /api/init-db. It destroys every account and favourites
// registry and leaves an empty store behind.
func (h *AccountsHandler) InitDB(w http.ResponseWriter, r *http.Request) {
	if err := h.credentials.ClearAll(r.Context()); err != nil {
		response.DomainError(w, r, err)
		return
	}
	h.directory.Clear()

	h.logger.Warn().Msg("credential store reinitialised")
	response.JSON(w, r, http.StatusOK, models.MessageResponse{Message: "store reinitialised"})
}
