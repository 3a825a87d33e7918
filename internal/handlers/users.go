package handlers

import (
	"errors"
	"net/http"
	"strings"

	"recipebox/internal/accounts"
	"recipebox/internal/authtoken"
	applog "recipebox/internal/log"
	"recipebox/models"
)

type userResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type issueTokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type updateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
}

func projectUser(user *models.User) userResponse {
	return userResponse{ID: user.ID, Email: user.Email, Name: user.Name}
}

// CreateUser registers a new account. The response never carries password
// material.
func CreateUser(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	var payload createUserRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(r.Context(), "invalid user create payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := accounts.CreateUser(r.Context(), database, payload.Email, payload.Password, payload.Name)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrEmailRequired),
			errors.Is(err, accounts.ErrPasswordTooShort),
			errors.Is(err, accounts.ErrEmailTaken):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			applog.Error(r.Context(), "failed to create user", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	applog.Info(r.Context(), "user created", "userID", user.ID)
	writeJSON(w, http.StatusCreated, projectUser(user))
}

// IssueToken exchanges verified credentials for a fresh bearer token,
// revoking whatever key the account held before. Bad credentials and missing
// fields both answer 400 with no token in the body.
func IssueToken(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	var payload issueTokenRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(r.Context(), "invalid token payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if strings.TrimSpace(payload.Email) == "" || payload.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := accounts.Authenticate(r.Context(), database, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			applog.Debug(r.Context(), "token request with bad credentials")
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		applog.Error(r.Context(), "failed to authenticate user", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := authtoken.Issue(r.Context(), database, user)
	if err != nil {
		applog.Error(r.Context(), "failed to issue token", "error", err, "userID", user.ID)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	applog.Info(r.Context(), "token issued", "userID", user.ID)
	writeJSON(w, http.StatusOK, tokenResponse{Token: token.Key})
}

// Me retrieves the authenticated user's own profile.
func Me(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, projectUser(user))
}

// UpdateMe mutates the authenticated user's own profile. PATCH merges only
// the supplied fields; PUT requires the email to stay non-empty and treats
// omitted name/password as unchanged credentials with a cleared name.
func UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var payload updateUserRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(r.Context(), "invalid profile payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	update := accounts.ProfileUpdate{
		Email:    payload.Email,
		Name:     payload.Name,
		Password: payload.Password,
	}

	if r.Method == http.MethodPut {
		if payload.Email == nil || strings.TrimSpace(*payload.Email) == "" {
			writeJSONError(w, http.StatusBadRequest, accounts.ErrEmailRequired.Error())
			return
		}
		if payload.Name == nil {
			blank := ""
			update.Name = &blank
		}
	}

	if err := accounts.UpdateProfile(r.Context(), database, user, update); err != nil {
		switch {
		case errors.Is(err, accounts.ErrEmailRequired),
			errors.Is(err, accounts.ErrPasswordTooShort),
			errors.Is(err, accounts.ErrEmailTaken):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			applog.Error(r.Context(), "failed to update profile", "error", err, "userID", user.ID)
			writeJSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	var stored models.User
	if err := database.WithContext(r.Context()).First(&stored, user.ID).Error; err != nil {
		applog.Error(r.Context(), "failed to reload profile", "error", err, "userID", user.ID)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, projectUser(&stored))
}
