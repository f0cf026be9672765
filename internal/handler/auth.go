package handler

import (
	"net/http"

	"github.com/safespace-dev/safespace/internal/domain"
	"github.com/safespace-dev/safespace/internal/middleware"
	"github.com/safespace-dev/safespace/internal/utils"
)

type registerRequest struct {
	Email       string `validate:"required" json:"email"`
	Password    string `validate:"required" json:"password"`
	DisplayName string `validate:"required" json:"display_name"`
}

type loginRequest struct {
	Email    string `validate:"required" json:"email"`
	Password string `validate:"required" json:"password"`
}

func (h *Handler) accessCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    value,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

// Register creates the account and signs the caller in immediately.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, err := h.auth.Register(domain.Credentials{Email: req.Email, Password: req.Password, DisplayName: req.DisplayName})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	http.SetCookie(w, h.accessCookie(token, int(h.cfg.JwtTTL().Seconds())))

	writeJSONStatus(w, http.StatusCreated, map[string]string{"access_token": token})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, err := h.auth.Login(domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	http.SetCookie(w, h.accessCookie(token, int(h.cfg.JwtTTL().Seconds())))

	writeJSON(w, map[string]string{"access_token": token})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.accessCookie("", -1))

	// the in-memory conversation dies with the sign-out
	if user := middleware.GetUserFromContext(r); user != nil {
		h.chats.Reset(user.Id)
	}

	w.WriteHeader(http.StatusOK)
}

// Me returns the signed-in user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}
	profile, err := h.auth.Me(user.Email)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, profile)
}
