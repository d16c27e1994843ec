package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"pulse-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
)

type AuthHandler struct {
	tokenStore  TokenStore
	userStore   UserStore
	jwtSecret   string
	adminEmails map[string]bool
}

func NewAuthHandler(tokenStore TokenStore, userStore UserStore, jwtSecret string, adminEmails []string) *AuthHandler {
	admins := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			admins[email] = true
		}
	}
	return &AuthHandler{
		tokenStore:  tokenStore,
		userStore:   userStore,
		jwtSecret:   jwtSecret,
		adminEmails: admins,
	}
}

// --- Request / Response types ---

type RequestLoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

type VerifyResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// --- POST /auth/request ---

// RequestLogin emails a single-use login link. First-time users must
// supply their name and department; both are immutable afterwards.
func (h *AuthHandler) RequestLogin(w http.ResponseWriter, r *http.Request) {
	var req RequestLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// Rate limiting: max 5 requests per email in 10 minutes
	count, err := h.tokenStore.CountRecentByEmail(r.Context(), req.Email, 10*time.Minute)
	if err != nil {
		log.Printf("Error checking rate limit: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if count >= 5 {
		writeError(w, http.StatusTooManyRequests, "too many login requests, please try again later")
		return
	}

	user, err := h.userStore.FindByEmail(r.Context(), req.Email)
	if err != nil {
		log.Printf("Error finding user: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		// Signup path: name and a valid department are mandatory.
		dept := models.Department(req.Department)
		if strings.TrimSpace(req.Name) == "" || !dept.IsValid() {
			writeError(w, http.StatusBadRequest, "name and a valid department are required for first-time login")
			return
		}
		user = &models.User{
			Name:       strings.TrimSpace(req.Name),
			Email:      req.Email,
			Department: dept,
			IsAdmin:    h.adminEmails[req.Email],
		}
		if err := h.userStore.Create(r.Context(), user); err != nil {
			log.Printf("Error creating user: %v", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	// Generate unique token, valid 15 minutes, single-use
	tokenValue := uuid.New().String()
	authToken := &models.AuthToken{
		Email:     req.Email,
		Token:     tokenValue,
		ExpiresAt: time.Now().Add(15 * time.Minute),
		IsUsed:    false,
	}
	if err := h.tokenStore.Create(r.Context(), authToken); err != nil {
		log.Printf("Error creating auth token: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create login token")
		return
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		scheme := "http"
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		frontendURL = fmt.Sprintf("%s://%s", scheme, r.Host)
	}
	emailLink := fmt.Sprintf("%s/auth/verify?token=%s", frontendURL, tokenValue)

	if err := sendLoginEmail(req.Email, user.Name, emailLink); err != nil {
		log.Printf("Error sending email: %v", err)
		// Don't fail the request — token is created, email sending is best-effort
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "login link generated (email delivery may be delayed)",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "login link sent to your email",
	})
}

// --- GET /auth/verify ---

func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	tokenValue := r.URL.Query().Get("token")
	if tokenValue == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	authToken, err := h.tokenStore.FindByToken(r.Context(), tokenValue)
	if err != nil {
		log.Printf("Error finding token: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if authToken == nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	if authToken.IsExpired() {
		writeError(w, http.StatusUnauthorized, "token has expired")
		return
	}
	if authToken.IsUsed {
		writeError(w, http.StatusUnauthorized, "token has already been used")
		return
	}

	if err := h.tokenStore.MarkUsed(r.Context(), tokenValue); err != nil {
		log.Printf("Error marking token as used: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user, err := h.userStore.FindByEmail(r.Context(), authToken.Email)
	if err != nil {
		log.Printf("Error finding user: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "no account for this login link")
		return
	}

	// Session JWT with 30-day expiry carrying the claims the route
	// gating needs: identity, department and the admin flag.
	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    user.ID.Hex(),
		"email":      user.Email,
		"department": string(user.Department),
		"is_admin":   user.IsAdmin,
		"exp":        time.Now().Add(30 * 24 * time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	})

	tokenString, err := jwtToken.SignedString([]byte(h.jwtSecret))
	if err != nil {
		log.Printf("Error signing JWT: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, VerifyResponse{
		Token: tokenString,
		User:  user,
	})
}

// --- Helpers ---

func sendLoginEmail(to, name, link string) error {
	apiKey := os.Getenv("RESEND_API_KEY")
	fromEmail := os.Getenv("FROM_EMAIL")

	if apiKey == "" {
		log.Println("⚠️  RESEND_API_KEY not set, skipping email send")
		log.Printf("📧 [Dev Mode] Login link for %s: %s", to, link)
		return nil
	}

	client := resend.NewClient(apiKey)

	params := &resend.SendEmailRequest{
		From:    fromEmail,
		To:      []string{to},
		Subject: "Your Pulse Login Link",
		Html: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">Hello %s</h2>
				<p>Click the button below to sign in to the department feedback portal:</p>
				<a href="%s" style="display: inline-block; background: #6366f1; color: white; padding: 12px 24px; border-radius: 8px; text-decoration: none; font-weight: 600;">
					Sign in to Pulse
				</a>
				<p style="color: #888; font-size: 14px; margin-top: 16px;">
					This link expires in 15 minutes and can only be used once.
				</p>
				<p style="color: #aaa; font-size: 12px;">
					If you didn't request this, you can safely ignore this email.
				</p>
			</div>
		`, name, link),
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Printf("📧 Email sent successfully (ID: %s)", sent.Id)
	return nil
}
