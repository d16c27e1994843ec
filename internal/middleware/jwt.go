package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	userIDKey     contextKey = "user_id"
	emailKey      contextKey = "email"
	departmentKey contextKey = "department"
	isAdminKey    contextKey = "is_admin"
)

// JWTAuth validates the Bearer token and stores the session claims in
// the request context. HS256 only.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				unauthorized(w, "missing or malformed authorization header")
				return
			}
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				unauthorized(w, "invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				unauthorized(w, "invalid token claims")
				return
			}

			userID, _ := claims["user_id"].(string)
			email, _ := claims["email"].(string)
			department, _ := claims["department"].(string)
			isAdmin, _ := claims["is_admin"].(bool)

			ctx := WithSession(r.Context(), userID, email, department, isAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly rejects requests whose session does not carry the admin
// flag. Must run after JWTAuth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"admin access required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithSession stores session claims in the context. Exposed so tests
// can fabricate an authenticated request without minting a JWT.
func WithSession(ctx context.Context, userID, email, department string, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, emailKey, email)
	ctx = context.WithValue(ctx, departmentKey, department)
	ctx = context.WithValue(ctx, isAdminKey, isAdmin)
	return ctx
}

func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(emailKey).(string)
	return email
}

func GetDepartment(ctx context.Context) string {
	dept, _ := ctx.Value(departmentKey).(string)
	return dept
}

func IsAdmin(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(isAdminKey).(bool)
	return isAdmin
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
