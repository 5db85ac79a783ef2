package middleware

import (
	"context"
	"net/http"
	"strings"

	"hospital-booking/internal/domain/entity"
	"hospital-booking/internal/domain/repository"
	"hospital-booking/pkg/jwt"
	"hospital-booking/pkg/response"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	UserRoleKey  contextKey = "user_role"
)

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	db         *gorm.DB
	userRepo   repository.UserRepository
}

func NewAuthMiddleware(jwtService *jwt.JWTService, db *gorm.DB, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		db:         db,
		userRepo:   userRepo,
	}
}

// Authenticate validates the bearer token and resolves the subject against
// the identity store. Role always comes from the stored user, not the
// token, so a token outlives neither its user nor a role change.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		user, err := m.userRepo.FindByID(m.db.WithContext(r.Context()), claims.UserID)
		if err != nil {
			response.InternalServerError(w, "Failed to resolve user")
			return
		}
		if user == nil {
			response.Unauthorized(w, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
		ctx = context.WithValue(ctx, UserEmailKey, user.Email)
		ctx = context.WithValue(ctx, UserRoleKey, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmailFromContext extracts user email from context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetUserRoleFromContext extracts user role from context
func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(UserRoleKey).(string)
	return role, ok
}

// WithUser returns a context carrying an authenticated user's identity.
// Used by tests and internal callers that bypass the HTTP layer.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, user.ID)
	ctx = context.WithValue(ctx, UserEmailKey, user.Email)
	return context.WithValue(ctx, UserRoleKey, user.Role)
}
