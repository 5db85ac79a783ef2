package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-booking/config"
	"hospital-booking/internal/domain/entity"
	"hospital-booking/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func testDB() *gorm.DB {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	if err != nil {
		panic(err)
	}
	return db
}

type stubUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (r *stubUserRepo) Create(db *gorm.DB, user *entity.User) error { return nil }

func (r *stubUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *stubUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	return nil, nil
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: time.Hour})
	user := &entity.User{ID: uuid.New(), Email: "jane@example.com", Role: entity.RolePatient}
	userRepo := &stubUserRepo{users: map[uuid.UUID]*entity.User{user.ID: user}}
	m := NewAuthMiddleware(jwtService, testDB(), userRepo)

	validToken, err := jwtService.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	orphanToken, err := jwtService.GenerateToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantNext   bool
	}{
		{"valid token", "Bearer " + validToken, http.StatusOK, true},
		{"missing header", "", http.StatusUnauthorized, false},
		{"malformed header", "Token abc", http.StatusUnauthorized, false},
		{"invalid token", "Bearer garbage", http.StatusUnauthorized, false},
		{"token for deleted user", "Bearer " + orphanToken, http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			m.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != tt.wantNext {
				t.Errorf("next called = %v, want %v", called, tt.wantNext)
			}
		})
	}
}

func TestAuthenticateSetsIdentityContext(t *testing.T) {
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: time.Hour})
	user := &entity.User{ID: uuid.New(), Email: "jane@example.com", Role: entity.RoleDoctor}
	userRepo := &stubUserRepo{users: map[uuid.UUID]*entity.User{user.ID: user}}
	m := NewAuthMiddleware(jwtService, testDB(), userRepo)

	token, _ := jwtService.GenerateToken(user.ID)

	var gotID uuid.UUID
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserIDFromContext(r.Context())
		gotRole, _ = GetUserRoleFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	m.Authenticate(next).ServeHTTP(httptest.NewRecorder(), req)

	if gotID != user.ID {
		t.Errorf("context user id = %s, want %s", gotID, user.ID)
	}
	// Role comes from the stored user, not from the token
	if gotRole != entity.RoleDoctor {
		t.Errorf("context role = %q, want doctor", gotRole)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		middleware func(http.Handler) http.Handler
		wantStatus int
	}{
		{"admin passes admin gate", entity.RoleAdmin, RequireAdmin, http.StatusOK},
		{"patient blocked from admin gate", entity.RolePatient, RequireAdmin, http.StatusForbidden},
		{"patient passes booking gate", entity.RolePatient, RequirePatient, http.StatusOK},
		{"doctor blocked from booking gate", entity.RoleDoctor, RequirePatient, http.StatusForbidden},
		{"patient passes triage gate", entity.RolePatient, RequirePatientOrAdmin, http.StatusOK},
		{"admin passes triage gate", entity.RoleAdmin, RequirePatientOrAdmin, http.StatusOK},
		{"doctor blocked from triage gate", entity.RoleDoctor, RequirePatientOrAdmin, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			req := httptest.NewRequest(http.MethodPost, "/api/test", nil)
			ctx := context.WithValue(req.Context(), UserRoleKey, tt.role)
			rec := httptest.NewRecorder()

			tt.middleware(okHandler(&called)).ServeHTTP(rec, req.WithContext(ctx))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != (tt.wantStatus == http.StatusOK) {
				t.Errorf("next called = %v", called)
			}
		})
	}
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	called := false
	req := httptest.NewRequest(http.MethodPost, "/api/test", nil)
	rec := httptest.NewRecorder()

	RequireAdmin(okHandler(&called)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if called {
		t.Error("next called without identity in context")
	}
}
