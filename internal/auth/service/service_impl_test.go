package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/onebase/onebase/internal/auth/domain"
	"github.com/onebase/onebase/internal/auth/password"
	"github.com/onebase/onebase/internal/auth/repository"
	"github.com/onebase/onebase/pkg/db"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (authdomain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&authdomain.User{}, &authdomain.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	repo, sessionRepo := repository.New(dbConn)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return New(zap.NewNop(), repo, sessionRepo, node), dbConn, node
}

func seedUser(t *testing.T, dbConn *gorm.DB, node *snowflake.Node, email, pass string, active bool) authdomain.User {
	t.Helper()

	hashed, err := password.Hash(pass)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	now := time.Now().UTC()
	user := authdomain.User{
		ID:           node.Generate(),
		OrgID:        node.Generate(),
		Email:        email,
		PasswordHash: &hashed,
		Role:         authdomain.RoleAdmin,
		IsActive:     active,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := dbConn.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc, dbConn, node := newTestService(t)
	user := seedUser(t, dbConn, node, "alice@example.com", "correct-password", true)

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "Alice@Example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.User.ID != user.ID.String() {
		t.Fatalf("expected user %v, got %v", user.ID, result.User.ID)
	}
	if result.RawToken == "" {
		t.Fatal("expected a session token")
	}

	session, err := svc.Authenticate(context.Background(), result.RawToken)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if session.UserID != user.ID {
		t.Fatalf("expected session user %v, got %v", user.ID, session.UserID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, dbConn, node := newTestService(t)
	seedUser(t, dbConn, node, "alice@example.com", "correct-password", true)

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	svc, dbConn, node := newTestService(t)
	seeded := seedUser(t, dbConn, node, "bob@example.com", "strong-password", false)

	// The inactive flag must survive the insert; a column default silently
	// flipping it back to active would let the login below succeed.
	var stored authdomain.User
	if err := dbConn.First(&stored, "id = ?", seeded.ID).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if stored.IsActive {
		t.Fatal("expected seeded user to be persisted as inactive")
	}

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "bob@example.com",
		Password: "strong-password",
	})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateExpiredSessionIsDeleted(t *testing.T) {
	svc, dbConn, node := newTestService(t)
	user := seedUser(t, dbConn, node, "carol@example.com", "pass-word-123", true)

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "carol@example.com",
		Password: "pass-word-123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	expired := time.Now().UTC().Add(-time.Hour)
	if err := dbConn.Model(&authdomain.Session{}).
		Where("id = ?", result.SessionID).
		Update("expires_at", expired).Error; err != nil {
		t.Fatalf("failed to expire session: %v", err)
	}

	_, err = svc.Authenticate(context.Background(), result.RawToken)
	if err != authdomain.ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	var count int64
	if err := dbConn.Model(&authdomain.Session{}).
		Where("user_id = ?", user.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("failed to count sessions: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected expired session to be deleted, found %d", count)
	}

	// The same token must keep failing.
	_, err = svc.Authenticate(context.Background(), result.RawToken)
	if err != authdomain.ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, dbConn, node := newTestService(t)
	seedUser(t, dbConn, node, "dave@example.com", "pass-word-123", true)

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "dave@example.com",
		Password: "pass-word-123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), result.RawToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	_, err = svc.Authenticate(context.Background(), result.RawToken)
	if err != authdomain.ErrSessionRevoked {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}
}

func TestCurrentUserInactive(t *testing.T) {
	svc, dbConn, node := newTestService(t)
	user := seedUser(t, dbConn, node, "erin@example.com", "pass-word-123", true)

	if err := dbConn.Model(&authdomain.User{}).
		Where("id = ?", user.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate user: %v", err)
	}

	_, err := svc.CurrentUser(context.Background(), user.ID)
	if err != authdomain.ErrUserInactive {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}
