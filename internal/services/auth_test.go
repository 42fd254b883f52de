package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/JWT-WWIT/modern-web-app/internal/pkg/errors"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/logger"
	"github.com/JWT-WWIT/modern-web-app/internal/repos"
	"github.com/JWT-WWIT/modern-web-app/internal/types"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&types.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := conn.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	log := logger.FromZap(zap.NewNop())
	return NewAuthService(log, repos.NewUserRepo(conn, log), AuthConfig{
		JWTSecretKey:   "test-secret",
		AccessTokenTTL: time.Hour,
	})
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "correct-horse" {
		t.Fatal("password stored in plaintext")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ada@example.com", "correct-horse"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(ctx, "ada@example.com", "other-password")
	if !errors.Is(err, pkgerrors.ErrConflict) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoginRoundTripsPrincipal(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := svc.Login(ctx, "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	principal, err := svc.PrincipalFromToken(ctx, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if principal.UserID != user.ID {
		t.Fatalf("unexpected principal id: %v", principal.UserID)
	}
	if principal.Name != "ada@example.com" {
		t.Fatalf("unexpected principal name: %q", principal.Name)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ada@example.com", "correct-horse"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Login(ctx, "ada@example.com", "wrong")
	if !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPrincipalFromTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.PrincipalFromToken(context.Background(), "not.a.token")
	if !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("unexpected error: %v", err)
	}
}
