package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/meiduo-next/internal/config"
	"github.com/meiduo-next/internal/models"
	"github.com/meiduo-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newUserAuthTestService(t *testing.T) *UserAuthService {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "users.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "test-secret-key-for-user-auth-service"
	cfg.UserJWT.ExpireHours = 1
	return NewUserAuthService(cfg, repository.NewUserRepository(db))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newUserAuthTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Username: "zhangsan",
		Email:    "zhangsan@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("registered user should have id")
	}

	if _, err := svc.Register(ctx, RegisterInput{Username: "zhangsan", Email: "other@example.com", Password: "x"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate username want ErrUsernameTaken got %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Username: "lisi", Email: "zhangsan@example.com", Password: "x"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email want ErrEmailTaken got %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Username: "wangwu", Email: "not-an-email", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad email want ErrInvalidCredentials got %v", err)
	}

	logged, token, _, err := svc.Login(ctx, "zhangsan", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("logged user id mismatch")
	}
	if logged.LastLoginAt == nil {
		t.Fatalf("login should record last login time")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "zhangsan" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, _, err := svc.Login(ctx, "zhangsan", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials got %v", err)
	}
}

func TestParseUserJWTRejectsTampered(t *testing.T) {
	svc := newUserAuthTestService(t)

	user := &models.User{ID: 1, Username: "zhangsan"}
	token, _, err := svc.GenerateUserJWT(user, 1)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	if _, err := svc.ParseUserJWT(token + "x"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("tampered token want ErrTokenInvalid got %v", err)
	}

	other := newUserAuthTestService(t)
	other.cfg.UserJWT.SecretKey = "another-secret-key-entirely-different"
	if _, err := other.ParseUserJWT(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("token signed with other key want ErrTokenInvalid got %v", err)
	}
}
