package repos

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/JWT-WWIT/modern-web-app/internal/pkg/errors"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/logger"
	"github.com/JWT-WWIT/modern-web-app/internal/types"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&types.User{}, &types.Note{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := conn.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func TestNoteRepoCreateAndGet(t *testing.T) {
	conn := testDB(t)
	repo := NewNoteRepo(conn, logger.FromZap(zap.NewNop()))
	ctx := context.Background()

	owner := uuid.New()
	created, err := repo.Create(ctx, nil, &types.Note{OwnerID: owner, Title: "first", Body: "body"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}

	got, err := repo.GetByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "first" || got.OwnerID != owner {
		t.Fatalf("unexpected note: %+v", got)
	}
}

func TestNoteRepoGetMissingReturnsNotFound(t *testing.T) {
	conn := testDB(t)
	repo := NewNoteRepo(conn, logger.FromZap(zap.NewNop()))

	_, err := repo.GetByID(context.Background(), nil, uuid.New())
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNoteRepoListByOwner(t *testing.T) {
	conn := testDB(t)
	repo := NewNoteRepo(conn, logger.FromZap(zap.NewNop()))
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()
	for _, title := range []string{"a", "b"} {
		if _, err := repo.Create(ctx, nil, &types.Note{OwnerID: owner, Title: title}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := repo.Create(ctx, nil, &types.Note{OwnerID: other, Title: "c"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	notes, err := repo.ListByOwner(ctx, nil, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("unexpected count: got=%d want=2", len(notes))
	}
}

func TestNoteRepoDelete(t *testing.T) {
	conn := testDB(t)
	repo := NewNoteRepo(conn, logger.FromZap(zap.NewNop()))
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, &types.Note{OwnerID: uuid.New(), Title: "gone"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete(ctx, nil, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, nil, created.ID); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("unexpected error on second delete: %v", err)
	}
}
