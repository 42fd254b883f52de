package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/JWT-WWIT/modern-web-app/internal/clients/redis"
	pkgerrors "github.com/JWT-WWIT/modern-web-app/internal/pkg/errors"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/apierr"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/logger"
	"github.com/JWT-WWIT/modern-web-app/internal/repos"
	"github.com/JWT-WWIT/modern-web-app/internal/types"
)

type NoteService interface {
	Create(ctx context.Context, ownerID uuid.UUID, title, body string) (*types.Note, error)
	Get(ctx context.Context, ownerID, noteID uuid.UUID) (*types.Note, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*types.Note, error)
	Delete(ctx context.Context, ownerID, noteID uuid.UUID) error
}

type noteService struct {
	log   *logger.Logger
	notes repos.NoteRepo
	cache redis.NoteCache
}

// NewNoteService builds the note service. cache may be nil; lookups then go
// straight to the repository.
func NewNoteService(log *logger.Logger, notes repos.NoteRepo, cache redis.NoteCache) NoteService {
	return &noteService{log: log.With("service", "NoteService"), notes: notes, cache: cache}
}

func (s *noteService) Create(ctx context.Context, ownerID uuid.UUID, title, body string) (*types.Note, error) {
	note, err := s.notes.Create(ctx, nil, &types.Note{
		OwnerID: ownerID,
		Title:   title,
		Body:    body,
	})
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, note)
	}
	return note, nil
}

func (s *noteService) Get(ctx context.Context, ownerID, noteID uuid.UUID) (*types.Note, error) {
	if s.cache != nil {
		if note, ok := s.cache.Get(ctx, noteID); ok {
			if note.OwnerID != ownerID {
				return nil, apierr.New(http.StatusForbidden, "forbidden", pkgerrors.ErrUnauthorized)
			}
			return note, nil
		}
	}
	note, err := s.notes.GetByID(ctx, nil, noteID)
	if err != nil {
		return nil, err
	}
	if note.OwnerID != ownerID {
		return nil, apierr.New(http.StatusForbidden, "forbidden", pkgerrors.ErrUnauthorized)
	}
	if s.cache != nil {
		s.cache.Set(ctx, note)
	}
	return note, nil
}

func (s *noteService) List(ctx context.Context, ownerID uuid.UUID) ([]*types.Note, error) {
	return s.notes.ListByOwner(ctx, nil, ownerID)
}

func (s *noteService) Delete(ctx context.Context, ownerID, noteID uuid.UUID) error {
	note, err := s.notes.GetByID(ctx, nil, noteID)
	if err != nil {
		return err
	}
	if note.OwnerID != ownerID {
		return apierr.New(http.StatusForbidden, "forbidden", pkgerrors.ErrUnauthorized)
	}
	if err := s.notes.Delete(ctx, nil, noteID); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, noteID)
	}
	return nil
}
