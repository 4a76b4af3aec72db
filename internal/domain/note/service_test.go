package note_test

import (
	"context"
	"testing"

	"github.com/everday/everday/internal/domain/note"
	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/repository"
	"github.com/everday/everday/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNoteService_CreateRespectsCeiling(t *testing.T) {
	ctx := context.Background()
	scope := plan.Scope{OwnerID: "acct-1", Tier: plan.TierFree}

	repo := &mocks.NoteRepository{}
	repo.On("Count", ctx, "acct-1").Return(14, nil).Once()
	repo.On("Create", ctx, "acct-1", mock.AnythingOfType("*note.Note")).Return(nil).Once()
	repo.On("Count", ctx, "acct-1").Return(15, nil).Once()

	svc := note.NewService(repo, nil)
	n, err := svc.Create(ctx, scope, note.CreateRequest{Title: "Groceries"})
	require.NoError(t, err)
	require.NotEmpty(t, n.ID)

	_, err = svc.Create(ctx, scope, note.CreateRequest{Title: "One more"})
	require.ErrorIs(t, err, plan.ErrLimitReached)
	repo.AssertExpectations(t)
}

func TestNoteService_CreateValidates(t *testing.T) {
	svc := note.NewService(&mocks.NoteRepository{}, nil)
	scope := plan.Scope{OwnerID: "acct-1"}

	_, err := svc.Create(context.Background(), scope, note.CreateRequest{Title: " ", Content: ""})
	require.ErrorIs(t, err, note.ErrInvalidInput)

	color := "#ffcc00"
	_, err = svc.Create(context.Background(), scope, note.CreateRequest{Title: "x", Color: &color})
	require.ErrorIs(t, err, plan.ErrCapabilityLocked)
}

func TestNoteService_SetColorRequiresPremium(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.NoteRepository{}
	repo.On("Get", ctx, "acct-1", "n1").Return(&note.Note{ID: "n1", Title: "a"}, nil)
	repo.On("Update", ctx, "acct-1", mock.MatchedBy(func(n *note.Note) bool {
		return n.Color != nil && *n.Color == "#000000"
	})).Return(nil)

	svc := note.NewService(repo, nil)
	color := "#000000"
	_, err := svc.SetColor(ctx, plan.Scope{OwnerID: "acct-1", Tier: plan.TierFree}, "n1", &color)
	require.ErrorIs(t, err, plan.ErrCapabilityLocked)

	n, err := svc.SetColor(ctx, plan.Scope{OwnerID: "acct-1", Tier: plan.TierPlus}, "n1", &color)
	require.NoError(t, err)
	require.Equal(t, "#000000", *n.Color)
}

func TestNoteService_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.NoteRepository{}
	repo.On("Get", ctx, "acct-1", "missing").Return(nil, repository.ErrNotFound)
	repo.On("Delete", ctx, "acct-1", "missing").Return(repository.ErrNotFound)

	svc := note.NewService(repo, nil)
	title := "t"
	_, err := svc.Update(ctx, plan.Scope{OwnerID: "acct-1"}, "missing", note.UpdateRequest{Title: &title})
	require.ErrorIs(t, err, note.ErrNoteNotFound)
	require.ErrorIs(t, svc.Delete(ctx, plan.Scope{OwnerID: "acct-1"}, "missing"), note.ErrNoteNotFound)
}
