package todo_test

import (
	"context"
	"testing"

	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/domain/todo"
	"github.com/everday/everday/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var scope = plan.Scope{OwnerID: "acct-1", Tier: plan.TierFree}

func TestTodoService_CreatePerListCeiling(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TodoRepository{}
	repo.On("Count", ctx, "acct-1", todo.KindYearly).Return(5, nil)
	repo.On("Count", ctx, "acct-1", todo.KindTask).Return(5, nil)
	repo.On("Create", ctx, "acct-1", mock.MatchedBy(func(td *todo.Todo) bool {
		return td.Kind == todo.KindTask && td.Title == "Ship it"
	})).Return(nil)

	svc := todo.NewService(repo, nil)
	_, err := svc.Create(ctx, scope, todo.CreateRequest{Kind: todo.KindYearly, Title: "Run a marathon"})
	require.ErrorIs(t, err, plan.ErrLimitReached)

	created, err := svc.Create(ctx, scope, todo.CreateRequest{Title: "Ship it"})
	require.NoError(t, err)
	require.Equal(t, todo.KindTask, created.Kind)
	repo.AssertExpectations(t)
}

func TestTodoService_MoveChecksDestination(t *testing.T) {
	ctx := context.Background()
	item := &todo.Todo{ID: "t1", Kind: todo.KindTask, Title: "Plan"}

	repo := &mocks.TodoRepository{}
	repo.On("Get", ctx, "acct-1", "t1").Return(item, nil)
	repo.On("Count", ctx, "acct-1", todo.KindMonthly).Return(5, nil).Once()

	svc := todo.NewService(repo, nil)
	_, err := svc.Move(ctx, scope, "t1", todo.KindMonthly)
	require.ErrorIs(t, err, plan.ErrLimitReached)

	same, err := svc.Move(ctx, scope, "t1", todo.KindTask)
	require.NoError(t, err)
	require.Equal(t, todo.KindTask, same.Kind)
	repo.AssertNotCalled(t, "Count", ctx, "acct-1", todo.KindTask)

	repo.On("Count", ctx, "acct-1", todo.KindMonthly).Return(4, nil).Once()
	repo.On("Update", ctx, "acct-1", mock.AnythingOfType("*todo.Todo")).Return(nil)
	moved, err := svc.Move(ctx, scope, "t1", todo.KindMonthly)
	require.NoError(t, err)
	require.Equal(t, todo.KindMonthly, moved.Kind)
}

func TestTodoService_Toggle(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TodoRepository{}
	repo.On("Get", ctx, "acct-1", "t1").Return(&todo.Todo{ID: "t1", Kind: todo.KindTask}, nil)
	repo.On("Update", ctx, "acct-1", mock.MatchedBy(func(td *todo.Todo) bool { return td.IsCompleted })).Return(nil)

	got, err := todo.NewService(repo, nil).Toggle(ctx, scope, "t1")
	require.NoError(t, err)
	require.True(t, got.IsCompleted)
}

func TestTodoService_InvalidKind(t *testing.T) {
	svc := todo.NewService(&mocks.TodoRepository{}, nil)
	_, err := svc.Create(context.Background(), scope, todo.CreateRequest{Kind: "weekly", Title: "x"})
	require.ErrorIs(t, err, todo.ErrInvalidInput)
	_, err = svc.List(context.Background(), scope, "weekly")
	require.ErrorIs(t, err, todo.ErrInvalidInput)
}
