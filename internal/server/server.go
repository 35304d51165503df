package server

import (
	"context"
	"errors"
	"github.com/sf7293/history-compare/internal/domain"
	"github.com/sf7293/history-compare/internal/errval"
	"log/slog"
)

type ServerLogic struct {
	history domain.HistoryService
}

func NewServerLogic(history domain.HistoryService) *ServerLogic {
	return &ServerLogic{
		history: history,
	}
}

func (s *ServerLogic) Ping(ctx context.Context) (err error) {
	return s.history.Ping(ctx)
}

func (s *ServerLogic) FetchHistoryPage(ctx context.Context, req domain.RouterRequestFetchHistory) (*domain.Page, error) {
	page, err := s.history.FetchHistoryPage(ctx, domain.PageRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, s.mapError(ctx, "history.FetchHistoryPage", err)
	}

	slog.DebugContext(ctx, "history page served", "page", page.Page, "page_size", page.PageSize, "records", len(page.Data))
	return page, nil
}

func (s *ServerLogic) CreateComparisonTask(ctx context.Context, req domain.RouterRequestCreateComparison) (*domain.ComparisonTask, error) {
	task, err := s.history.CreateComparisonTask(ctx, req.CurrentID, req.BaselineID)
	if err != nil {
		return nil, s.mapError(ctx, "history.CreateComparisonTask", err)
	}

	slog.InfoContext(ctx, "comparison task created", "task_id", task.TaskID, "current_id", req.CurrentID, "baseline_id", req.BaselineID)
	return task, nil
}

// mapError lets validation and context errors through and hides everything else behind ErrInternal
func (s *ServerLogic) mapError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, errval.ErrValidation):
		slog.InfoContext(ctx, "request rejected", "op", op, "reason", err.Error())
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slog.WarnContext(ctx, "request abandoned before completion", "op", op, "error", err)
		return err
	default:
		slog.ErrorContext(ctx, "error occurred while calling "+op, "error", err)
		return errval.ErrInternal
	}
}
