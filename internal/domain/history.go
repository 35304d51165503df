package domain

import "context"

type HistoryService interface {
	Ping(ctx context.Context) (err error)
	FetchHistoryPage(ctx context.Context, req PageRequest) (*Page, error)
	CreateComparisonTask(ctx context.Context, currentID, baselineID string) (*ComparisonTask, error)
}
