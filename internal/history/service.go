package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sf7293/history-compare/internal/domain"
	"github.com/sf7293/history-compare/internal/errval"
	"github.com/sf7293/history-compare/pkg/paginate"
)

const (
	DefaultFetchDelay  = 500 * time.Millisecond
	DefaultCreateDelay = 300 * time.Millisecond
	DefaultPage        = 1
	DefaultPageSize    = 20
)

type Options struct {
	// FetchDelay and CreateDelay simulate network latency; zero answers immediately
	FetchDelay  time.Duration
	CreateDelay time.Duration
	// DefaultPageSize is used when a request leaves the page size unset
	DefaultPageSize int
	// MaxPageSize rejects larger page sizes; zero means unbounded
	MaxPageSize int
	// NewTaskID mints comparison task identifiers
	NewTaskID func() string
}

// DefaultOptions mirrors the latency of the mocked history API
func DefaultOptions() Options {
	return Options{
		FetchDelay:      DefaultFetchDelay,
		CreateDelay:     DefaultCreateDelay,
		DefaultPageSize: DefaultPageSize,
		NewTaskID:       NewTaskID,
	}
}

// NewTaskID returns a collision resistant comparison task identifier
func NewTaskID() string {
	return "task_" + uuid.NewString()
}

// Service serves reads over an immutable record set and acknowledges comparison requests.
// It is safe for concurrent use.
type Service struct {
	records []domain.HistoryRecord
	opts    Options
}

// NewService takes ownership of records; callers must not modify the slice afterwards.
func NewService(records []domain.HistoryRecord, opts Options) *Service {
	if opts.DefaultPageSize < 1 {
		opts.DefaultPageSize = DefaultPageSize
	}
	if opts.NewTaskID == nil {
		opts.NewTaskID = NewTaskID
	}

	return &Service{
		records: records,
		opts:    opts,
	}
}

func (s *Service) Ping(ctx context.Context) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}
	if len(s.records) == 0 {
		return errors.New("history record set is empty")
	}

	return nil
}

func (s *Service) FetchHistoryPage(ctx context.Context, req domain.PageRequest) (*domain.Page, error) {
	if err := wait(ctx, s.opts.FetchDelay); err != nil {
		return nil, err
	}

	page, pageSize := req.Page, req.PageSize
	if page == 0 {
		page = DefaultPage
	}
	if pageSize == 0 {
		pageSize = s.opts.DefaultPageSize
	}

	switch {
	case page < 1:
		return nil, errval.ErrInvalidPage
	case pageSize < 1:
		return nil, errval.ErrInvalidPageSize
	case s.opts.MaxPageSize > 0 && pageSize > s.opts.MaxPageSize:
		return nil, errval.ErrPageSizeTooLarge
	}

	return &domain.Page{
		Data:     paginate.Slice(s.records, page, pageSize),
		Total:    len(s.records),
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *Service) CreateComparisonTask(ctx context.Context, currentID, baselineID string) (*domain.ComparisonTask, error) {
	if err := wait(ctx, s.opts.CreateDelay); err != nil {
		return nil, err
	}

	if currentID == baselineID {
		return nil, errval.ErrIdenticalRecords
	}

	return &domain.ComparisonTask{
		TaskID:  s.opts.NewTaskID(),
		Status:  domain.Created,
		Message: domain.ComparisonTaskCreatedMessage,
	}, nil
}

// wait blocks for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
