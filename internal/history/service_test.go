package history

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sf7293/history-compare/internal/domain"
	"github.com/sf7293/history-compare/internal/errval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(opts Options) *Service {
	return NewService(GenerateRecords(fixedNow), opts)
}

func TestFetchHistoryPage_Defaults(t *testing.T) {
	s := newTestService(Options{})
	records := GenerateRecords(fixedNow)

	page, err := s.FetchHistoryPage(context.Background(), domain.PageRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 50, page.Total)
	assert.Equal(t, records[:20], page.Data)
}

func TestFetchHistoryPage_LengthProperty(t *testing.T) {
	s := newTestService(Options{})
	ctx := context.Background()

	for _, pageSize := range []int{1, 7, 20, 49, 50, 51, 1000} {
		for page := 1; page <= 8; page++ {
			result, err := s.FetchHistoryPage(ctx, domain.PageRequest{Page: page, PageSize: pageSize})
			require.NoError(t, err)

			want := max(0, min(pageSize, 50-(page-1)*pageSize))
			assert.Len(t, result.Data, want, "page %d size %d", page, pageSize)
			assert.Equal(t, 50, result.Total)
			assert.Equal(t, page, result.Page)
			assert.Equal(t, pageSize, result.PageSize)
		}
	}
}

func TestFetchHistoryPage_OutOfRangeIsEmpty(t *testing.T) {
	s := newTestService(Options{})

	page, err := s.FetchHistoryPage(context.Background(), domain.PageRequest{Page: 4, PageSize: 20})
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 50, page.Total)
}

func TestFetchHistoryPage_ThirdPageIsPartial(t *testing.T) {
	s := newTestService(Options{})

	page, err := s.FetchHistoryPage(context.Background(), domain.PageRequest{Page: 3})
	require.NoError(t, err)
	require.Len(t, page.Data, 10)
	assert.Equal(t, "record_41", page.Data[0].ID)
	assert.Equal(t, "record_50", page.Data[9].ID)
}

func TestFetchHistoryPage_Idempotent(t *testing.T) {
	s := newTestService(Options{})
	ctx := context.Background()
	req := domain.PageRequest{Page: 2, PageSize: 15}

	first, err := s.FetchHistoryPage(ctx, req)
	require.NoError(t, err)
	first.Data[0].ID = "mutated"

	second, err := s.FetchHistoryPage(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "record_16", second.Data[0].ID)
}

func TestFetchHistoryPage_InvalidParams(t *testing.T) {
	s := newTestService(Options{MaxPageSize: 25})
	ctx := context.Background()

	_, err := s.FetchHistoryPage(ctx, domain.PageRequest{Page: -1})
	assert.ErrorIs(t, err, errval.ErrInvalidPage)
	assert.ErrorIs(t, err, errval.ErrValidation)

	_, err = s.FetchHistoryPage(ctx, domain.PageRequest{PageSize: -5})
	assert.ErrorIs(t, err, errval.ErrInvalidPageSize)

	_, err = s.FetchHistoryPage(ctx, domain.PageRequest{PageSize: 26})
	assert.ErrorIs(t, err, errval.ErrPageSizeTooLarge)

	_, err = s.FetchHistoryPage(ctx, domain.PageRequest{PageSize: 25})
	assert.NoError(t, err)
}

func TestFetchHistoryPage_WaitsForDelay(t *testing.T) {
	s := newTestService(Options{FetchDelay: 50 * time.Millisecond})

	start := time.Now()
	_, err := s.FetchHistoryPage(context.Background(), domain.PageRequest{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestFetchHistoryPage_ContextCancelled(t *testing.T) {
	s := newTestService(Options{FetchDelay: time.Minute})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.FetchHistoryPage(ctx, domain.PageRequest{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCreateComparisonTask_Success(t *testing.T) {
	s := newTestService(Options{})

	task, err := s.CreateComparisonTask(context.Background(), "record_1", "record_2")
	require.NoError(t, err)
	assert.Equal(t, domain.Created, task.Status)
	assert.NotEmpty(t, task.TaskID)
	assert.Contains(t, task.TaskID, "task_")
	assert.Equal(t, domain.ComparisonTaskCreatedMessage, task.Message)
}

func TestCreateComparisonTask_IdenticalIDs(t *testing.T) {
	s := newTestService(Options{})

	for _, id := range []string{"record_1", "record_50", "unknown", ""} {
		task, err := s.CreateComparisonTask(context.Background(), id, id)
		assert.Nil(t, task)
		assert.ErrorIs(t, err, errval.ErrIdenticalRecords, "id %q", id)
		assert.Contains(t, err.Error(), "must differ")
	}
}

func TestCreateComparisonTask_DoesNotCheckExistence(t *testing.T) {
	s := newTestService(Options{})

	_, err := s.CreateComparisonTask(context.Background(), "nope_1", "nope_2")
	assert.NoError(t, err)
}

func TestCreateComparisonTask_InjectedIDGenerator(t *testing.T) {
	s := newTestService(Options{NewTaskID: func() string { return "task_fixed" }})

	task, err := s.CreateComparisonTask(context.Background(), "record_1", "record_2")
	require.NoError(t, err)
	assert.Equal(t, "task_fixed", task.TaskID)
}

func TestCreateComparisonTask_FailsOnlyAfterDelay(t *testing.T) {
	s := newTestService(Options{CreateDelay: 30 * time.Millisecond})

	start := time.Now()
	_, err := s.CreateComparisonTask(context.Background(), "record_1", "record_1")
	assert.Error(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestCreateComparisonTask_ConcurrentIDsAreUnique(t *testing.T) {
	s := newTestService(Options{})

	const calls = 200
	ids := make(chan string, calls)
	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := s.CreateComparisonTask(context.Background(), "record_1", "record_2")
			if err == nil {
				ids <- task.TaskID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate task id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, calls)
}

func TestPing(t *testing.T) {
	assert.NoError(t, newTestService(Options{}).Ping(context.Background()))

	empty := NewService(nil, Options{})
	assert.Error(t, empty.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, errors.Is(newTestService(Options{}).Ping(ctx), context.Canceled))
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 500*time.Millisecond, opts.FetchDelay)
	assert.Equal(t, 300*time.Millisecond, opts.CreateDelay)
	assert.Equal(t, 20, opts.DefaultPageSize)
	assert.Zero(t, opts.MaxPageSize)
}
