package carousel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"learnhub/internal/core"
	"learnhub/internal/features/courses/models"
	"learnhub/internal/features/courses/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher serves canned pages. When gate is set, FetchPage signals
// entered and blocks until gate is closed.
type stubFetcher struct {
	mu      sync.Mutex
	pages   map[int]*models.CoursePage
	errs    map[int]error
	calls   []int
	gate    chan struct{}
	entered chan int
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		pages:   make(map[int]*models.CoursePage),
		errs:    make(map[int]error),
		entered: make(chan int, 8),
	}
}

func (f *stubFetcher) FetchPage(ctx context.Context, page, limit int) (*models.CoursePage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, page)
	gate := f.gate
	result, err := f.pages[page], f.errs[page]
	f.mu.Unlock()

	if gate != nil {
		f.entered <- page
		<-gate
	}
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("no page %d", page)
	}
	return result, nil
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func coursePage(page, n int, hasNext bool) *models.CoursePage {
	courses := make([]models.CourseSummary, n)
	for i := range courses {
		courses[i] = models.CourseSummary{
			ID:    models.CourseID(fmt.Sprintf("p%d-%d", page, i)),
			Title: fmt.Sprintf("Course %d.%d", page, i),
		}
	}
	return &models.CoursePage{
		Courses: courses,
		Pagination: models.Pagination{
			CurrentPage:  page,
			ItemsPerPage: PageSize,
			TotalItems:   100,
			TotalPages:   10,
			HasNextPage:  hasNext,
			HasPrevPage:  page > 1,
		},
	}
}

func TestLoadAppendAndReplace(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages[1] = coursePage(1, 10, true)
	fetcher.pages[2] = coursePage(2, 10, true)
	ctrl := NewController(fetcher, NewViewport(1280), nil)
	ctx := context.Background()

	require.True(t, ctrl.Load(ctx, 1))
	assert.Len(t, ctrl.Courses(), 10)
	assert.Equal(t, StatusReady, ctrl.Snapshot().Status)

	require.True(t, ctrl.Load(ctx, 2))
	courses := ctrl.Courses()
	require.Len(t, courses, 20)
	assert.Equal(t, models.CourseID("p1-0"), courses[0].ID)
	assert.Equal(t, models.CourseID("p2-0"), courses[10].ID)
	assert.Equal(t, 2, ctrl.Snapshot().Pagination.CurrentPage)

	require.True(t, ctrl.Load(ctx, 1))
	courses = ctrl.Courses()
	require.Len(t, courses, 10)
	assert.Equal(t, models.CourseID("p1-0"), courses[0].ID)
	assert.Equal(t, 1, ctrl.Snapshot().Pagination.CurrentPage)
}

func TestLoadRejectsPageBelowOne(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages[1] = coursePage(1, 10, true)
	fetcher.pages[2] = coursePage(2, 10, true)
	ctrl := NewController(fetcher, NewViewport(1280), nil)
	ctx := context.Background()

	require.True(t, ctrl.Load(ctx, 1))
	require.True(t, ctrl.Load(ctx, 2))
	before := ctrl.Snapshot()

	for _, page := range []int{0, -3} {
		assert.False(t, ctrl.Load(ctx, page), "page %d", page)
	}

	assert.Equal(t, 2, fetcher.callCount())
	after := ctrl.Snapshot()
	assert.False(t, after.Fetching)
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.Pagination, after.Pagination)
	assert.Len(t, ctrl.Courses(), 20)

	require.True(t, ctrl.Load(ctx, 1), "later loads still run")
}

func TestLoadDropsConcurrentCall(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages[1] = coursePage(1, 10, true)
	fetcher.pages[2] = coursePage(2, 10, true)
	ctrl := NewController(fetcher, NewViewport(1280), nil)
	ctx := context.Background()
	require.True(t, ctrl.Load(ctx, 1))

	fetcher.mu.Lock()
	fetcher.gate = make(chan struct{})
	fetcher.mu.Unlock()

	done := make(chan bool, 1)
	go func() { done <- ctrl.Load(ctx, 2) }()
	<-fetcher.entered

	before := ctrl.Snapshot()
	assert.True(t, before.Fetching)
	assert.Equal(t, StatusLoading, before.Status)

	assert.False(t, ctrl.Load(ctx, 3))
	assert.False(t, ctrl.Mount(ctx))

	after := ctrl.Snapshot()
	assert.Equal(t, before.Loaded, after.Loaded)
	assert.Equal(t, before.Pagination, after.Pagination)
	assert.Equal(t, 2, fetcher.callCount())

	close(fetcher.gate)
	assert.True(t, <-done)
	assert.Len(t, ctrl.Courses(), 20)
	assert.False(t, ctrl.Snapshot().Fetching)
}

func TestLoadFailureKeepsList(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages[1] = coursePage(1, 10, true)
	fetcher.errs[2] = &services.StatusError{URL: "http://api/courses/summary", StatusCode: http.StatusBadGateway}
	ctrl := NewController(fetcher, NewViewport(1280), nil)
	ctx := context.Background()

	require.True(t, ctrl.Load(ctx, 1))
	require.True(t, ctrl.Load(ctx, 2))

	snap := ctrl.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, 10, snap.Loaded)
	assert.Equal(t, 1, snap.Pagination.CurrentPage)
	assert.Contains(t, snap.Error, "502")

	appErr := ctrl.Err()
	require.NotNil(t, appErr)
	assert.Equal(t, core.ErrCodeFeedLoad, appErr.Code)
	assert.False(t, snap.Fetching)
}

func TestErrorBlocksPrefetchUntilRetry(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages[1] = coursePage(1, 3, true)
	fetcher.errs[2] = errors.New("connection reset")
	ctrl := NewController(fetcher, NewViewport(1280), nil)
	ctx := context.Background()

	// A single window is also the last one, so page 2 is requested at once
	ctrl.Mount(ctx)
	assert.Equal(t, []int{1, 2}, fetcher.calls)
	assert.Equal(t, StatusError, ctrl.Snapshot().Status)
	assert.Equal(t, genericFeedError, ctrl.Snapshot().Error)

	ctrl.Next(ctx)
	ctrl.Tick(ctx)
	assert.Equal(t, 2, fetcher.callCount())

	delete(fetcher.errs, 2)
	fetcher.pages[2] = coursePage(2, 3, false)
	require.True(t, ctrl.Retry(ctx))

	snap := ctrl.Snapshot()
	assert.Equal(t, StatusReady, snap.Status)
	assert.Empty(t, snap.Error)
	assert.Equal(t, 6, snap.Loaded)
	assert.Equal(t, []int{1, 2, 1, 2}, fetcher.calls)
}

func TestPrefetchOnLastWindow(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages[1] = coursePage(1, 10, true)
	fetcher.pages[2] = coursePage(2, 10, false)
	ctrl := NewController(fetcher, NewViewport(1280), nil)
	ctx := context.Background()

	require.True(t, ctrl.Mount(ctx))
	assert.Equal(t, 4, ctrl.SlideState().Total)

	ctrl.Next(ctx)
	ctrl.Next(ctx)
	assert.Equal(t, 1, fetcher.callCount())

	ctrl.Next(ctx)
	assert.Equal(t, []int{1, 2}, fetcher.calls)

	state := ctrl.SlideState()
	assert.Equal(t, 3, state.Index)
	assert.Equal(t, 7, state.Total)

	// No further pages upstream
	for i := 0; i < 10; i++ {
		ctrl.Next(ctx)
	}
	assert.Equal(t, 2, fetcher.callCount())
}

func TestGestures(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages[1] = coursePage(1, 10, false)
	ctrl := NewController(fetcher, NewViewport(1280), nil)
	ctx := context.Background()
	require.True(t, ctrl.Mount(ctx))

	swipe := func(start, end float64) Swipe {
		ctrl.TouchStart(start)
		assert.True(t, ctrl.SlideState().Paused)
		ctrl.TouchMove(end)
		return ctrl.TouchEnd(ctx)
	}

	assert.Equal(t, SwipeNext, swipe(300, 240))
	assert.Equal(t, 1, ctrl.SlideState().Index)

	assert.Equal(t, SwipePrev, swipe(240, 300))
	assert.Equal(t, 0, ctrl.SlideState().Index)

	assert.Equal(t, SwipeNone, swipe(300, 270))
	assert.Equal(t, 0, ctrl.SlideState().Index)

	assert.Equal(t, SwipePrev, swipe(100, 200))
	assert.Equal(t, 3, ctrl.SlideState().Index)

	assert.False(t, ctrl.SlideState().Paused)
}

func TestTapWithoutMove(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages[1] = coursePage(1, 10, false)
	ctrl := NewController(fetcher, NewViewport(1280), nil)
	require.True(t, ctrl.Mount(context.Background()))

	ctrl.TouchStart(400)
	assert.Equal(t, SwipeNone, ctrl.TouchEnd(context.Background()))
	assert.Equal(t, SwipeNone, ctrl.TouchEnd(context.Background()))
	assert.Equal(t, 0, ctrl.SlideState().Index)
}

func TestTickCycle(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages[1] = coursePage(1, 12, false)
	ctrl := NewController(fetcher, NewViewport(1280), nil)
	ctx := context.Background()
	require.True(t, ctrl.Mount(ctx))
	require.Equal(t, 4, ctrl.SlideState().Total)

	for i := 0; i < 4; i++ {
		ctrl.Tick(ctx)
	}
	assert.Equal(t, 0, ctrl.SlideState().Index)

	ctrl.SetHover(true)
	ctrl.Tick(ctx)
	assert.Equal(t, 0, ctrl.SlideState().Index)

	ctrl.SetHover(false)
	ctrl.Tick(ctx)
	assert.Equal(t, 1, ctrl.SlideState().Index)
}

func TestResize(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages[1] = coursePage(1, 10, false)
	viewport := NewViewport(375)
	ctrl := NewController(fetcher, viewport, nil)
	ctx := context.Background()
	require.True(t, ctrl.Mount(ctx))

	snap := ctrl.Snapshot()
	assert.Equal(t, 1, snap.WindowSize)
	assert.Equal(t, 10, snap.TotalWindows)

	for i := 0; i < 8; i++ {
		ctrl.Next(ctx)
	}
	assert.Equal(t, 8, ctrl.SlideState().Index)

	viewport.SetWidth(1440)
	ctrl.Resize(ctx)

	snap = ctrl.Snapshot()
	assert.Equal(t, 3, snap.WindowSize)
	assert.Equal(t, 4, snap.TotalWindows)
	assert.Equal(t, 3, snap.Index)
	require.Len(t, snap.Courses, 1)
	assert.Equal(t, models.CourseID("p1-9"), snap.Courses[0].ID)
}

func TestScheduleHook(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages[1] = coursePage(1, 10, false)
	viewport := NewViewport(1280)
	ctrl := NewController(fetcher, viewport, nil)
	ctx := context.Background()

	var resets atomic.Int32
	ctrl.OnScheduleChange(func() { resets.Add(1) })

	require.True(t, ctrl.Mount(ctx))
	assert.Equal(t, int32(1), resets.Load(), "window count 0 -> 4")

	ctrl.Next(ctx)
	ctrl.Tick(ctx)
	assert.Equal(t, int32(1), resets.Load(), "moving does not reschedule")

	ctrl.SetHover(true)
	ctrl.SetHover(true)
	ctrl.SetHover(false)
	assert.Equal(t, int32(3), resets.Load())

	viewport.SetWidth(800)
	ctrl.Resize(ctx)
	assert.Equal(t, int32(4), resets.Load(), "window count 4 -> 5")
}

func TestSnapshotWindow(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages[1] = coursePage(1, 10, false)
	ctrl := NewController(fetcher, NewViewport(800), nil)
	ctx := context.Background()

	idle := ctrl.Snapshot()
	assert.Equal(t, StatusIdle, idle.Status)
	assert.Empty(t, idle.Courses)
	assert.Zero(t, idle.TotalWindows)

	require.True(t, ctrl.Mount(ctx))
	ctrl.Prev(ctx)

	snap := ctrl.Snapshot()
	assert.Equal(t, 4, snap.Index)
	require.Len(t, snap.Courses, 2)
	assert.Equal(t, models.CourseID("p1-8"), snap.Courses[0].ID)
	assert.Equal(t, models.CourseID("p1-9"), snap.Courses[1].ID)
	assert.Equal(t, snap.Courses, ctrl.CurrentWindow())
}

func TestFeedErrorMessage(t *testing.T) {
	assert.Equal(t, "Course service responded with 503 Service Unavailable.",
		feedErrorMessage(&services.StatusError{StatusCode: http.StatusServiceUnavailable}))
	assert.Equal(t, "Loading courses was interrupted. Please try again.",
		feedErrorMessage(fmt.Errorf("fetch: %w", context.DeadlineExceeded)))
	assert.Equal(t, genericFeedError, feedErrorMessage(errors.New("dial tcp: refused")))
}

func TestConcurrentUse(t *testing.T) {
	fetcher := newStubFetcher()
	for p := 1; p <= 5; p++ {
		fetcher.pages[p] = coursePage(p, 10, p < 5)
	}
	ctrl := NewController(fetcher, NewViewport(1280), nil)
	ctx := context.Background()
	require.True(t, ctrl.Mount(ctx))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				switch (i + j) % 4 {
				case 0:
					ctrl.Next(ctx)
				case 1:
					ctrl.Tick(ctx)
				case 2:
					ctrl.SetHover(j%2 == 0)
				default:
					_ = ctrl.Snapshot()
				}
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("concurrent use deadlocked")
	}

	// Pages only ever grow while no page is reloaded
	courses := ctrl.Courses()
	assert.LessOrEqual(t, len(courses), 50)
	assert.Zero(t, len(courses)%10)
}
