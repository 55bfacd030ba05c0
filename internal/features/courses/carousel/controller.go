package carousel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"learnhub/internal/core"
	"learnhub/internal/features/courses/models"
	"learnhub/internal/features/courses/services"
)

// PageSize is the number of courses requested per page
const PageSize = 10

const genericFeedError = "We couldn't load courses right now. Please try again."

// PageFetcher loads one page of course summaries
type PageFetcher interface {
	FetchPage(ctx context.Context, page, limit int) (*models.CoursePage, error)
}

// Status is the controller's load state
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Controller owns the carousel state of one visitor: the accumulated course
// list, pagination, the active window and the pause flags. All methods are
// safe for concurrent use. Fetches run outside the lock; the fetching flag
// drops any load requested while one is in flight.
type Controller struct {
	fetcher  PageFetcher
	viewport ViewportProvider
	logger   *core.Logger

	mu               sync.Mutex
	courses          []models.CourseSummary
	pagination       models.Pagination
	lastLoadedPage   int
	fetching         bool
	status           Status
	err              *core.AppError
	index            int
	windowSize       int
	hovering         bool
	touching         bool
	touch            touchTracker
	onScheduleChange func()
}

// NewController creates a controller in the Idle state
func NewController(fetcher PageFetcher, viewport ViewportProvider, logger *core.Logger) *Controller {
	if viewport == nil {
		viewport = NewViewport(DefaultViewportWidth)
	}
	if logger == nil {
		logger = core.NewNopLogger()
	}
	return &Controller{
		fetcher:    fetcher,
		viewport:   viewport,
		logger:     logger,
		windowSize: WindowSize(viewport.Width()),
	}
}

// OnScheduleChange registers fn to run whenever the window count or the
// paused state changes. The auto-advancer uses it to recreate its timer.
func (c *Controller) OnScheduleChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onScheduleChange = fn
}

// Mount resets the controller and loads the first page. It is also the
// only way out of the Error state. Returns false if a load is already in
// flight.
func (c *Controller) Mount(ctx context.Context) bool {
	started := false
	c.mutate(func() {
		if c.fetching {
			return
		}
		c.courses = nil
		c.pagination = models.Pagination{}
		c.lastLoadedPage = 0
		c.err = nil
		c.index = 0
		c.windowSize = WindowSize(c.viewport.Width())
		started = c.beginFetchLocked()
	})
	if !started {
		return false
	}

	c.fetch(ctx, 1)
	return true
}

// Retry remounts the controller after a failed load
func (c *Controller) Retry(ctx context.Context) bool {
	return c.Mount(ctx)
}

// Load fetches page and applies it. Pages newer than the last loaded page
// are appended; any other page replaces the list. Pagination is always
// replaced. Returns false when the call was dropped because another load
// is in flight or page is below 1.
func (c *Controller) Load(ctx context.Context, page int) bool {
	if page < 1 {
		c.logger.Debug("Rejecting course load", "page", page)
		return false
	}

	c.mu.Lock()
	started := c.beginFetchLocked()
	c.mu.Unlock()

	if !started {
		c.logger.Debug("Dropping course load, fetch in progress", "page", page)
		return false
	}

	c.fetch(ctx, page)
	return true
}

func (c *Controller) beginFetchLocked() bool {
	if c.fetching {
		return false
	}
	c.fetching = true
	c.status = StatusLoading
	return true
}

// fetch performs a load claimed by beginFetchLocked
func (c *Controller) fetch(ctx context.Context, page int) {
	result, err := c.fetcher.FetchPage(ctx, page, PageSize)

	c.mutate(func() {
		c.fetching = false

		if err != nil {
			c.status = StatusError
			c.err = core.NewFeedLoadError(feedErrorMessage(err), err)
			return
		}

		// Decided against the last loaded page at completion time
		if page > c.lastLoadedPage {
			c.courses = append(c.courses, result.Courses...)
		} else {
			c.courses = append([]models.CourseSummary(nil), result.Courses...)
		}
		c.pagination = result.Pagination
		c.lastLoadedPage = page
		c.status = StatusReady
		c.err = nil
		c.clampIndexLocked()
	})

	if err != nil {
		c.logger.Warn("Course feed load failed", "page", page, "error", err)
		return
	}

	c.logger.Debug("Course page loaded", "page", page, "courses", len(result.Courses))
	c.prefetch(ctx)
}

// Next moves to the following window
func (c *Controller) Next(ctx context.Context) {
	c.mutate(func() {
		c.index = NextIndex(c.index, c.totalLocked())
	})
	c.prefetch(ctx)
}

// Prev moves to the preceding window
func (c *Controller) Prev(ctx context.Context) {
	c.mutate(func() {
		c.index = PrevIndex(c.index, c.totalLocked())
	})
	c.prefetch(ctx)
}

// Tick applies one auto-advance step. Paused carousels stay put.
func (c *Controller) Tick(ctx context.Context) {
	c.mutate(func() {
		c.index = Tick(c.slideStateLocked()).Index
	})
	c.prefetch(ctx)
}

// Resize recomputes the window size from the viewport provider
func (c *Controller) Resize(ctx context.Context) {
	c.mutate(func() {
		c.windowSize = WindowSize(c.viewport.Width())
		c.clampIndexLocked()
	})
	c.prefetch(ctx)
}

// SetHover pauses or resumes auto-advance on pointer hover
func (c *Controller) SetHover(hovering bool) {
	c.mutate(func() {
		c.hovering = hovering
	})
}

// TouchStart begins a touch at x and pauses auto-advance
func (c *Controller) TouchStart(x float64) {
	c.mutate(func() {
		c.touching = true
		c.touch.start(x)
	})
}

// TouchMove records the latest horizontal touch position
func (c *Controller) TouchMove(x float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch.move(x)
}

// TouchEnd finishes the touch, applies the swipe and resumes auto-advance
func (c *Controller) TouchEnd(ctx context.Context) Swipe {
	var swipe Swipe
	c.mutate(func() {
		c.touching = false
		swipe = c.touch.end()

		total := c.totalLocked()
		switch swipe {
		case SwipeNext:
			c.index = NextIndex(c.index, total)
		case SwipePrev:
			c.index = PrevIndex(c.index, total)
		}
	})

	if swipe != SwipeNone {
		c.prefetch(ctx)
	}
	return swipe
}

// SlideState returns the state the auto-advance timer acts on
func (c *Controller) SlideState() SlideState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slideStateLocked()
}

// Err returns the last load error, or nil
func (c *Controller) Err() *core.AppError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Snapshot is a consistent copy of the controller state
type Snapshot struct {
	Status       Status                 `json:"status"`
	Courses      []models.CourseSummary `json:"courses"`
	Loaded       int                    `json:"loaded"`
	Index        int                    `json:"index"`
	TotalWindows int                    `json:"totalWindows"`
	WindowSize   int                    `json:"windowSize"`
	Pagination   models.Pagination      `json:"pagination"`
	Fetching     bool                   `json:"fetching"`
	Paused       bool                   `json:"paused"`
	Error        string                 `json:"error,omitempty"`
}

// Snapshot returns the current window and state. List and pagination come
// from the same completed fetch.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	window := Window(c.courses, c.index, c.windowSize)
	snap := Snapshot{
		Status:       c.status,
		Courses:      append([]models.CourseSummary{}, window...),
		Loaded:       len(c.courses),
		Index:        c.index,
		TotalWindows: c.totalLocked(),
		WindowSize:   c.windowSize,
		Pagination:   c.pagination,
		Fetching:     c.fetching,
		Paused:       c.pausedLocked(),
	}
	if c.err != nil {
		snap.Error = c.err.Message
	}
	return snap
}

// CurrentWindow returns the courses of the active window
func (c *Controller) CurrentWindow() []models.CourseSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CourseSummary(nil), Window(c.courses, c.index, c.windowSize)...)
}

// Courses returns a copy of the accumulated list
func (c *Controller) Courses() []models.CourseSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CourseSummary(nil), c.courses...)
}

// prefetch loads the next page once the last window is active and the
// feed reports more. A failed load is not retried here.
func (c *Controller) prefetch(ctx context.Context) {
	c.mu.Lock()
	total := c.totalLocked()
	due := total > 0 &&
		c.index == total-1 &&
		c.pagination.HasNextPage &&
		c.status != StatusError &&
		c.beginFetchLocked()
	next := c.pagination.CurrentPage + 1
	c.mu.Unlock()

	if due {
		c.fetch(ctx, next)
	}
}

// mutate runs fn under the lock and fires the schedule hook when the
// window count or paused state moved
func (c *Controller) mutate(fn func()) {
	c.mu.Lock()
	before := c.slideStateLocked()
	fn()
	after := c.slideStateLocked()
	hook := c.onScheduleChange
	c.mu.Unlock()

	if hook != nil && (before.Total != after.Total || before.Paused != after.Paused) {
		hook()
	}
}

func (c *Controller) slideStateLocked() SlideState {
	return SlideState{
		Index:  c.index,
		Total:  c.totalLocked(),
		Paused: c.pausedLocked(),
	}
}

func (c *Controller) totalLocked() int {
	return TotalWindows(len(c.courses), c.windowSize)
}

func (c *Controller) pausedLocked() bool {
	return c.hovering || c.touching
}

func (c *Controller) clampIndexLocked() {
	total := c.totalLocked()
	switch {
	case total == 0:
		c.index = 0
	case c.index >= total:
		c.index = total - 1
	}
}

// feedErrorMessage turns a fetch failure into text fit for visitors
func feedErrorMessage(err error) string {
	var statusErr *services.StatusError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Course service responded with %d %s.",
			statusErr.StatusCode, http.StatusText(statusErr.StatusCode))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Loading courses was interrupted. Please try again."
	default:
		return genericFeedError
	}
}
