package models

import (
	"encoding/json"
	"strconv"
)

// CourseSummary is one card of the course carousel as returned by the
// course-summary API. Values are never modified after decoding.
type CourseSummary struct {
	ID             CourseID `json:"id" validate:"required"`
	Title          string   `json:"title" validate:"required"`
	Image          string   `json:"image"`
	StudentsCount  int      `json:"studentsCount" validate:"gte=0"`
	TeachersCount  int      `json:"teachersCount" validate:"gte=0"`
	TotalHours     float64  `json:"totalHours" validate:"gte=0"`
	InstructorName string   `json:"instructorName"`
	Category       string   `json:"category"`
	Price          float64  `json:"price" validate:"gte=0"`
}

// CourseID accepts both string and numeric identifiers:
// - "c-42"
// - 42
type CourseID string

func (id *CourseID) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = CourseID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*id = CourseID(n.String())
	return nil
}

// IsFree reports whether the course costs nothing
func (c CourseSummary) IsFree() bool {
	return c.Price == 0
}

// Pagination describes where a page sits in the full catalogue. It is
// replaced wholesale by every successful fetch.
type Pagination struct {
	CurrentPage  int  `json:"currentPage" validate:"gte=1"`
	ItemsPerPage int  `json:"itemsPerPage" validate:"gte=0"`
	TotalItems   int  `json:"totalItems" validate:"gte=0"`
	TotalPages   int  `json:"totalPages" validate:"gte=0"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// CoursePage is one decoded page of the course feed
type CoursePage struct {
	Courses    []CourseSummary `json:"courses" validate:"dive"`
	Pagination Pagination      `json:"pagination"`
}

// SummaryResponse is the envelope of GET /courses/summary
type SummaryResponse struct {
	Status string     `json:"status"`
	Data   CoursePage `json:"data"`
}

// FetcherConfig holds configuration for the summary client
type FetcherConfig struct {
	BaseURL   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
}
