package models

// Instructor is one entry of the instructor directory
type Instructor struct {
	ID          string       `json:"id" validate:"required"`
	Name        string       `json:"name" validate:"required"`
	Title       string       `json:"title"`
	Bio         string       `json:"bio"`
	Image       string       `json:"image"`
	Specialties []string     `json:"specialties"`
	CourseCount int          `json:"courseCount" validate:"gte=0"`
	Rating      float64      `json:"rating" validate:"gte=0,lte=5"`
	Social      []SocialLink `json:"social,omitempty" validate:"dive"`
}

// SocialLink points to an instructor's profile elsewhere
type SocialLink struct {
	Network string `json:"network" validate:"required"`
	URL     string `json:"url" validate:"required,url"`
}

// SearchResult is the response of a directory search
type SearchResult struct {
	Query       string       `json:"query"`
	Total       int          `json:"total"`
	Instructors []Instructor `json:"instructors"`
}
