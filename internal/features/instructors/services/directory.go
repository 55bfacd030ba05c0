package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"learnhub/internal/core"
	"learnhub/internal/features/instructors/models"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Directory is an in-memory, read-only instructor directory
type Directory struct {
	logger      *core.Logger
	instructors []models.Instructor
	byID        map[string]int
	// folded search text per instructor, same order as instructors
	haystacks []string
}

// NewDirectory decodes and validates a JSON array of instructors
func NewDirectory(logger *core.Logger, raw []byte) (*Directory, error) {
	var instructors []models.Instructor
	if err := json.Unmarshal(raw, &instructors); err != nil {
		return nil, fmt.Errorf("failed to parse instructor data: %w", err)
	}

	validate := validator.New()
	byID := make(map[string]int, len(instructors))
	for i := range instructors {
		if err := validate.Struct(&instructors[i]); err != nil {
			return nil, fmt.Errorf("invalid instructor at index %d: %w", i, err)
		}
		if _, dup := byID[instructors[i].ID]; dup {
			return nil, fmt.Errorf("duplicate instructor id %q", instructors[i].ID)
		}
		byID[instructors[i].ID] = i
	}

	sort.SliceStable(instructors, func(i, j int) bool {
		return Fold(instructors[i].Name) < Fold(instructors[j].Name)
	})

	d := &Directory{
		logger:      logger,
		instructors: instructors,
		byID:        make(map[string]int, len(instructors)),
		haystacks:   make([]string, len(instructors)),
	}
	for i, in := range instructors {
		d.byID[in.ID] = i
		d.haystacks[i] = Fold(in.Name + " " + in.Title + " " + strings.Join(in.Specialties, " "))
	}

	logger.Debug("Instructor directory loaded", "instructors", len(instructors))
	return d, nil
}

// All returns every instructor ordered by name
func (d *Directory) All() []models.Instructor {
	return append([]models.Instructor(nil), d.instructors...)
}

// Len returns the number of instructors
func (d *Directory) Len() int {
	return len(d.instructors)
}

// Get returns the instructor with id
func (d *Directory) Get(id string) (models.Instructor, error) {
	i, ok := d.byID[id]
	if !ok {
		return models.Instructor{}, core.NewNotFoundError(fmt.Sprintf("instructor %q not found", id), nil)
	}
	return d.instructors[i], nil
}

// Search returns instructors whose name, title or specialties contain
// every term of query, ignoring case and accents. An empty query matches
// everyone.
func (d *Directory) Search(query string) models.SearchResult {
	terms := strings.Fields(Fold(query))

	matches := []models.Instructor{}
	for i, haystack := range d.haystacks {
		if containsAll(haystack, terms) {
			matches = append(matches, d.instructors[i])
		}
	}

	return models.SearchResult{
		Query:       strings.TrimSpace(query),
		Total:       len(matches),
		Instructors: matches,
	}
}

func containsAll(haystack string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

// Fold lower-cases s and strips combining marks, so "Zoë" matches "zoe"
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())
	folded, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}
