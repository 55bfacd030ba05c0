package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// Price formats a course price; zero is shown as Free
func Price(p float64) string {
	if p == 0 {
		return "Free"
	}
	return fmt.Sprintf("$%.2f", p)
}

// Hours trims a trailing .0 from whole hours
func Hours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// Count formats large counts compactly, e.g. 1.2k
func Count(n int) string {
	if n < 1000 {
		return strconv.Itoa(n)
	}
	s := strconv.FormatFloat(float64(n)/1000, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + "k"
}

// Plural picks the singular or plural noun for n
func Plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
