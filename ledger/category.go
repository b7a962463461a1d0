package ledger

import "fmt"

// Category is one of the closed set of question categories that carry a
// per-user correct-answer counter.
type Category string

const (
	CategoryAptitude  Category = "aptitude"
	CategoryTechnical Category = "technical"
	CategoryHR        Category = "hr"
)

var Categories = []Category{CategoryAptitude, CategoryTechnical, CategoryHR}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Stats maps every category to its counter.
type Stats map[Category]int

func NewStats() Stats {
	stats := make(Stats, len(Categories))
	for _, c := range Categories {
		stats[c] = 0
	}
	return stats
}
