// Package question generates quiz questions from pluggable categories.
package question

import (
	"fmt"

	"trivia-quiz-service/internal/dataset"
	"trivia-quiz-service/internal/domain"
)

// Category titles of the built-in registry.
const (
	TitleSum           = "Sum"
	TitleFlagToCapital = "Flag to capital"
	TitleFlag          = "Flag"
	TitleCapital       = "Capital"
)

// Category is a titled, toggleable question generator.
type Category struct {
	Title    string
	Enabled  bool
	Generate GenerateFunc
}

// Registry is an immutable ordered set of categories. Toggling returns a new
// Registry; values already handed out never change.
type Registry struct {
	categories []Category
}

// NewRegistry copies cats into a registry, preserving order.
func NewRegistry(cats ...Category) Registry {
	return Registry{categories: append([]Category(nil), cats...)}
}

// Defaults builds the four built-in categories, all enabled.
func Defaults(countries dataset.Countries, optionCount int) Registry {
	if optionCount <= 0 {
		optionCount = DefaultOptionCount
	}
	return NewRegistry(
		Category{Title: TitleSum, Enabled: true, Generate: Sum()},
		Category{Title: TitleFlagToCapital, Enabled: true, Generate: FlagToCapital(countries, optionCount)},
		Category{Title: TitleFlag, Enabled: true, Generate: FlagIdentify(countries, optionCount)},
		Category{Title: TitleCapital, Enabled: true, Generate: CapitalOf(countries, optionCount)},
	)
}

// Categories returns a copy of every category in registry order.
func (r Registry) Categories() []Category {
	return append([]Category(nil), r.categories...)
}

// States returns title/enabled pairs for display.
func (r Registry) States() []domain.CategoryState {
	out := make([]domain.CategoryState, len(r.categories))
	for i, c := range r.categories {
		out[i] = domain.CategoryState{Title: c.Title, Enabled: c.Enabled}
	}
	return out
}

// Enabled returns the enabled categories in registry order.
func (r Registry) Enabled() []Category {
	var out []Category
	for _, c := range r.categories {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out
}

// SetEnabled returns a registry with the named category toggled.
func (r Registry) SetEnabled(title string, enabled bool) (Registry, error) {
	next := r.Categories()
	for i := range next {
		if next[i].Title == title {
			next[i].Enabled = enabled
			return Registry{categories: next}, nil
		}
	}
	return r, fmt.Errorf("%w: %q", domain.ErrCategoryNotFound, title)
}

// Generate draws uniformly from the enabled categories and runs its generator.
func (r Registry) Generate(rnd Rand) (domain.Question, error) {
	enabled := r.Enabled()
	if len(enabled) == 0 {
		return domain.Question{}, domain.ErrEmptyCategorySet
	}
	return enabled[rnd.Intn(len(enabled))].Generate(rnd), nil
}

// Fallback is the category used when the caller cannot satisfy the
// non-empty precondition: the first registered one, regardless of its flag.
func (r Registry) Fallback() (Category, bool) {
	if len(r.categories) == 0 {
		return Category{}, false
	}
	return r.categories[0], true
}
