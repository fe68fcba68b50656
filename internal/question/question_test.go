package question

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"trivia-quiz-service/internal/dataset"
	"trivia-quiz-service/internal/domain"
)

// scriptedRand returns queued Intn values and leaves shuffles untouched.
type scriptedRand struct {
	ints []int
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Shuffle(int, func(i, j int)) {}

func france() dataset.Countries {
	return dataset.Countries{{Name: "France", Capital: "Paris", Code: "FR"}}
}

func TestSumPrompt(t *testing.T) {
	q := Sum()(&scriptedRand{ints: []int{3, 4}})
	if q.Prompt != "3 + 4 = ?" || q.Answer != "7" {
		t.Fatalf("unexpected question %+v", q)
	}
	if q.Options != nil || q.VisualCue != "" {
		t.Fatalf("sum questions are free text, got %+v", q)
	}
}

func TestCapitalOfFrance(t *testing.T) {
	q := CapitalOf(france(), 4)(NewRand(1))
	if q.Prompt != "Capital of France?" || q.Answer != "Paris" {
		t.Fatalf("unexpected question %+v", q)
	}
	if len(q.Options) != 1 || q.Options[0] != "Paris" {
		t.Fatalf("expected single option without padding, got %v", q.Options)
	}
}

func TestFlagGenerators(t *testing.T) {
	cs := dataset.Countries{
		{Name: "France", Capital: "Paris", Code: "FR"},
		{Name: "Spain", Capital: "Madrid", Code: "ES"},
	}
	q := FlagIdentify(cs, 4)(&scriptedRand{ints: []int{1}})
	if q.Answer != "Spain" || q.VisualCue != "🇪🇸" || q.Prompt != "What country is this?" {
		t.Fatalf("unexpected flag question %+v", q)
	}
	q = FlagToCapital(cs, 4)(&scriptedRand{ints: []int{0}})
	if q.Answer != "Paris" || q.VisualCue != "🇫🇷" || q.Prompt != "What is the capital of this country?" {
		t.Fatalf("unexpected flag-to-capital question %+v", q)
	}
}

func TestPickOptionsSizeAndUniqueness(t *testing.T) {
	universe := []string{"a", "b", "c", "d", "e", "f"}
	rnd := NewRand(42)
	for count := 0; count <= 9; count++ {
		for u := 1; u <= len(universe); u++ {
			opts := PickOptions(rnd, "a", universe[:u], count)
			want := count
			if u < want {
				want = u
			}
			if len(opts) != want {
				t.Fatalf("count=%d u=%d: expected %d options, got %v", count, u, want, opts)
			}
			if count == 0 {
				continue
			}
			seen := map[string]bool{}
			answers := 0
			for _, o := range opts {
				if seen[o] {
					t.Fatalf("duplicate option %q in %v", o, opts)
				}
				seen[o] = true
				if o == "a" {
					answers++
				}
			}
			if answers != 1 {
				t.Fatalf("expected answer exactly once, got %v", opts)
			}
		}
	}
}

func TestPickOptionsDeduplicatesUniverse(t *testing.T) {
	opts := PickOptions(NewRand(7), "x", []string{"x", "y", "y", "x", "z"}, 10)
	if len(opts) != 3 {
		t.Fatalf("expected 3 distinct options, got %v", opts)
	}
}

func TestPickOptionsUniformOrdering(t *testing.T) {
	rnd := rand.New(rand.NewSource(99))
	const trials = 60000
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		counts[strings.Join(PickOptions(rnd, "a", []string{"a", "b", "c"}, 3), "")]++
	}
	if len(counts) != 6 {
		t.Fatalf("expected all 6 orderings, got %v", counts)
	}
	for ordering, n := range counts {
		if n < 9000 || n > 11000 {
			t.Fatalf("ordering %s drawn %d times out of %d, distribution not uniform: %v", ordering, n, trials, counts)
		}
	}
}

func TestPickOptionsAnswerPositionUniform(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	universe := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	const trials = 40000
	var positions [4]int
	for i := 0; i < trials; i++ {
		for pos, o := range PickOptions(rnd, "a", universe, 4) {
			if o == "a" {
				positions[pos]++
			}
		}
	}
	for pos, n := range positions {
		if n < 9000 || n > 11000 {
			t.Fatalf("answer at position %d %d times, want about %d: %v", pos, n, trials/4, positions)
		}
	}
}

func TestRegistryGenerateOnlyEnabled(t *testing.T) {
	cs, err := dataset.Load()
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	base := Defaults(cs, 4)
	rnd := NewRand(3)

	titles := []string{TitleSum, TitleFlagToCapital, TitleFlag, TitleCapital}
	// every non-empty subset
	for mask := 1; mask < 1<<len(titles); mask++ {
		reg := base
		for i, title := range titles {
			reg, err = reg.SetEnabled(title, mask&(1<<i) != 0)
			if err != nil {
				t.Fatalf("toggle %s: %v", title, err)
			}
		}
		for i := 0; i < 50; i++ {
			q, err := reg.Generate(rnd)
			if err != nil {
				t.Fatalf("mask %b: generate: %v", mask, err)
			}
			if q.Answer == "" {
				t.Fatalf("mask %b: empty canonical answer in %+v", mask, q)
			}
			if q.Options == nil {
				if mask&1 == 0 {
					t.Fatalf("mask %b: free-text question from a disabled sum category: %+v", mask, q)
				}
				continue
			}
			n := 0
			for _, o := range q.Options {
				if o == q.Answer {
					n++
				}
			}
			if n != 1 || len(q.Options) != 4 {
				t.Fatalf("mask %b: bad options %v for %q", mask, q.Options, q.Answer)
			}
		}
	}
}

func TestRegistryEmptySet(t *testing.T) {
	reg := NewRegistry(Category{Title: TitleSum, Enabled: false, Generate: Sum()})
	if _, err := reg.Generate(NewRand(1)); !errors.Is(err, domain.ErrEmptyCategorySet) {
		t.Fatalf("expected ErrEmptyCategorySet, got %v", err)
	}
	fb, ok := reg.Fallback()
	if !ok || fb.Title != TitleSum {
		t.Fatalf("expected sum fallback, got %+v", fb)
	}
	if _, ok := NewRegistry().Fallback(); ok {
		t.Fatalf("empty registry has no fallback")
	}
}

func TestRegistryToggleIsCopy(t *testing.T) {
	before := Defaults(france(), 4)
	after, err := before.SetEnabled(TitleFlag, false)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(before.Enabled()) != 4 {
		t.Fatalf("toggle mutated the previous registry: %+v", before.States())
	}
	if len(after.Enabled()) != 3 {
		t.Fatalf("expected 3 enabled categories, got %+v", after.States())
	}
	if _, err := before.SetEnabled("Nope", true); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
