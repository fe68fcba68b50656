package question

import (
	"fmt"
	"strconv"

	"trivia-quiz-service/internal/dataset"
	"trivia-quiz-service/internal/domain"
)

// DefaultOptionCount matches the four-button layout of the quiz page.
const DefaultOptionCount = 4

// GenerateFunc produces a question from the given random source.
type GenerateFunc func(rnd Rand) domain.Question

// Sum asks for the sum of two integers in [0,10). Free text only.
func Sum() GenerateFunc {
	return func(rnd Rand) domain.Question {
		a, b := rnd.Intn(10), rnd.Intn(10)
		return domain.Question{
			Prompt: fmt.Sprintf("%d + %d = ?", a, b),
			Answer: strconv.Itoa(a + b),
		}
	}
}

// CapitalOf asks for the capital of a named country.
func CapitalOf(countries dataset.Countries, optionCount int) GenerateFunc {
	capitals := countries.Capitals()
	return func(rnd Rand) domain.Question {
		c := countries[rnd.Intn(len(countries))]
		return domain.Question{
			Prompt:  fmt.Sprintf("Capital of %s?", c.Name),
			Answer:  c.Capital,
			Options: PickOptions(rnd, c.Capital, capitals, optionCount),
		}
	}
}

// FlagIdentify shows a flag and asks for the country name.
func FlagIdentify(countries dataset.Countries, optionCount int) GenerateFunc {
	names := countries.Names()
	return func(rnd Rand) domain.Question {
		c := countries[rnd.Intn(len(countries))]
		return domain.Question{
			Prompt:    "What country is this?",
			Answer:    c.Name,
			VisualCue: c.Flag(),
			Options:   PickOptions(rnd, c.Name, names, optionCount),
		}
	}
}

// FlagToCapital shows a flag and asks for that country's capital.
func FlagToCapital(countries dataset.Countries, optionCount int) GenerateFunc {
	capitals := countries.Capitals()
	return func(rnd Rand) domain.Question {
		c := countries[rnd.Intn(len(countries))]
		return domain.Question{
			Prompt:    "What is the capital of this country?",
			Answer:    c.Capital,
			VisualCue: c.Flag(),
			Options:   PickOptions(rnd, c.Capital, capitals, optionCount),
		}
	}
}
