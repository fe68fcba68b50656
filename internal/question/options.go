package question

// PickOptions builds a multiple-choice list containing answer exactly once plus
// up to count-1 distinct distractors drawn from universe. Both shuffles are
// Fisher-Yates, so every ordering of the result is equally likely. When the
// universe is too small the list is shorter; it is never padded.
func PickOptions(rnd Rand, answer string, universe []string, count int) []string {
	if count <= 0 {
		return nil
	}

	seen := map[string]struct{}{answer: {}}
	distractors := make([]string, 0, len(universe))
	for _, candidate := range universe {
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		distractors = append(distractors, candidate)
	}
	shuffle(rnd, distractors)

	if n := count - 1; len(distractors) > n {
		distractors = distractors[:n]
	}
	options := append([]string{answer}, distractors...)
	shuffle(rnd, options)
	return options
}

func shuffle(rnd Rand, items []string) {
	rnd.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}
