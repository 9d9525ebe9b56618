package dialogue

// ClosestMatch returns the vocabulary phrase nearest to input by edit
// distance. Ties go to the phrase declared first. It reports false when
// the vocabulary is empty or the nearest phrase is further than tolerance.
func ClosestMatch(input string, vocabulary []string, tolerance int) (string, bool) {
	best := -1
	var closest string

	for _, phrase := range vocabulary {
		d := Distance(input, phrase)
		if best < 0 || d < best {
			best = d
			closest = phrase
		}
	}

	if best < 0 || best > tolerance {
		return "", false
	}
	return closest, true
}
