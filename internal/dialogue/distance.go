// Package dialogue implements the chat assistant: edit-distance phrase
// matching, the reply policy and the conversation session that reveals
// bot replies one character at a time.
package dialogue

// Distance returns the Levenshtein distance between a and b: the minimum
// number of single-rune insertions, deletions and substitutions that turn
// a into b.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	// table[i][j] is the distance between rb[:i] and ra[:j].
	table := make([][]int, len(rb)+1)
	for i := range table {
		table[i] = make([]int, len(ra)+1)
		table[i][0] = i
	}
	for j := range table[0] {
		table[0][j] = j
	}

	for i := 1; i <= len(rb); i++ {
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				table[i][j] = table[i-1][j-1]
				continue
			}
			table[i][j] = 1 + min(table[i-1][j-1], table[i][j-1], table[i-1][j])
		}
	}

	return table[len(rb)][len(ra)]
}
