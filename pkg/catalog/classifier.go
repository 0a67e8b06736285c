package catalog

import "strings"

// Classify maps free-text strategy input to a mechanism by counting how many
// distinct trigger substrings of each mechanism occur in the input,
// case-insensitively. The mechanism with the strictly highest count wins;
// ties and the zero-match case resolve to DefaultMechanism.
//
// Pure function: no I/O, no randomness, identical input yields identical
// output.
func Classify(text string) Mechanism {
	lower := strings.ToLower(text)

	best := DefaultMechanism
	bestCount := 0
	tied := false
	for _, m := range All() {
		count := 0
		for _, trigger := range m.triggers() {
			if strings.Contains(lower, trigger) {
				count++
			}
		}
		switch {
		case count > bestCount:
			bestCount = count
			best = m
			tied = false
		case count == bestCount && count > 0:
			tied = true
		}
	}
	if bestCount == 0 || tied {
		return DefaultMechanism
	}
	return best
}
