package pdfingest

import "strings"

// Snippets finds case-insensitive occurrences of term in text. It
// returns the total occurrence count and up to maxShow context
// excerpts, each covering about radius characters on either side of
// the match with runs of whitespace collapsed to single spaces.
func Snippets(text, term string, maxShow, radius int) (int, []string) {
	if text == "" || term == "" {
		return 0, nil
	}
	lower := strings.ToLower(text)
	needle := strings.ToLower(term)

	var snips []string
	count := 0
	for start := 0; ; {
		pos := strings.Index(lower[start:], needle)
		if pos < 0 {
			break
		}
		pos += start
		count++
		if len(snips) < maxShow {
			snips = append(snips, excerpt(text, pos, len(needle), radius))
		}
		start = pos + 1
	}
	return count, snips
}

func excerpt(text string, pos, termLen, radius int) string {
	lo := max(0, pos-radius)
	hi := min(len(text), pos+termLen+radius)
	return strings.Join(strings.Fields(text[lo:hi]), " ")
}
