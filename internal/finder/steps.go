package finder

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// SplitInstructions turns the upstream instructions markup into display
// steps. Tags are replaced by spaces, then the text is cut after a '.',
// '?' or '!' that is followed by whitespace and an uppercase letter.
// Empty fragments are dropped. This is a display heuristic, not a
// sentence parser.
func SplitInstructions(raw string) []string {
	text := tagPattern.ReplaceAllString(raw, " ")

	var steps []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if r != '.' && r != '?' && r != '!' {
			continue
		}

		j := i
		for j < len(text) {
			ws, wsSize := utf8.DecodeRuneInString(text[j:])
			if !unicode.IsSpace(ws) {
				break
			}
			j += wsSize
		}
		if j == i || j == len(text) {
			continue
		}
		if next, _ := utf8.DecodeRuneInString(text[j:]); !unicode.IsUpper(next) {
			continue
		}

		steps = appendStep(steps, text[start:i])
		start = j
		i = j
	}
	return appendStep(steps, text[start:])
}

func appendStep(steps []string, fragment string) []string {
	if step := strings.TrimSpace(fragment); step != "" {
		return append(steps, step)
	}
	return steps
}

// NumberSteps prefixes each step with its 1-based position: "1. Boil water.".
func NumberSteps(steps []string) []string {
	numbered := make([]string, len(steps))
	for i, step := range steps {
		numbered[i] = strconv.Itoa(i+1) + ". " + step
	}
	return numbered
}
