package bot

import "regexp"

// Match reports whether text satisfies the question's response pattern.
// The pattern is applied case-insensitively, multi-line and unanchored, so
// a match anywhere in the message counts. An empty pattern or message
// never matches, and a pattern that fails to compile matches nothing.
func Match(pattern, text string) bool {
	if pattern == "" || text == "" {
		return false
	}

	re, err := regexp.Compile("(?im)(" + pattern + ")")
	if err != nil {
		return false
	}

	return re.MatchString(text)
}
