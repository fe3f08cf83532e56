package validation

import "strings"

// lowEffortTokens are answers that signal the candidate is not engaging
// with the question. Matched case-insensitively after trimming.
var lowEffortTokens = map[string]bool{
	"asdf":     true,
	"asdfasdf": true,
	"qwerty":   true,
	"idk":      true,
	"idc":      true,
	"dunno":    true,
	"lol":      true,
	"lmao":     true,
	"haha":     true,
	"test":     true,
	"testing":  true,
	"na":       true,
	"n/a":      true,
	"none":     true,
	"nothing":  true,
	"no":       true,
	"yes":      true,
	"ok":       true,
	"...":      true,
	"???":      true,
	"xxx":      true,
}

// isLowEffort reports whether the trimmed answer matches a known garbage
// pattern: a listed token, a purely numeric placeholder, or a single
// character repeated throughout. allowNumeric exempts all-digit strings,
// which are legitimate in the phone context.
func isLowEffort(trimmed string, allowNumeric bool) bool {
	lower := strings.ToLower(trimmed)
	if lowEffortTokens[lower] {
		return true
	}
	if !allowNumeric && isPurelyNumeric(lower) {
		return true
	}
	return isRepeatedRune(lower)
}

func isPurelyNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isRepeatedRune(s string) bool {
	runes := []rune(s)
	if len(runes) < 3 {
		return false
	}
	first := runes[0]
	for _, r := range runes[1:] {
		if r != first {
			return false
		}
	}
	return true
}
