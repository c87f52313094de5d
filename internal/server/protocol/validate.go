package protocol

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// validateParams checks that every required field is present and non-blank,
// then applies format rules to email and username when those keys appear.
// Returns the protocol-facing error message, or "" when everything is valid.
func validateParams(params map[string]any, required ...string) string {
	for _, field := range required {
		v, ok := params[field]
		if !ok {
			return "Missing required field: " + field
		}
		if v == nil || strings.TrimSpace(fmt.Sprint(v)) == "" {
			return "Field cannot be empty: " + field
		}
	}

	if raw, ok := params["email"]; ok {
		if !emailPattern.MatchString(strings.TrimSpace(fmt.Sprint(raw))) {
			return "Invalid email format"
		}
	}

	if raw, ok := params["username"]; ok {
		username := strings.TrimSpace(fmt.Sprint(raw))
		if len(username) < 3 {
			return "Username must be at least 3 characters"
		}
		if !usernamePattern.MatchString(username) {
			return "Username can only contain letters, numbers, and underscores"
		}
	}

	return ""
}

var (
	sqlKeywordPattern = regexp.MustCompile(`(?i)\b(DROP|DELETE|INSERT|UPDATE|SELECT|UNION)\b`)
	sqlPunctuation    = []string{"--", "/*", "*/", "@@", "@"}
	escapedChars      = regexp.MustCompile(`[;'"\\\x00]`)
)

// sanitize strips a fixed blocklist of SQL keywords and punctuation from
// free text headed for persistence. Defense in depth only; the repositories
// use parameterized queries regardless.
func sanitize(s string) string {
	out := sqlKeywordPattern.ReplaceAllString(s, "")
	for _, p := range sqlPunctuation {
		out = strings.ReplaceAll(out, p, "")
	}
	out = escapedChars.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}
