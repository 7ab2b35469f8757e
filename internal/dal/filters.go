package dal

import "strings"

func toLowerPattern(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
