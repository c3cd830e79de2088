// Package catalog holds query helpers shared by the read-mostly reference
// tables (crops, pests, schemes, market prices).
package catalog

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains builds a LIKE pattern matching s anywhere, lowercased. Use it
// with "LOWER(col) LIKE ? ESCAPE '\'".
func Contains(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}
