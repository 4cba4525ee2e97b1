// Package mentions resolves @name tokens in free text to user ids.
package mentions

import (
	"regexp"
	"strings"

	"github.com/chirpnet/backend/internal/models"
)

var mentionPattern = regexp.MustCompile(`@(\w+)`)

// UserFinder looks up a user by username or display name, case-insensitively.
type UserFinder interface {
	FindByUsernameOrName(name string) (*models.User, error)
}

// Resolve scans content for @<word> tokens and collects the ids of users
// whose username or display name matches the lowercased token. Results are
// deduplicated in order of first appearance. Tokens that match no user are
// dropped, and nil is returned when nothing resolves so the stored column
// stays NULL rather than becoming an empty list.
func Resolve(content string, finder UserFinder) []uint {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	var ids []uint
	seen := make(map[uint]bool)
	for _, m := range matches {
		user, err := finder.FindByUsernameOrName(strings.ToLower(m[1]))
		if err != nil || user == nil {
			continue
		}
		if !seen[user.ID] {
			seen[user.ID] = true
			ids = append(ids, user.ID)
		}
	}
	return ids
}
