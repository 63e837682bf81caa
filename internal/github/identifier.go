package github

import (
	"fmt"
	"strings"
)

// ParseRepoKey splits an "owner/repo" key into its parts.
func ParseRepoKey(key string) (owner, repo string, err error) {
	parts := strings.Split(key, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: expected 'owner/repo', got '%s'", ErrInvalidRepoFormat, key)
	}
	return parts[0], parts[1], nil
}

// RepoKey builds the canonical lowercase "owner/repo" key used for
// cache entries and discovery de-duplication.
func RepoKey(owner, repo string) string {
	return strings.ToLower(owner + "/" + repo)
}
