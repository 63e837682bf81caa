package ghcr

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidStatePath = errors.New("invalid GHCR state path format")

	statePathPattern = regexp.MustCompile(`^ghcr\.io/([^/]+)/tf-state\.([^:]+):(.+)$`)
	unsafeChars      = regexp.MustCompile(`[^a-z0-9-]`)
)

// StatePath identifies one workspace's Terraform state artifact in the
// GitHub container registry.
type StatePath struct {
	Org       string
	Repo      string
	Workspace string
}

// BuildStatePath renders the ghcr.io/{org}/tf-state.{repo}:{workspace}
// reference, lowercasing and sanitizing name segments to valid OCI
// reference characters.
func BuildStatePath(org, repo, workspace string) string {
	safeRepo := unsafeChars.ReplaceAllString(strings.ToLower(repo), "-")
	safeWorkspace := unsafeChars.ReplaceAllString(strings.ToLower(workspace), "-")
	return "ghcr.io/" + org + "/tf-state." + safeRepo + ":" + safeWorkspace
}

// ParseStatePath splits a state reference into its components.
func ParseStatePath(path string) (StatePath, error) {
	m := statePathPattern.FindStringSubmatch(path)
	if m == nil {
		return StatePath{}, ErrInvalidStatePath
	}

	return StatePath{Org: m[1], Repo: m[2], Workspace: m[3]}, nil
}

// RegistryURL returns the registry endpoint for a state path, or empty
// if the path is not a ghcr.io reference.
func RegistryURL(path string) string {
	if strings.HasPrefix(path, "ghcr.io/") {
		return "https://ghcr.io"
	}
	return ""
}
