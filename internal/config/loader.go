package config

import (
	"context"
	"fmt"

	"github.com/vmvarela/ghoten-ui/internal/domain"
	gh "github.com/vmvarela/ghoten-ui/internal/github"
	"github.com/vmvarela/ghoten-ui/internal/logger"
)

// ContentFetcher is the slice of the repository client the loader needs.
type ContentFetcher interface {
	GetFileContent(ctx context.Context, owner, repo, path string) (string, error)
}

// LoadedProject is a fully resolved project: the descriptor plus every
// workspace that could be loaded.
type LoadedProject struct {
	Project    domain.Project
	Workspaces []domain.Workspace
}

// Loader discovers and loads project descriptors from repositories. It
// holds no state; every returned value is a fresh copy.
type Loader struct {
	client ContentFetcher
}

func NewLoader(client ContentFetcher) *Loader {
	return &Loader{client: client}
}

// DiscoverProjects scans candidate repositories for a valid project
// descriptor. A repository without one is not an error, it is simply
// not a project: fetch, parse, and validation failures all skip the
// repository silently. Input order is preserved and duplicates are
// dropped on first occurrence.
func (l *Loader) DiscoverProjects(ctx context.Context, repos []domain.Repository) []domain.Project {
	seen := make(map[string]bool, len(repos))
	var projects []domain.Project

	for _, repo := range repos {
		key := gh.RepoKey(repo.Owner, repo.Name)
		if seen[key] {
			continue
		}
		seen[key] = true

		content, err := l.client.GetFileContent(ctx, repo.Owner, repo.Name, ProjectConfigPath)
		if err != nil {
			continue
		}

		file, err := ParseProject(content)
		if err != nil {
			logger.Log("Skipping %s: %v", key, err)
			continue
		}
		if err := ValidateProject(file); err != nil {
			logger.Log("Skipping %s: %v", key, err)
			continue
		}

		project := NormalizeProject(file)
		project.Owner = repo.Owner
		project.Repo = repo.Name
		projects = append(projects, project)
	}

	logger.Log("Discovered %d projects across %d repositories", len(projects), len(repos))
	return projects
}

// LoadProject loads one project the caller explicitly asked for, so
// descriptor errors are surfaced. A workspace that fails to load is
// logged and omitted rather than failing the whole project.
func (l *Loader) LoadProject(ctx context.Context, owner, repo string) (*LoadedProject, error) {
	content, err := l.client.GetFileContent(ctx, owner, repo, ProjectConfigPath)
	if err != nil {
		return nil, err
	}

	file, err := ParseProject(content)
	if err != nil {
		return nil, err
	}
	if err := ValidateProject(file); err != nil {
		return nil, fmt.Errorf("%s/%s: %w", owner, repo, err)
	}

	project := NormalizeProject(file)
	project.Owner = owner
	project.Repo = repo

	loaded := &LoadedProject{Project: project}
	for _, name := range project.Workspaces {
		workspace, err := l.loadWorkspace(ctx, owner, repo, name)
		if err != nil {
			logger.LogError("LOAD_WORKSPACE", fmt.Sprintf("%s/%s %s", owner, repo, name), err)
			continue
		}
		loaded.Workspaces = append(loaded.Workspaces, *workspace)
	}

	return loaded, nil
}

func (l *Loader) loadWorkspace(ctx context.Context, owner, repo, name string) (*domain.Workspace, error) {
	content, err := l.client.GetFileContent(ctx, owner, repo, WorkspaceConfigPath(name))
	if err != nil {
		return nil, err
	}

	file, err := ParseWorkspace(content)
	if err != nil {
		return nil, err
	}
	if err := ValidateWorkspace(file); err != nil {
		return nil, err
	}

	workspace := NormalizeWorkspace(file)
	return &workspace, nil
}
