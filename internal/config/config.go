package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vmvarela/ghoten-ui/internal/domain"
)

const (
	// ProjectConfigPath is the fixed descriptor location marking a
	// repository as a ghoten project.
	ProjectConfigPath = ".ghoten/project.yaml"

	workspaceConfigDir = ".ghoten/workspaces"

	defaultEnvironment = "development"
)

var (
	ErrInvalidProject   = errors.New("invalid project config: non-empty name and a workspaces list are required")
	ErrInvalidWorkspace = errors.New("invalid workspace config: non-empty name is required")
)

// WorkspaceConfigPath returns the descriptor path for a declared
// workspace name.
func WorkspaceConfigPath(name string) string {
	return workspaceConfigDir + "/" + name + ".yaml"
}

// ProjectFile is the raw parsed shape of a project descriptor. The
// workspaces field stays a pointer so validation can tell a missing
// list from an empty one; normalization happens only after validation.
type ProjectFile struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Workspaces  *[]string         `yaml:"workspaces"`
	Backend     map[string]string `yaml:"backend"`
	Variables   map[string]string `yaml:"variables"`
}

type WorkspaceFile struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Variables   map[string]string `yaml:"variables"`
	Backend     map[string]string `yaml:"backend"`
	Environment string            `yaml:"environment"`
}

func ParseProject(content string) (*ProjectFile, error) {
	var file ProjectFile
	if err := yaml.Unmarshal([]byte(content), &file); err != nil {
		return nil, fmt.Errorf("failed to parse project config: %w", err)
	}
	return &file, nil
}

func ParseWorkspace(content string) (*WorkspaceFile, error) {
	var file WorkspaceFile
	if err := yaml.Unmarshal([]byte(content), &file); err != nil {
		return nil, fmt.Errorf("failed to parse workspace config: %w", err)
	}
	return &file, nil
}

// ValidateProject accepts a descriptor iff it has a non-empty name and
// a workspaces list, empty or not.
func ValidateProject(file *ProjectFile) error {
	if file.Name == "" || file.Workspaces == nil {
		return ErrInvalidProject
	}
	return nil
}

func ValidateWorkspace(file *WorkspaceFile) error {
	if file.Name == "" {
		return ErrInvalidWorkspace
	}
	return nil
}

// NormalizeProject applies documented defaults and returns a fresh,
// caller-owned value.
func NormalizeProject(file *ProjectFile) domain.Project {
	workspaces := []string{}
	if file.Workspaces != nil {
		workspaces = append(workspaces, *file.Workspaces...)
	}

	return domain.Project{
		Name:        file.Name,
		Description: file.Description,
		Workspaces:  workspaces,
		Backend:     copyMap(file.Backend),
		Variables:   copyMap(file.Variables),
	}
}

func NormalizeWorkspace(file *WorkspaceFile) domain.Workspace {
	environment := file.Environment
	if environment == "" {
		environment = defaultEnvironment
	}

	return domain.Workspace{
		Name:        file.Name,
		Description: file.Description,
		Variables:   copyMap(file.Variables),
		Backend:     copyMap(file.Backend),
		Environment: environment,
	}
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
