package config

import (
	"errors"
	"testing"
)

func TestParseAndValidateProject(t *testing.T) {
	content := `
name: network-infra
description: Shared VPC configuration
workspaces:
  - production
  - staging
backend:
  type: ghcr
variables:
  region: us-east-1
`

	file, err := ParseProject(content)
	if err != nil {
		t.Fatalf("ParseProject() error = %v", err)
	}
	if err := ValidateProject(file); err != nil {
		t.Fatalf("ValidateProject() error = %v", err)
	}

	project := NormalizeProject(file)
	if project.Name != "network-infra" {
		t.Errorf("Name = %q, want network-infra", project.Name)
	}
	if len(project.Workspaces) != 2 || project.Workspaces[0] != "production" {
		t.Errorf("Workspaces = %v, want [production staging]", project.Workspaces)
	}
	if project.Backend["type"] != "ghcr" {
		t.Errorf("Backend = %v, want type ghcr", project.Backend)
	}
	if project.Variables["region"] != "us-east-1" {
		t.Errorf("Variables = %v, want region us-east-1", project.Variables)
	}
}

func TestValidateProjectRequiresWorkspacesField(t *testing.T) {
	file, err := ParseProject("name: x\n")
	if err != nil {
		t.Fatalf("ParseProject() error = %v", err)
	}

	if err := ValidateProject(file); !errors.Is(err, ErrInvalidProject) {
		t.Errorf("ValidateProject() error = %v, want ErrInvalidProject", err)
	}
}

func TestValidateProjectAcceptsEmptyWorkspaces(t *testing.T) {
	file, err := ParseProject("name: x\nworkspaces: []\n")
	if err != nil {
		t.Fatalf("ParseProject() error = %v", err)
	}

	if err := ValidateProject(file); err != nil {
		t.Errorf("ValidateProject() error = %v, want nil", err)
	}
}

func TestValidateProjectRequiresName(t *testing.T) {
	file, err := ParseProject("workspaces: [a]\n")
	if err != nil {
		t.Fatalf("ParseProject() error = %v", err)
	}

	if err := ValidateProject(file); !errors.Is(err, ErrInvalidProject) {
		t.Errorf("ValidateProject() error = %v, want ErrInvalidProject", err)
	}
}

func TestParseProjectMalformed(t *testing.T) {
	if _, err := ParseProject("name: [unclosed\n  nonsense: {"); err == nil {
		t.Error("ParseProject() error = nil for malformed YAML, want error")
	}
}

func TestNormalizeProjectDefaults(t *testing.T) {
	file, err := ParseProject("name: bare\nworkspaces: []\n")
	if err != nil {
		t.Fatalf("ParseProject() error = %v", err)
	}

	project := NormalizeProject(file)
	if project.Description != "" {
		t.Errorf("Description = %q, want empty", project.Description)
	}
	if project.Backend == nil || len(project.Backend) != 0 {
		t.Errorf("Backend = %v, want empty map", project.Backend)
	}
	if project.Variables == nil || len(project.Variables) != 0 {
		t.Errorf("Variables = %v, want empty map", project.Variables)
	}
	if project.Workspaces == nil || len(project.Workspaces) != 0 {
		t.Errorf("Workspaces = %v, want empty slice", project.Workspaces)
	}
}

func TestWorkspaceDefaults(t *testing.T) {
	file, err := ParseWorkspace("name: staging\n")
	if err != nil {
		t.Fatalf("ParseWorkspace() error = %v", err)
	}
	if err := ValidateWorkspace(file); err != nil {
		t.Fatalf("ValidateWorkspace() error = %v", err)
	}

	workspace := NormalizeWorkspace(file)
	if workspace.Environment != "development" {
		t.Errorf("Environment = %q, want development", workspace.Environment)
	}
	if workspace.Variables == nil {
		t.Error("Variables = nil, want empty map")
	}
	if workspace.Backend == nil {
		t.Error("Backend = nil, want empty map")
	}
}

func TestValidateWorkspaceRequiresName(t *testing.T) {
	file, err := ParseWorkspace("environment: production\n")
	if err != nil {
		t.Fatalf("ParseWorkspace() error = %v", err)
	}

	if err := ValidateWorkspace(file); !errors.Is(err, ErrInvalidWorkspace) {
		t.Errorf("ValidateWorkspace() error = %v, want ErrInvalidWorkspace", err)
	}
}

func TestWorkspaceConfigPath(t *testing.T) {
	got := WorkspaceConfigPath("production")
	want := ".ghoten/workspaces/production.yaml"
	if got != want {
		t.Errorf("WorkspaceConfigPath() = %q, want %q", got, want)
	}
}
