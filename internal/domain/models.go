package domain

import "time"

type AuthFlow string

const (
	AuthFlowDevice   AuthFlow = "device"
	AuthFlowRedirect AuthFlow = "redirect"
	AuthFlowManual   AuthFlow = "manual"
)

type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusCompleted  RunStatus = "completed"
)

type User struct {
	Login     string
	Name      string
	AvatarURL string
}

type Organization struct {
	Login       string
	Description string
}

type Repository struct {
	Owner       string
	Name        string
	FullName    string
	Private     bool
	HTMLURL     string
	Description string
}

type Project struct {
	Owner       string
	Repo        string
	Name        string
	Description string
	Workspaces  []string
	Backend     map[string]string
	Variables   map[string]string
}

type Workspace struct {
	Name        string
	Description string
	Variables   map[string]string
	Backend     map[string]string
	Environment string
}

type WorkflowRun struct {
	ID         int64
	Name       string
	Status     RunStatus
	Conclusion string
	Branch     string
	HTMLURL    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type PlanSummary struct {
	ToAdd     int
	ToChange  int
	ToDestroy int
}

type ResourceChange struct {
	Name   string
	Action string
	Line   int
}
