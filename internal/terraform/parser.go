package terraform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vmvarela/ghoten-ui/internal/domain"
)

var (
	addPattern     = regexp.MustCompile(`(\d+) to add`)
	changePattern  = regexp.MustCompile(`(\d+) to change`)
	destroyPattern = regexp.MustCompile(`(\d+) to destroy`)
)

// ParsePlanOutput extracts the add/change/destroy counts from a plan's
// summary line.
func ParsePlanOutput(output string) domain.PlanSummary {
	summary := domain.PlanSummary{}

	if m := addPattern.FindStringSubmatch(output); m != nil {
		summary.ToAdd, _ = strconv.Atoi(m[1])
	}
	if m := changePattern.FindStringSubmatch(output); m != nil {
		summary.ToChange, _ = strconv.Atoi(m[1])
	}
	if m := destroyPattern.FindStringSubmatch(output); m != nil {
		summary.ToDestroy, _ = strconv.Atoi(m[1])
	}

	return summary
}

// ExtractResourceChanges collects the per-resource announcement lines
// from plan output.
func ExtractResourceChanges(output string) []domain.ResourceChange {
	var resources []domain.ResourceChange

	for i, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "# ") {
			continue
		}
		if !strings.Contains(line, "will be") && !strings.Contains(line, "must be") {
			continue
		}

		action := "update"
		switch {
		case strings.Contains(line, "created"):
			action = "create"
		case strings.Contains(line, "destroyed"):
			action = "destroy"
		}

		resources = append(resources, domain.ResourceChange{
			Name:   strings.TrimSpace(line),
			Action: action,
			Line:   i,
		})
	}

	return resources
}

// Summary returns the last non-empty line of the output.
func Summary(output string) string {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return lines[i]
		}
	}
	return "No summary available"
}

// HasErrors reports whether the output mentions a failure.
func HasErrors(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "error") || strings.Contains(lower, "failed")
}

// ExtractErrors collects the error lines from the output.
func ExtractErrors(output string) []string {
	var errors []string
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(strings.ToLower(line), "error:") {
			errors = append(errors, strings.TrimSpace(line))
		}
	}
	return errors
}
