package ui

import (
	"strings"
)

type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandQuit
	CommandLogin
	CommandLogout
	CommandProjects
	CommandRuns
	CommandLogs
	CommandRefresh
	CommandHelp
)

type Command struct {
	Type CommandType
	Args []string
}

func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)

	if !strings.HasPrefix(input, ":") {
		return Command{Type: CommandUnknown}
	}

	input = strings.TrimPrefix(input, ":")
	parts := strings.Fields(input)

	if len(parts) == 0 {
		return Command{Type: CommandUnknown}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "q", "quit":
		return Command{Type: CommandQuit, Args: args}
	case "login":
		return Command{Type: CommandLogin, Args: args}
	case "logout":
		return Command{Type: CommandLogout, Args: args}
	case "p", "projects":
		return Command{Type: CommandProjects, Args: args}
	case "r", "runs":
		return Command{Type: CommandRuns, Args: args}
	case "logs":
		return Command{Type: CommandLogs, Args: args}
	case "refresh":
		return Command{Type: CommandRefresh, Args: args}
	case "h", "help":
		return Command{Type: CommandHelp, Args: args}
	default:
		return Command{Type: CommandUnknown, Args: args}
	}
}
