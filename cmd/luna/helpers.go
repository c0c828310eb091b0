package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/lunatask-go/lunatask/internal/config"
	"github.com/lunatask-go/lunatask/pkg/lunatask"
)

// getClient creates a client from the resolved config. Failures are logged
// to stderr when logFailures is set.
func getClient(logFailures bool) (*lunatask.Client, *config.ResolvedConfig, error) {
	cfg, err := config.Resolve(config.Overrides{
		AccessToken: tokenFlag,
		BaseURL:     baseURL,
	})
	if err != nil {
		return nil, nil, err
	}

	var logger *log.Logger
	if logFailures {
		logger = log.New(os.Stderr, "[luna] ", log.LstdFlags)
	}

	opts := append(cfg.ClientOptions(), lunatask.WithLogger(logger))
	c, err := lunatask.NewClient(opts...)
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}

// mapErrorToExitCode maps an error to the appropriate exit code
func mapErrorToExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, config.ErrNoAccessToken), errors.Is(err, lunatask.ErrNoAccessToken):
		return ExitNotConfigured
	case lunatask.IsNotFound(err):
		return ExitTaskNotFound
	case lunatask.IsUnauthorized(err):
		return ExitUnauthorized
	case lunatask.IsValidationFailed(err):
		return ExitValidation
	case lunatask.IsRateLimited(err):
		return ExitRateLimited
	case errors.Is(err, lunatask.ErrUnexpectedPong):
		return ExitUnreachable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ExitUnreachable
	}

	return ExitGeneralError
}

// handleError handles an error by printing it and exiting with the appropriate code
func handleError(w io.Writer, err error) {
	if err == nil {
		return
	}

	printError(w, err, jsonOutput)
	os.Exit(mapErrorToExitCode(err))
}

// parsePriority parses a priority string (name or number) into a Priority
func parsePriority(s string) (lunatask.Priority, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < -2 || n > 2 {
			return 0, fmt.Errorf("priority must be between -2 and 2, got %d", n)
		}
		return lunatask.Priority(n), nil
	}

	switch strings.ToLower(s) {
	case "lowest":
		return lunatask.PriorityLowest, nil
	case "low":
		return lunatask.PriorityLow, nil
	case "normal":
		return lunatask.PriorityNormal, nil
	case "high":
		return lunatask.PriorityHigh, nil
	case "highest":
		return lunatask.PriorityHighest, nil
	default:
		return 0, fmt.Errorf("invalid priority: %s (use -2..2 or lowest/low/normal/high/highest)", s)
	}
}

// parseEisenhower parses an eisenhower quadrant (name or number)
func parseEisenhower(s string) (lunatask.Eisenhower, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 4 {
			return 0, fmt.Errorf("eisenhower must be between 0 and 4, got %d", n)
		}
		return lunatask.Eisenhower(n), nil
	}

	switch strings.ToLower(s) {
	case "uncategorized", "none":
		return lunatask.EisenhowerUncategorized, nil
	case "urgent-important":
		return lunatask.EisenhowerUrgentImportant, nil
	case "urgent":
		return lunatask.EisenhowerUrgentNotImportant, nil
	case "important":
		return lunatask.EisenhowerImportantNotUrgent, nil
	case "neither":
		return lunatask.EisenhowerNeither, nil
	default:
		return 0, fmt.Errorf("invalid eisenhower: %s (use 0-4 or uncategorized/urgent-important/urgent/important/neither)", s)
	}
}

// parseStatus parses a task status name
func parseStatus(s string) (lunatask.TaskStatus, error) {
	status := lunatask.TaskStatus(strings.ToLower(s))
	switch status {
	case lunatask.StatusLater, lunatask.StatusNext, lunatask.StatusStarted,
		lunatask.StatusWaiting, lunatask.StatusCompleted:
		return status, nil
	default:
		return "", fmt.Errorf("invalid status: %s (use later/next/started/waiting/completed)", s)
	}
}

// parseMotivation parses a motivation name
func parseMotivation(s string) (lunatask.Motivation, error) {
	m := lunatask.Motivation(strings.ToLower(s))
	switch m {
	case lunatask.MotivationMust, lunatask.MotivationShould,
		lunatask.MotivationWant, lunatask.MotivationUnknown:
		return m, nil
	default:
		return "", fmt.Errorf("invalid motivation: %s (use must/should/want/unknown)", s)
	}
}
