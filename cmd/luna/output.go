package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/lunatask-go/lunatask/pkg/lunatask"
)

// printTask prints a single task to the writer
func printTask(w io.Writer, task *lunatask.Task, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(task)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", task.ID)
	fmt.Fprintf(tw, "Area:\t%s\n", task.AreaID)
	if task.GoalID != nil && *task.GoalID != "" {
		fmt.Fprintf(tw, "Goal:\t%s\n", *task.GoalID)
	}
	fmt.Fprintf(tw, "Status:\t%s\n", task.Status)
	if task.PreviousStatus != nil {
		fmt.Fprintf(tw, "Previous Status:\t%s\n", *task.PreviousStatus)
	}
	fmt.Fprintf(tw, "Priority:\t%s\n", task.Priority)
	fmt.Fprintf(tw, "Motivation:\t%s\n", task.Motivation)
	fmt.Fprintf(tw, "Eisenhower:\t%s\n", task.Eisenhower)
	if task.Estimate != nil {
		fmt.Fprintf(tw, "Estimate:\t%d min\n", *task.Estimate)
	}
	if len(task.Sources) > 0 {
		fmt.Fprintf(tw, "Sources:\t%s\n", formatSources(task.Sources))
	}
	printOptional(tw, "Scheduled", task.ScheduledOn)
	printOptional(tw, "Completed", task.CompletedAt)
	fmt.Fprintf(tw, "Created:\t%s\n", task.CreatedAt)
	fmt.Fprintf(tw, "Updated:\t%s\n", task.UpdatedAt)
	printOptional(tw, "Deleted", task.DeletedAt)
	tw.Flush()
}

// printTaskList prints a list of tasks
func printTaskList(w io.Writer, tasks []lunatask.Task, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]interface{}{
			"tasks": tasks,
		})
		return
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tSTATUS\tPRIORITY\tAREA\tSCHEDULED\n")
	fmt.Fprintf(tw, "--\t------\t--------\t----\t---------\n")
	for _, task := range tasks {
		scheduled := ""
		if task.ScheduledOn != nil {
			scheduled = *task.ScheduledOn
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			task.ID, task.Status, task.Priority, truncate(task.AreaID, 36), scheduled)
	}
	tw.Flush()
}

// printError prints an error message
func printError(w io.Writer, err error, jsonOutput bool) {
	if jsonOutput {
		body := map[string]interface{}{
			"message": err.Error(),
		}
		if code := lunatask.StatusCode(err); code != 0 {
			body["status"] = code
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]interface{}{
			"error": body,
		})
		return
	}

	fmt.Fprintf(w, "Error: %s\n", err.Error())
}

// printSuccess prints a success message
func printSuccess(w io.Writer, message string, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]interface{}{
			"message": message,
		})
		return
	}

	fmt.Fprintln(w, message)
}

func printOptional(w io.Writer, label string, value *string) {
	if value != nil && *value != "" {
		fmt.Fprintf(w, "%s:\t%s\n", label, *value)
	}
}

// formatSources renders sources as "name:id" pairs
func formatSources(sources []lunatask.ExternalSource) string {
	parts := make([]string, 0, len(sources))
	for _, src := range sources {
		if src.SourceID == "" {
			parts = append(parts, src.Source)
			continue
		}
		parts = append(parts, src.Source+":"+src.SourceID)
	}
	return strings.Join(parts, ", ")
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
