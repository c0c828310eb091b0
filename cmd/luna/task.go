package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lunatask-go/lunatask/internal/config"
	"github.com/lunatask-go/lunatask/pkg/lunatask"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long:  `List tasks, optionally only those imported from a given source.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		source, _ := cmd.Flags().GetString("source")
		sourceID, _ := cmd.Flags().GetString("source-id")

		c, _, err := getClient(verbose)
		if err != nil {
			handleError(cmd.ErrOrStderr(), err)
		}

		tasks, err := c.ListTasks(context.Background(), lunatask.ListTasksParams{
			Source:   source,
			SourceID: sourceID,
		})
		if err != nil {
			handleError(cmd.ErrOrStderr(), err)
		}

		printTaskList(cmd.OutOrStdout(), tasks, jsonOutput)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, _, err := getClient(verbose)
		if err != nil {
			handleError(cmd.ErrOrStderr(), err)
		}

		task, err := c.GetTask(context.Background(), args[0])
		if err != nil {
			handleError(cmd.ErrOrStderr(), err)
		}

		printTask(cmd.OutOrStdout(), task, jsonOutput)
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a task",
	Long: `Create a task in an area.

The area defaults to area_id from the nearest lunatask.toml.

Priority can be a number (-2..2) or name:
  -2 / lowest
  -1 / low
   0 / normal
   1 / high
   2 / highest`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c, cfg, err := getClient(verbose)
		if err != nil {
			handleError(cmd.ErrOrStderr(), err)
		}

		params, err := buildCreateParams(cmd, cfg.Project)
		if err != nil {
			handleError(cmd.ErrOrStderr(), err)
		}

		task, err := c.CreateTask(context.Background(), params)
		if err != nil {
			handleError(cmd.ErrOrStderr(), err)
		}

		printTask(cmd.OutOrStdout(), task, jsonOutput)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task",
	Long:  `Update a task. Only the flags given are sent.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		params, err := buildUpdateParams(cmd)
		if err != nil {
			handleError(cmd.ErrOrStderr(), err)
		}

		c, _, err := getClient(verbose)
		if err != nil {
			handleError(cmd.ErrOrStderr(), err)
		}

		task, err := c.UpdateTask(context.Background(), args[0], params)
		if err != nil {
			handleError(cmd.ErrOrStderr(), err)
		}

		printTask(cmd.OutOrStdout(), task, jsonOutput)
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, _, err := getClient(verbose)
		if err != nil {
			handleError(cmd.ErrOrStderr(), err)
		}

		task, err := c.DeleteTask(context.Background(), args[0])
		if err != nil {
			handleError(cmd.ErrOrStderr(), err)
		}

		if jsonOutput {
			printTask(cmd.OutOrStdout(), task, true)
			return
		}
		msg := fmt.Sprintf("Task %s deleted", task.ID)
		if task.DeletedAt != nil {
			msg += " at " + *task.DeletedAt
		}
		printSuccess(cmd.OutOrStdout(), msg, false)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)

	listCmd.Flags().String("source", "", "Only tasks from this source system")
	listCmd.Flags().String("source-id", "", "Only tasks with this source ID")

	addTaskFlags(addCmd)
	addCmd.Flags().String("source", "", "Source system the task comes from")
	addCmd.Flags().String("source-id", "", "ID of the task in the source system")

	addTaskFlags(editCmd)
}

// addTaskFlags registers the flags shared by add and edit
func addTaskFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("area", "", "Area ID")
	f.String("goal", "", "Goal ID")
	f.StringP("name", "n", "", "Task name")
	f.String("note", "", "Task note (markdown)")
	f.StringP("status", "s", "", "Status (later, next, started, waiting, completed)")
	f.StringP("priority", "p", "", "Priority (-2..2 or lowest/low/normal/high/highest)")
	f.StringP("motivation", "m", "", "Motivation (must, should, want, unknown)")
	f.StringP("eisenhower", "e", "", "Eisenhower quadrant (0-4 or uncategorized/urgent-important/urgent/important/neither)")
	f.Int("estimate", 0, "Estimate in minutes")
	f.String("scheduled-on", "", "Scheduled date (YYYY-MM-DD)")
	f.String("completed-at", "", "Completion timestamp (ISO-8601)")
}

// taskFields holds the shared task flags that were given on the command line
type taskFields struct {
	areaID      *string
	goalID      *string
	name        *string
	note        *string
	status      *lunatask.TaskStatus
	priority    *lunatask.Priority
	motivation  *lunatask.Motivation
	eisenhower  *lunatask.Eisenhower
	estimate    *int
	scheduledOn *string
	completedAt *string
}

// changed reports whether any field was set
func (f taskFields) changed() bool {
	return f.areaID != nil || f.goalID != nil || f.name != nil || f.note != nil ||
		f.status != nil || f.priority != nil || f.motivation != nil || f.eisenhower != nil ||
		f.estimate != nil || f.scheduledOn != nil || f.completedAt != nil
}

// readTaskFields reads the flags registered by addTaskFlags. Unchanged flags
// stay nil.
func readTaskFields(cmd *cobra.Command) (taskFields, error) {
	var fields taskFields
	flags := cmd.Flags()

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	fields.areaID = stringFlag("area")
	fields.goalID = stringFlag("goal")
	fields.name = stringFlag("name")
	fields.note = stringFlag("note")
	fields.scheduledOn = stringFlag("scheduled-on")
	fields.completedAt = stringFlag("completed-at")

	if s := stringFlag("status"); s != nil {
		status, err := parseStatus(*s)
		if err != nil {
			return fields, err
		}
		fields.status = &status
	}
	if s := stringFlag("priority"); s != nil {
		p, err := parsePriority(*s)
		if err != nil {
			return fields, err
		}
		fields.priority = &p
	}
	if s := stringFlag("motivation"); s != nil {
		m, err := parseMotivation(*s)
		if err != nil {
			return fields, err
		}
		fields.motivation = &m
	}
	if s := stringFlag("eisenhower"); s != nil {
		e, err := parseEisenhower(*s)
		if err != nil {
			return fields, err
		}
		fields.eisenhower = &e
	}
	if flags.Changed("estimate") {
		n, _ := flags.GetInt("estimate")
		if n < 0 {
			return fields, fmt.Errorf("estimate cannot be negative, got %d", n)
		}
		fields.estimate = &n
	}

	return fields, nil
}

// buildCreateParams builds create params from flags, falling back to the
// project config for area and goal
func buildCreateParams(cmd *cobra.Command, project *config.ProjectConfig) (lunatask.CreateTaskParams, error) {
	fields, err := readTaskFields(cmd)
	if err != nil {
		return lunatask.CreateTaskParams{}, err
	}

	params := lunatask.CreateTaskParams{
		GoalID:      fields.goalID,
		Name:        fields.name,
		Note:        fields.note,
		Status:      fields.status,
		Motivation:  fields.motivation,
		Eisenhower:  fields.eisenhower,
		Estimate:    fields.estimate,
		Priority:    fields.priority,
		ScheduledOn: fields.scheduledOn,
		CompletedAt: fields.completedAt,
	}

	if fields.areaID != nil {
		params.AreaID = *fields.areaID
	} else if project != nil {
		params.AreaID = project.AreaID
		if params.GoalID == nil && project.GoalID != "" {
			params.GoalID = lunatask.Ptr(project.GoalID)
		}
	}
	if params.AreaID == "" {
		return params, errors.New("area is required: use --area or set area_id in " + config.ProjectConfigFileName)
	}

	if cmd.Flags().Changed("source") {
		v, _ := cmd.Flags().GetString("source")
		params.Source = &v
	}
	if cmd.Flags().Changed("source-id") {
		v, _ := cmd.Flags().GetString("source-id")
		params.SourceID = &v
	}

	return params, nil
}

// buildUpdateParams builds update params from the flags that were given
func buildUpdateParams(cmd *cobra.Command) (lunatask.UpdateTaskParams, error) {
	fields, err := readTaskFields(cmd)
	if err != nil {
		return lunatask.UpdateTaskParams{}, err
	}
	if !fields.changed() {
		return lunatask.UpdateTaskParams{}, errors.New("nothing to update: pass at least one field flag")
	}

	return lunatask.UpdateTaskParams{
		AreaID:      fields.areaID,
		GoalID:      fields.goalID,
		Name:        fields.name,
		Note:        fields.note,
		Status:      fields.status,
		Motivation:  fields.motivation,
		Eisenhower:  fields.eisenhower,
		Estimate:    fields.estimate,
		Priority:    fields.priority,
		ScheduledOn: fields.scheduledOn,
		CompletedAt: fields.completedAt,
	}, nil
}
