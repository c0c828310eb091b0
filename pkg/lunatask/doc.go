// Package lunatask provides a Go client for the Lunatask task API.
//
// Every call maps to exactly one HTTP request against DefaultBaseURL and
// carries the configured access token as a bearer token. The client keeps
// no state between calls: there is no caching, no retry and no pagination.
//
// # Getting Started
//
//	client, err := lunatask.NewClient(
//	    lunatask.WithAccessToken(token),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if !client.CheckConnection(ctx) {
//	    log.Fatal("lunatask is unreachable")
//	}
//
// # Managing Tasks
//
// Create a task in an area:
//
//	task, err := client.CreateTask(ctx, lunatask.CreateTaskParams{
//	    AreaID:   areaID,
//	    Name:     lunatask.Ptr("Write report"),
//	    Priority: lunatask.Ptr(lunatask.PriorityHigh),
//	})
//
// List tasks imported from another system:
//
//	tasks, err := client.ListTasks(ctx, lunatask.ListTasksParams{
//	    Source:   "github",
//	    SourceID: "123",
//	})
//
// Update and delete:
//
//	task, err = client.UpdateTask(ctx, task.ID, lunatask.UpdateTaskParams{
//	    Status: lunatask.Ptr(lunatask.StatusCompleted),
//	})
//	deleted, err := client.DeleteTask(ctx, task.ID)
//
// # Error Handling
//
// CheckConnection reports failure as false. Every other method returns the
// failure: transport errors wrapped with %w, and non-2xx responses as
// *APIError. Use the helpers to branch on the status:
//
//	task, err := client.GetTask(ctx, id)
//	if lunatask.IsNotFound(err) {
//	    // the task does not exist
//	}
//
// All failures are also written to the client's logger, see WithLogger.
package lunatask
