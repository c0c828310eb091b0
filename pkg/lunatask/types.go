package lunatask

import "strconv"

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	// StatusLater indicates a task is parked for later.
	StatusLater TaskStatus = "later"
	// StatusNext indicates a task is queued up next.
	StatusNext TaskStatus = "next"
	// StatusStarted indicates a task is being worked on.
	StatusStarted TaskStatus = "started"
	// StatusWaiting indicates a task is waiting on someone or something.
	StatusWaiting TaskStatus = "waiting"
	// StatusCompleted indicates a task is done.
	StatusCompleted TaskStatus = "completed"
)

// Priority is the task priority, from -2 (lowest) to 2 (highest).
type Priority int

// Priority levels.
const (
	PriorityLowest  Priority = -2
	PriorityLow     Priority = -1
	PriorityNormal  Priority = 0
	PriorityHigh    Priority = 1
	PriorityHighest Priority = 2
)

func (p Priority) String() string {
	switch p {
	case PriorityLowest:
		return "lowest"
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityHighest:
		return "highest"
	default:
		return strconv.Itoa(int(p))
	}
}

// Motivation describes why a task is done.
type Motivation string

const (
	// MotivationMust marks a task that has to be done.
	MotivationMust Motivation = "must"
	// MotivationShould marks a task that ought to be done.
	MotivationShould Motivation = "should"
	// MotivationWant marks a task done by choice.
	MotivationWant Motivation = "want"
	// MotivationUnknown is the server default when no motivation is set.
	MotivationUnknown Motivation = "unknown"
)

// Eisenhower is the urgency/importance quadrant of a task.
type Eisenhower int

// Eisenhower quadrants. Zero means the task is not categorized.
const (
	EisenhowerUncategorized      Eisenhower = 0
	EisenhowerUrgentImportant    Eisenhower = 1
	EisenhowerUrgentNotImportant Eisenhower = 2
	EisenhowerImportantNotUrgent Eisenhower = 3
	EisenhowerNeither            Eisenhower = 4
)

func (e Eisenhower) String() string {
	switch e {
	case EisenhowerUncategorized:
		return "uncategorized"
	case EisenhowerUrgentImportant:
		return "urgent-important"
	case EisenhowerUrgentNotImportant:
		return "urgent"
	case EisenhowerImportantNotUrgent:
		return "important"
	case EisenhowerNeither:
		return "neither"
	default:
		return strconv.Itoa(int(e))
	}
}

// ExternalSource links a task to the system it was imported from.
type ExternalSource struct {
	Source   string `json:"source"`
	SourceID string `json:"source_id"`
}

// Task is a task as reported by the API. Dates and timestamps are passed
// through as the server sends them (ISO-8601).
type Task struct {
	ID             string           `json:"id"`
	AreaID         string           `json:"area_id"`
	GoalID         *string          `json:"goal_id,omitempty"`
	Status         TaskStatus       `json:"status"`
	PreviousStatus *TaskStatus      `json:"previous_status,omitempty"`
	Estimate       *int             `json:"estimate,omitempty"`
	Priority       Priority         `json:"priority"`
	Motivation     Motivation       `json:"motivation"`
	Eisenhower     Eisenhower       `json:"eisenhower"`
	Sources        []ExternalSource `json:"sources"`
	ScheduledOn    *string          `json:"scheduled_on,omitempty"`
	CompletedAt    *string          `json:"completed_at,omitempty"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
	DeletedAt      *string          `json:"deleted_at,omitempty"`
}

// ListTasksParams filters a ListTasks call. Empty fields are not sent.
type ListTasksParams struct {
	Source   string
	SourceID string
}

// CreateTaskParams is the body of a create request. AreaID is required by
// the API; everything else is optional and omitted when nil.
type CreateTaskParams struct {
	AreaID      string      `json:"area_id"`
	GoalID      *string     `json:"goal_id,omitempty"`
	Name        *string     `json:"name,omitempty"`
	Note        *string     `json:"note,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	Motivation  *Motivation `json:"motivation,omitempty"`
	Eisenhower  *Eisenhower `json:"eisenhower,omitempty"`
	Estimate    *int        `json:"estimate,omitempty"`
	Priority    *Priority   `json:"priority,omitempty"`
	ScheduledOn *string     `json:"scheduled_on,omitempty"`
	CompletedAt *string     `json:"completed_at,omitempty"`
	Source      *string     `json:"source,omitempty"`
	SourceID    *string     `json:"source_id,omitempty"`
}

// UpdateTaskParams is the body of an update request. Only non-nil fields are
// sent; how they are merged into the stored task is up to the server.
type UpdateTaskParams struct {
	AreaID      *string     `json:"area_id,omitempty"`
	GoalID      *string     `json:"goal_id,omitempty"`
	Name        *string     `json:"name,omitempty"`
	Note        *string     `json:"note,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	Motivation  *Motivation `json:"motivation,omitempty"`
	Eisenhower  *Eisenhower `json:"eisenhower,omitempty"`
	Estimate    *int        `json:"estimate,omitempty"`
	Priority    *Priority   `json:"priority,omitempty"`
	ScheduledOn *string     `json:"scheduled_on,omitempty"`
	CompletedAt *string     `json:"completed_at,omitempty"`
}

// UpdateFromTask returns update params carrying every writable field of t.
// Set Name or Note on the result to change them as well, since the API never
// returns those.
func UpdateFromTask(t *Task) UpdateTaskParams {
	return UpdateTaskParams{
		AreaID:      Ptr(t.AreaID),
		GoalID:      t.GoalID,
		Status:      Ptr(t.Status),
		Motivation:  Ptr(t.Motivation),
		Eisenhower:  Ptr(t.Eisenhower),
		Estimate:    t.Estimate,
		Priority:    Ptr(t.Priority),
		ScheduledOn: t.ScheduledOn,
		CompletedAt: t.CompletedAt,
	}
}

// Ptr returns a pointer to v. Handy for filling optional params fields.
func Ptr[T any](v T) *T {
	return &v
}

// Response envelopes.

type tasksResponse struct {
	Tasks []Task `json:"tasks"`
}

type taskResponse struct {
	Task *Task `json:"task"`
}

type pingResponse struct {
	Message string `json:"message"`
}
