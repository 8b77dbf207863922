package domain

// Command is a single mutation of the task collection. The concrete types
// below are the only implementations.
type Command interface {
	isCommand()
}

// AddCommand appends Task. The caller assigns a fresh ID before reducing.
type AddCommand struct {
	Task Task
}

// RemoveCommand deletes the task with ID
type RemoveCommand struct {
	ID int64
}

// ToggleCommand flips Completed on the task with ID
type ToggleCommand struct {
	ID int64
}

// UpdateCommand replaces the editable fields of the task with ID
type UpdateCommand struct {
	ID     int64
	Update TaskUpdate
}

func (AddCommand) isCommand()    {}
func (RemoveCommand) isCommand() {}
func (ToggleCommand) isCommand() {}
func (UpdateCommand) isCommand() {}

// TaskUpdate carries the replacement fields for an update. Completed is left
// untouched unless set.
type TaskUpdate struct {
	Title       string
	Description string
	Priority    Priority
	Completed   *bool
}

// Reduce applies cmd to tasks and returns the resulting collection. The input
// slice is never modified; commands naming an unknown ID return an unchanged
// copy.
func Reduce(tasks []Task, cmd Command) []Task {
	switch c := cmd.(type) {
	case AddCommand:
		next := make([]Task, 0, len(tasks)+1)
		next = append(next, tasks...)
		return append(next, c.Task)

	case RemoveCommand:
		next := make([]Task, 0, len(tasks))
		for _, t := range tasks {
			if t.ID != c.ID {
				next = append(next, t)
			}
		}
		return next

	case ToggleCommand:
		return mapTask(tasks, c.ID, func(t Task) Task {
			t.Completed = !t.Completed
			return t
		})

	case UpdateCommand:
		return mapTask(tasks, c.ID, func(t Task) Task {
			t.Title = c.Update.Title
			t.Description = c.Update.Description
			t.Priority = c.Update.Priority
			if c.Update.Completed != nil {
				t.Completed = *c.Update.Completed
			}
			return t
		})

	default:
		return clone(tasks)
	}
}

// Find returns the task with id
func Find(tasks []Task, id int64) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// MaxID returns the largest ID in tasks, or 0 for an empty collection
func MaxID(tasks []Task) int64 {
	var maxID int64
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID
}

func mapTask(tasks []Task, id int64, fn func(Task) Task) []Task {
	next := clone(tasks)
	for i := range next {
		if next[i].ID == id {
			next[i] = fn(next[i])
		}
	}
	return next
}

func clone(tasks []Task) []Task {
	next := make([]Task, len(tasks))
	copy(next, tasks)
	return next
}
