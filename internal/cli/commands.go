// Package cli implements the non-interactive subcommands. They drive the
// same task store as the TUI.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"

	"github.com/riordanpawley/taskmaster/internal/config"
	"github.com/riordanpawley/taskmaster/internal/domain"
	"github.com/riordanpawley/taskmaster/internal/logging"
	"github.com/riordanpawley/taskmaster/internal/services/storage"
	"github.com/riordanpawley/taskmaster/internal/services/tasks"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrUsage marks a malformed command line. Usage has already been printed.
var ErrUsage = errors.New("invalid usage")

// Dependencies holds all the services needed for CLI commands
type Dependencies struct {
	Config  *config.Config
	Store   *tasks.Store
	Logger  *log.Logger
	Out     io.Writer
	backend storage.Backend
	logFile io.Closer
}

// NewDependencies opens the logger and the storage backend named by cfg.
// The store is not loaded yet.
func NewDependencies(cfg *config.Config, out io.Writer) (*Dependencies, error) {
	logger, logFile, err := logging.Open(cfg.Log)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(cfg.Storage)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	store := tasks.NewStore(backend, logger,
		tasks.WithTimeout(time.Duration(cfg.Storage.TimeoutMs)*time.Millisecond))

	logger.Debug("dependencies ready", "backend", backend.Name())

	return &Dependencies{
		Config:  cfg,
		Store:   store,
		Logger:  logger,
		Out:     out,
		backend: backend,
		logFile: logFile,
	}, nil
}

// Close releases the backend and the log file
func (d *Dependencies) Close() error {
	return errors.Join(d.backend.Close(), d.logFile.Close())
}

// ApplyGlobalFlags parses the flags that precede the subcommand and returns
// the remaining arguments
func ApplyGlobalFlags(cfg *config.Config, args []string, stderr io.Writer) ([]string, error) {
	fs := flag.NewFlagSet("taskmaster", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { PrintUsage(stderr) }

	ephemeral := fs.Bool("ephemeral", false, "Keep tasks in memory only")
	backend := fs.String("storage", cfg.Storage.Backend, "Storage backend (file|redis|memory)")
	path := fs.String("path", cfg.Storage.Path, "Task file for the file backend")
	theme := fs.String("theme", cfg.UI.Theme, "Color theme (dark|light)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, ErrUsage
	}

	cfg.Storage.Backend = *backend
	cfg.Storage.Path = *path
	cfg.UI.Theme = *theme
	if *ephemeral {
		cfg.Storage.Backend = config.BackendMemory
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// Run dispatches a subcommand
func Run(ctx context.Context, deps *Dependencies, args []string) error {
	if len(args) == 0 {
		PrintUsage(deps.Out)
		return ErrUsage
	}

	name, rest := args[0], args[1:]
	switch name {
	case "list", "ls":
		return ListCommand(ctx, deps, rest)
	case "add":
		return AddCommand(ctx, deps, rest)
	case "toggle":
		return ToggleCommand(ctx, deps, rest)
	case "rm", "remove":
		return RemoveCommand(ctx, deps, rest)
	case "edit":
		return EditCommand(ctx, deps, rest)
	case "version":
		return VersionCommand(deps.Out)
	case "help":
		PrintUsage(deps.Out)
		return nil
	default:
		fmt.Fprintf(deps.Out, "Unknown command: %s\n\n", name)
		PrintUsage(deps.Out)
		return fmt.Errorf("unknown command: %s", name)
	}
}

// ListCommand prints the filtered view as a table
func ListCommand(ctx context.Context, deps *Dependencies, args []string) error {
	fs := newFlagSet("list", deps.Out)
	search := fs.String("search", "", "Only titles containing this text")
	filter := fs.String("filter", string(domain.SelectAll), "all|completed|incomplete|high|medium|low")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if err := loadTasks(ctx, deps); err != nil {
		return err
	}
	visible := deps.Store.FilteredView(*search, *filter)

	if len(visible) == 0 {
		fmt.Fprintln(deps.Out, "No tasks found!")
		return nil
	}

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tPRIORITY\tTITLE\tDESCRIPTION")
	fmt.Fprintln(w, "--\t----\t--------\t-----\t-----------")
	for _, task := range visible {
		done := "[ ]"
		if task.Completed {
			done = "[x]"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			task.ID, done, task.Priority, truncate(task.Title, 40), truncate(firstLine(task.Description), 50))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Out, "\n%d of %d tasks\n", len(visible), deps.Store.Len())
	return nil
}

// AddCommand validates and appends a task
func AddCommand(ctx context.Context, deps *Dependencies, args []string) error {
	fs := newFlagSet("add", deps.Out)
	title := fs.String("title", "", "Task title (required)")
	desc := fs.String("desc", "", "Task description (required)")
	priority := fs.String("priority", string(domain.DefaultPriority), "High|Medium|Low")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	p, err := domain.ParsePriority(*priority)
	if err != nil {
		return err
	}
	t, d := strings.TrimSpace(*title), strings.TrimSpace(*desc)
	if err := domain.ValidateDraft(t, d); err != nil {
		return err
	}

	if err := loadTasks(ctx, deps); err != nil {
		return err
	}
	task := deps.Store.Add(t, d, p)
	if err := deps.Store.PersistErr(); err != nil {
		return fmt.Errorf("task %d not saved: %w", task.ID, err)
	}

	fmt.Fprintf(deps.Out, "✓ Added %d: %s\n", task.ID, task.Title)
	return nil
}

// loadTasks restores the collection and refuses to go on when storage could
// not be read, so a mutation never replaces tasks it did not see.
func loadTasks(ctx context.Context, deps *Dependencies) error {
	deps.Store.Load(ctx)
	if err := deps.Store.PersistErr(); err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	return nil
}

// ToggleCommand flips a task between pending and completed
func ToggleCommand(ctx context.Context, deps *Dependencies, args []string) error {
	id, err := parseID("toggle", args)
	if err != nil {
		return err
	}

	if err := loadTasks(ctx, deps); err != nil {
		return err
	}
	if _, ok := deps.Store.Get(id); !ok {
		return fmt.Errorf("task %d: %w", id, domain.ErrNotFound)
	}
	deps.Store.Toggle(id)
	if err := deps.Store.PersistErr(); err != nil {
		return err
	}

	task, _ := deps.Store.Get(id)
	state := "pending"
	if task.Completed {
		state = "completed"
	}
	fmt.Fprintf(deps.Out, "✓ %d is now %s\n", id, state)
	return nil
}

// RemoveCommand deletes a task
func RemoveCommand(ctx context.Context, deps *Dependencies, args []string) error {
	id, err := parseID("rm", args)
	if err != nil {
		return err
	}

	if err := loadTasks(ctx, deps); err != nil {
		return err
	}
	task, ok := deps.Store.Get(id)
	if !ok {
		return fmt.Errorf("task %d: %w", id, domain.ErrNotFound)
	}
	deps.Store.Remove(id)
	if err := deps.Store.PersistErr(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Out, "✓ Removed %d: %s\n", id, task.Title)
	return nil
}

// EditCommand replaces the fields given as flags and keeps the others
func EditCommand(ctx context.Context, deps *Dependencies, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("edit: missing task id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("edit: invalid task id %q", args[0])
	}

	fs := newFlagSet("edit", deps.Out)
	title := fs.String("title", "", "New title")
	desc := fs.String("desc", "", "New description")
	priority := fs.String("priority", "", "New priority (High|Medium|Low)")
	if err := fs.Parse(args[1:]); err != nil {
		return ErrUsage
	}

	if err := loadTasks(ctx, deps); err != nil {
		return err
	}
	if !deps.Store.SetEditTarget(id) {
		return fmt.Errorf("task %d: %w", id, domain.ErrNotFound)
	}
	task, _ := deps.Store.EditTarget()

	update := domain.TaskUpdate{
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			update.Title = strings.TrimSpace(*title)
		case "desc":
			update.Description = strings.TrimSpace(*desc)
		}
	})
	if *priority != "" {
		p, err := domain.ParsePriority(*priority)
		if err != nil {
			deps.Store.ClearEditTarget()
			return err
		}
		update.Priority = p
	}
	if err := domain.ValidateDraft(update.Title, update.Description); err != nil {
		deps.Store.ClearEditTarget()
		return err
	}

	deps.Store.Update(id, update)
	if err := deps.Store.PersistErr(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Out, "✓ Updated %d: %s\n", id, update.Title)
	return nil
}

// VersionCommand prints the build version
func VersionCommand(w io.Writer) error {
	fmt.Fprintf(w, "taskmaster %s\n", Version)
	return nil
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("taskmaster "+name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func parseID(cmd string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s: expected exactly one task id", cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid task id %q", cmd, args[0])
	}
	return id, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// PrintUsage prints CLI usage information
func PrintUsage(w io.Writer) {
	usage := `Usage: taskmaster [options] [command] [arguments]

Commands:
  (no command)                          Start the Task Master TUI
  list [-search s] [-filter f]          List tasks (filter: all|completed|incomplete|high|medium|low)
  add -title t -desc d [-priority p]    Add a task (priority: High|Medium|Low, default Medium)
  toggle <id>                           Mark a task completed or pending
  rm <id>                               Remove a task
  edit <id> [-title] [-desc] [-priority]  Change a task
  version                               Show version information
  help                                  Show this help message

Options:
  -storage file|redis|memory            Storage backend
  -path <file>                          Task file for the file backend
  -theme dark|light                     Color theme
  -ephemeral                            Keep tasks in memory only

Configuration is read from ~/.taskmaster/config.toml, then ./.taskmaster.toml,
then TASKMASTER_* environment variables.
`
	fmt.Fprint(w, usage)
}
