package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strconv"
	"time"

	"github.com/calvinalkan/taskboard/internal/config"
	"github.com/calvinalkan/taskboard/internal/task"
)

// Session is the state shared by every command of one invocation or one
// shell: the store plus the current filter and sort key.
type Session struct {
	cfg    config.Config
	store  *task.Store
	filter task.Filter
	sort   task.SortKey
	log    *slog.Logger
	now    func() time.Time
	stdin  io.Reader
}

func newSession(cfg config.Config, log *slog.Logger, stdin io.Reader) *Session {
	// config.Load already validated DefaultSort.
	key, err := task.ParseSortKey(cfg.DefaultSort)
	if err != nil {
		key = task.SortDueDate
	}

	return &Session{
		cfg:   cfg,
		store: task.NewStore(task.WithLogger(log)),
		sort:  key,
		log:   log,
		now:   time.Now,
		stdin: stdin,
	}
}

// load seeds the store from the configured tasks file. A missing file means
// an empty board; an unreadable or invalid one is reported as a warning and
// also leaves the board empty.
func (s *Session) load(o *IO) {
	path := s.cfg.TasksFileAbs

	tasks, err := task.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("tasks file not found, starting empty", "path", path)

			return
		}

		o.Warn(err.Error(), "starting with an empty board")

		return
	}

	if err := s.store.Load(tasks); err != nil {
		o.Warn(fmt.Sprintf("%s: %v", path, err), "starting with an empty board")

		return
	}

	s.log.Info("tasks file loaded", "path", path, "count", len(tasks))
}

// view returns the tasks matching f, ordered by key.
func (s *Session) view(f task.Filter, key task.SortKey) []task.Task {
	return task.BuildView(s.store.Snapshot(), f, key)
}

// printSummary prints a one-line stats digest. The shell calls it after
// every mutation.
func (s *Session) printSummary(o *IO) {
	st := task.ComputeStats(s.store.Snapshot(), s.now())

	o.Printf("%d tasks, %d pending, %d in progress, %d completed, %d overdue, %d%% done\n",
		st.Total, st.Pending, st.InProgress, st.Completed, st.Overdue, st.CompletionRate)
}

func requireID(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", ErrIDRequired
	}

	return args[0], nil
}

func pluralTasks(n int) string {
	if n == 1 {
		return "1 task"
	}

	return strconv.Itoa(n) + " tasks"
}
