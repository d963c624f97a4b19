package task

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// All disables a Filter field. The empty string does the same.
const All = "all"

// Filter selects tasks for a view. Fields combine with logical AND.
type Filter struct {
	Status   string // exact status, or All
	Search   string // case-insensitive substring of title, description, assignee or category
	Assignee string // exact assignee, or All
	Category string // exact category, or All
}

// Match reports whether t passes every field of f.
func (f Filter) Match(t *Task) bool {
	if !matchExact(f.Status, string(t.Status)) {
		return false
	}

	if !matchExact(f.Assignee, t.Assignee) {
		return false
	}

	if !matchExact(f.Category, t.Category) {
		return false
	}

	return matchSearch(strings.ToLower(f.Search), t)
}

func matchExact(want, got string) bool {
	return want == "" || want == All || want == got
}

// matchSearch expects query already lower-cased.
func matchSearch(query string, t *Task) bool {
	if query == "" {
		return true
	}

	for _, field := range [...]string{t.Title, t.Description, t.Assignee, t.Category} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}

	return false
}

// SortKey names the field a view is ordered by.
type SortKey string

// Supported sort keys.
const (
	SortDueDate  SortKey = "dueDate"
	SortPriority SortKey = "priority"
	SortStatus   SortKey = "status"
	SortAssignee SortKey = "assignee"
	SortTitle    SortKey = "title"
)

// SortKeys lists every supported key.
var SortKeys = []SortKey{SortDueDate, SortPriority, SortStatus, SortAssignee, SortTitle}

// ParseSortKey validates a user-supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(s)
	if !slices.Contains(SortKeys, key) {
		return "", fieldErr("", "sortKey", s, ReasonInvalidSortKey)
	}

	return key, nil
}

// BuildView filters tasks with f and stably sorts the result by key.
//
// The input is not modified. Ties keep their input order. An unknown key
// leaves the filtered order as is.
//
// Ordering per key:
//   - dueDate: ascending; missing or unparseable dates sort as the Unix epoch
//   - priority: descending, High > Medium > Low > anything else
//   - status, assignee, title: ascending, locale-aware
func BuildView(tasks []Task, f Filter, key SortKey) []Task {
	view := make([]Task, 0, len(tasks))

	for i := range tasks {
		if f.Match(&tasks[i]) {
			view = append(view, tasks[i])
		}
	}

	if compare := comparator(key); compare != nil {
		slices.SortStableFunc(view, compare)
	}

	return view
}

func comparator(key SortKey) func(a, b Task) int {
	switch key {
	case SortDueDate:
		return func(a, b Task) int {
			return dueOrEpoch(a.DueDate).Compare(dueOrEpoch(b.DueDate))
		}
	case SortPriority:
		return func(a, b Task) int {
			return cmp.Compare(b.Priority.rank(), a.Priority.rank())
		}
	case SortStatus:
		coll := newCollator()

		return func(a, b Task) int {
			return coll.CompareString(string(a.Status), string(b.Status))
		}
	case SortAssignee:
		coll := newCollator()

		return func(a, b Task) int {
			return coll.CompareString(a.Assignee, b.Assignee)
		}
	case SortTitle:
		coll := newCollator()

		return func(a, b Task) int {
			return coll.CompareString(a.Title, b.Title)
		}
	default:
		return nil
	}
}

// newCollator returns a root-locale collator. Collators are not safe for
// concurrent use, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und)
}

var epoch = time.Unix(0, 0).UTC()

func dueOrEpoch(s string) time.Time {
	if due, ok := parseDate(s, time.UTC); ok {
		return due
	}

	return epoch
}

// Assignees returns the distinct non-empty assignees in tasks, sorted.
func Assignees(tasks []Task) []string {
	return distinct(tasks, func(t *Task) string { return t.Assignee })
}

// Categories returns the distinct non-empty categories in tasks, sorted.
func Categories(tasks []Task) []string {
	return distinct(tasks, func(t *Task) string { return t.Category })
}

func distinct(tasks []Task, field func(*Task) string) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for i := range tasks {
		v := field(&tasks[i])
		if v == "" {
			continue
		}

		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	slices.Sort(out)

	return out
}
