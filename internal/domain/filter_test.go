package domain

import (
	"reflect"
	"testing"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		input string
		want  Selector
	}{
		{"all", SelectAll},
		{"All", SelectAll},
		{"Completed", SelectCompleted},
		{"incomplete", SelectIncomplete},
		{"pending", SelectIncomplete},
		{"HIGH", SelectHigh},
		{"Medium", SelectMedium},
		{"low", SelectLow},
		{"", SelectAll},
		{"whatever", SelectAll},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseSelector(tt.input); got != tt.want {
				t.Errorf("ParseSelector(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewFilter(t *testing.T) {
	f := NewFilter()
	if f.IsActive() {
		t.Error("NewFilter() should create inactive filter")
	}
}

func TestFilter_IsActive(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		active bool
	}{
		{"empty", Filter{Selector: SelectAll}, false},
		{"zero selector", Filter{}, false},
		{"search", Filter{SearchQuery: "milk", Selector: SelectAll}, true},
		{"selector", Filter{Selector: SelectCompleted}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsActive(); got != tt.active {
				t.Errorf("IsActive() = %v, want %v", got, tt.active)
			}
		})
	}
}

func TestFilter_Matches_Selector(t *testing.T) {
	open := Task{Title: "a", Priority: PriorityHigh}
	done := Task{Title: "b", Priority: PriorityLow, Completed: true}

	tests := []struct {
		selector Selector
		task     Task
		matches  bool
	}{
		{SelectAll, open, true},
		{SelectAll, done, true},
		{SelectCompleted, open, false},
		{SelectCompleted, done, true},
		{SelectIncomplete, open, true},
		{SelectIncomplete, done, false},
		{SelectHigh, open, true},
		{SelectHigh, done, false},
		{SelectLow, done, true},
		{SelectMedium, open, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.selector)+"/"+tt.task.Title, func(t *testing.T) {
			f := Filter{Selector: tt.selector}
			if got := f.Matches(tt.task); got != tt.matches {
				t.Errorf("Matches() = %v, want %v", got, tt.matches)
			}
		})
	}
}

func TestFilter_Matches_SearchIsCaseInsensitive(t *testing.T) {
	task := Task{Title: "Buy Milk"}

	for _, q := range []string{"milk", "MILK", "buy m", "Buy Milk"} {
		f := Filter{SearchQuery: q, Selector: SelectAll}
		if !f.Matches(task) {
			t.Errorf("query %q should match %q", q, task.Title)
		}
	}

	f := Filter{SearchQuery: "bread", Selector: SelectAll}
	if f.Matches(task) {
		t.Error("query bread should not match")
	}
}

func TestFilter_SearchIgnoresDescription(t *testing.T) {
	f := Filter{SearchQuery: "2L", Selector: SelectAll}
	if f.Matches(Task{Title: "Buy milk", Description: "2L"}) {
		t.Error("search should only consider the title")
	}
}

func TestFilter_Clear(t *testing.T) {
	f := &Filter{SearchQuery: "x", Selector: SelectHigh}
	f.Clear()
	if f.IsActive() {
		t.Error("Clear() should deactivate the filter")
	}
}

func TestFilteredView_AllReturnsEverythingInOrder(t *testing.T) {
	tasks := sampleTasks()
	got := FilteredView(tasks, "", "all")
	if !reflect.DeepEqual(got, tasks) {
		t.Errorf("FilteredView(all) = %+v, want %+v", got, tasks)
	}

	got[0].Title = "mutated"
	if tasks[0].Title == "mutated" {
		t.Error("FilteredView result aliases the collection")
	}
}

func TestFilteredView_NoMatches(t *testing.T) {
	got := FilteredView(sampleTasks(), "zzz", "all")
	if len(got) != 0 {
		t.Errorf("expected empty view, got %+v", got)
	}
}

func TestFilteredView_CaseInsensitiveTitleSearch(t *testing.T) {
	tasks := []Task{
		{ID: 1, Title: "A", Description: "d", Priority: PriorityHigh},
		{ID: 2, Title: "B", Description: "d", Priority: PriorityLow},
	}

	got := FilteredView(tasks, "a", "All")
	if len(got) != 1 || got[0].Title != "A" {
		t.Errorf("FilteredView(a) = %+v, want only A", got)
	}
}

func TestFilteredView_PreservesSourceOrder(t *testing.T) {
	tasks := []Task{
		{ID: 5, Title: "task five", Priority: PriorityLow},
		{ID: 1, Title: "task one", Priority: PriorityHigh},
		{ID: 3, Title: "other", Priority: PriorityHigh},
		{ID: 2, Title: "task two", Priority: PriorityHigh},
	}

	got := FilteredView(tasks, "task", "high")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("FilteredView = %+v", got)
	}
}
