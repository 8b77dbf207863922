package editor

import (
	"testing"

	"github.com/riordanpawley/taskmaster/internal/domain"
)

func TestNewService(t *testing.T) {
	svc := NewService()
	if svc == nil {
		t.Fatal("NewService returned nil")
	}

	if svc.GetMode() != ModeNormal {
		t.Errorf("Expected ModeNormal, got %v", svc.GetMode())
	}

	if svc.GetFilter() == nil {
		t.Error("Expected non-nil filter")
	}

	if svc.Selector() != domain.SelectAll {
		t.Errorf("Expected selector all, got %v", svc.Selector())
	}
}

func TestService_ExitMode(t *testing.T) {
	svc := NewService()

	// From normal mode, ExitMode should return false
	if svc.ExitMode() {
		t.Error("ExitMode from Normal should return false")
	}

	for _, mode := range []Mode{ModeSearch, ModeFilter, ModeCreate, ModeEdit, ModeConfirm, ModeHelp} {
		svc.SetMode(mode)
		if !svc.ExitMode() {
			t.Errorf("ExitMode from %v should return true", mode)
		}
		if !svc.IsNormal() {
			t.Errorf("Should be in Normal mode after ExitMode from %v", mode)
		}
	}
}

func TestService_SearchQuery(t *testing.T) {
	svc := NewService()

	svc.SetSearchQuery("milk")
	if svc.SearchQuery() != "milk" {
		t.Errorf("Expected 'milk', got '%s'", svc.SearchQuery())
	}
	if !svc.IsFilterActive() {
		t.Error("Expected filter active with a search query")
	}

	svc.ClearSearch()
	if svc.SearchQuery() != "" {
		t.Error("Expected empty search query after ClearSearch")
	}
	if svc.IsFilterActive() {
		t.Error("Expected filter inactive after ClearSearch")
	}
}

func TestService_CycleSelector(t *testing.T) {
	svc := NewService()
	all := domain.Selectors()

	for i := 1; i <= len(all); i++ {
		got := svc.CycleSelector()
		want := all[i%len(all)]
		if got != want {
			t.Errorf("cycle %d: got %v, want %v", i, got, want)
		}
	}

	if svc.Selector() != domain.SelectAll {
		t.Errorf("Expected wrap-around to all, got %v", svc.Selector())
	}
}

func TestService_ApplyFilter(t *testing.T) {
	tasks := []domain.Task{
		{ID: 1, Title: "Buy milk", Priority: domain.PriorityHigh},
		{ID: 2, Title: "Walk dog", Priority: domain.PriorityLow, Completed: true},
		{ID: 3, Title: "Milk the cow", Priority: domain.PriorityLow},
	}

	svc := NewService()
	svc.SetSearchQuery("MILK")
	svc.SetSelector(domain.SelectLow)

	got := svc.ApplyFilter(tasks)
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("Expected only task 3, got %+v", got)
	}

	svc.ClearFilters()
	if svc.IsFilterActive() {
		t.Error("Expected filter inactive after ClearFilters")
	}
	if len(svc.ApplyFilter(tasks)) != 3 {
		t.Error("Expected all tasks after ClearFilters")
	}
}
