package ui

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/recoverydesk/recovery-console/internal/model"
)

func TestCaseListApplyRendersTable(t *testing.T) {
	app := newTestApp(t, emptyBackend)
	cl := newCaseList(app)

	cases := []model.Case{
		sampleCase(1, model.StatusNew, ""),
		sampleCase(2, model.StatusClosed, "paid in full"),
	}
	cl.apply(atomic.LoadInt64(&cl.gen), cases, nil)

	name, _ := cl.body.GetFrontPage()
	if name != "table" {
		t.Fatalf("front page = %s, want table", name)
	}
	// Header row plus one row per case.
	if got := cl.table.GetRowCount(); got != 3 {
		t.Errorf("row count = %d, want 3", got)
	}
	if got := cl.table.GetCell(1, 0).Text; got != "Acme" {
		t.Errorf("first data cell = %q", got)
	}
	if got := cl.table.GetCell(1, 2).Text; got != "$500.00" {
		t.Errorf("amount cell = %q", got)
	}
}

func TestCaseListApplyEmptyShowsPlaceholder(t *testing.T) {
	app := newTestApp(t, emptyBackend)
	cl := newCaseList(app)

	cl.apply(atomic.LoadInt64(&cl.gen), nil, nil)

	name, _ := cl.body.GetFrontPage()
	if name != "empty" {
		t.Fatalf("front page = %s, want empty", name)
	}
	if !strings.Contains(cl.emptyView.GetText(true), "No cases found") {
		t.Errorf("placeholder text = %q", cl.emptyView.GetText(true))
	}
}

func TestCaseListApplyErrorShowsMessage(t *testing.T) {
	app := newTestApp(t, emptyBackend)
	cl := newCaseList(app)

	cl.apply(atomic.LoadInt64(&cl.gen), nil, errors.New("connection refused"))

	name, _ := cl.body.GetFrontPage()
	if name != "empty" {
		t.Fatalf("front page = %s, want empty", name)
	}
	// Transport errors show the generic fallback, not the raw error.
	if !strings.Contains(cl.emptyView.GetText(true), "Failed to fetch cases") {
		t.Errorf("error text = %q", cl.emptyView.GetText(true))
	}
}

func TestCaseListStaleResponseDropped(t *testing.T) {
	app := newTestApp(t, emptyBackend)
	cl := newCaseList(app)

	stale := atomic.LoadInt64(&cl.gen)
	atomic.AddInt64(&cl.gen, 1) // a newer fetch has started

	cl.apply(stale, []model.Case{sampleCase(1, model.StatusNew, "")}, nil)

	if cl.cases != nil {
		t.Error("stale response must not replace the case list")
	}
	if got := cl.table.GetRowCount(); got > 1 {
		t.Errorf("stale response rendered %d rows", got)
	}
}

func TestCaseListFilterChangeBumpsGeneration(t *testing.T) {
	app := newTestApp(t, emptyBackend)
	cl := newCaseList(app)

	before := atomic.LoadInt64(&cl.gen)
	cl.setFilter(model.CaseFilter{Status: string(model.StatusClosed), SortBy: model.SortByDueDate, Order: model.OrderAsc})
	after := atomic.LoadInt64(&cl.gen)

	if after != before+1 {
		t.Errorf("generation went %d -> %d, want one bump per filter change", before, after)
	}
	if cl.filter.Status != string(model.StatusClosed) {
		t.Errorf("filter not stored: %+v", cl.filter)
	}
}
