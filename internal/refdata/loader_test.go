package refdata

import (
	"context"
	"testing"
	"time"

	"github.com/ticketlane/eventwizard/internal/upstream"
)

type fakeSource struct {
	catCalls  int
	typeCalls int
	cats      []upstream.Category
	types     []upstream.EventType
}

func (f *fakeSource) Categories(ctx context.Context) ([]upstream.Category, error) {
	f.catCalls++
	return f.cats, nil
}

func (f *fakeSource) EventTypes(ctx context.Context) ([]upstream.EventType, error) {
	f.typeCalls++
	return f.types, nil
}

func TestLoader_CachesInProcess(t *testing.T) {
	src := &fakeSource{cats: []upstream.Category{{ID: "c1", Name: "Music"}}}
	l := NewLoader(src, nil, time.Minute, nil)

	for i := 0; i < 3; i++ {
		cats, err := l.Categories(context.Background())
		if err != nil {
			t.Fatalf("Categories: %v", err)
		}
		if len(cats) != 1 {
			t.Fatalf("expected 1 category, got %d", len(cats))
		}
	}

	if src.catCalls != 1 {
		t.Fatalf("expected a single upstream fetch, got %d", src.catCalls)
	}
}

func TestLoader_TTLExpiry(t *testing.T) {
	src := &fakeSource{types: []upstream.EventType{{ID: "t1", Name: "Concert"}}}
	l := NewLoader(src, nil, time.Nanosecond, nil)

	if _, err := l.EventTypes(context.Background()); err != nil {
		t.Fatalf("EventTypes: %v", err)
	}

	time.Sleep(time.Millisecond)

	if _, err := l.EventTypes(context.Background()); err != nil {
		t.Fatalf("EventTypes: %v", err)
	}
	if src.typeCalls != 2 {
		t.Fatalf("expected refetch after expiry, got %d calls", src.typeCalls)
	}
}

func TestFilterSubcategories(t *testing.T) {
	cats := []upstream.Category{
		{ID: "c1", Subcategories: []upstream.Subcategory{
			{ID: "s1", Name: "Jazz", CategoryID: "c1", EventTypeID: "t1"},
			{ID: "s2", Name: "Rock", CategoryID: "c1", EventTypeID: "t2"},
			{ID: "s3", Name: "Open", CategoryID: "c1"}, // no event type: always shown
		}},
		{ID: "c2", Subcategories: []upstream.Subcategory{
			{ID: "s4", Name: "Standup", CategoryID: "c2"},
		}},
	}

	got := FilterSubcategories(cats, "c1", "t1")
	if len(got) != 2 {
		t.Fatalf("expected s1 and s3, got %+v", got)
	}

	got = FilterSubcategories(cats, "", "")
	if len(got) != 4 {
		t.Fatalf("expected all subcategories, got %d", len(got))
	}

	got = FilterSubcategories(cats, "c2", "")
	if len(got) != 1 || got[0].ID != "s4" {
		t.Fatalf("expected only s4, got %+v", got)
	}
}
