package store

import (
	"reflect"
	"testing"

	"github.com/matsen/refcite/internal/reference"
)

func TestUsage(t *testing.T) {
	s, err := New(
		reference.Record{Name: "Smith 2020"},
		reference.Record{Name: "Adams 2001"},
		reference.Record{Name: "Brown 1999"},
	)
	if err != nil {
		t.Fatal(err)
	}

	u := NewUsage()
	u.MarkUsed("Smith 2020")
	u.MarkUsed("adams 2001")
	u.MarkUsed("SMITH 2020")
	u.MarkUsed("Ghost 1900")

	if u.Len() != 3 {
		t.Errorf("Len() = %d, want 3", u.Len())
	}
	want := []string{"adams-2001", "ghost-1900", "smith-2020"}
	if !reflect.DeepEqual(u.IDs(), want) {
		t.Errorf("IDs() = %v, want %v", u.IDs(), want)
	}

	var used []string
	for _, r := range s.Used(u) {
		used = append(used, r.Name)
	}
	if !reflect.DeepEqual(used, []string{"Adams 2001", "Smith 2020"}) {
		t.Errorf("Used() = %v", used)
	}

	u.Reset()
	if u.Len() != 0 || len(s.Used(u)) != 0 {
		t.Error("Reset() did not clear usage")
	}
}

func TestUsage_IndependentPasses(t *testing.T) {
	first, second := NewUsage(), NewUsage()
	first.MarkUsed("Smith 2020")

	if second.Len() != 0 {
		t.Error("marks leaked between usage contexts")
	}
}
