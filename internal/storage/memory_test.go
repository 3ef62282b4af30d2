package storage

import (
	"errors"
	"io/fs"
	"reflect"
	"testing"
)

func TestMemory_CopiesOnWrite(t *testing.T) {
	m := NewMemory()
	fields := Fields{"name": "Smith 2020"}
	if err := m.Write("smith-2020", fields); err != nil {
		t.Fatal(err)
	}

	fields["name"] = "Mutated"
	got, err := m.Read("smith-2020")
	if err != nil {
		t.Fatal(err)
	}
	if got["name"] != "Smith 2020" {
		t.Errorf("stored record changed through caller's map: %v", got)
	}
}

func TestMemory_MissingKeys(t *testing.T) {
	m := NewMemory()
	if _, err := m.Read("x"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Read() error = %v, want fs.ErrNotExist", err)
	}
	if err := m.Delete("x"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Delete() error = %v, want fs.ErrNotExist", err)
	}
}

func TestCopyOf(t *testing.T) {
	d := NewDir(t.TempDir())
	if err := d.Write("a", Fields{"name": "A"}); err != nil {
		t.Fatal(err)
	}
	if err := d.Write("b", Fields{"name": "B"}); err != nil {
		t.Fatal(err)
	}

	m, err := CopyOf(d)
	if err != nil {
		t.Fatalf("CopyOf() error = %v", err)
	}
	keys, _ := m.Keys()
	if !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Errorf("Keys() = %v", keys)
	}

	// Writes to the copy leave the source alone.
	if err := m.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := d.Exists("a"); !ok {
		t.Error("deleting from copy removed source record")
	}
}

func TestMemory_UnquotedDatesStayText(t *testing.T) {
	m := NewMemory()
	m.PutRaw("w-2001", []byte("name: W 2001\ndate: 2001-03-15\n"))
	fields, err := m.Read("w-2001")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if fields["date"] != "2001-03-15" {
		t.Errorf("date = %#v, want \"2001-03-15\"", fields["date"])
	}
}
