package types

import "testing"

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()

	if a.IsZero() || b.IsZero() {
		t.Fatal("Expected non-zero IDs")
	}
	if a == b {
		t.Error("Expected random IDs to differ")
	}
	if _, err := ParseID(a.String()); err != nil {
		t.Errorf("Expected generated ID to parse, got %v", err)
	}
}

func TestNewDeterministicID(t *testing.T) {
	first := NewDeterministicID("assessment", "abc")
	second := NewDeterministicID("assessment", "abc")
	other := NewDeterministicID("session", "abc")

	if first != second {
		t.Errorf("Expected %s, got %s", first, second)
	}
	if first == other {
		t.Error("Expected different kinds to produce different IDs")
	}
}

func TestParseIDRejectsGarbage(t *testing.T) {
	if _, err := ParseID("not-a-uuid"); err == nil {
		t.Error("Expected error for invalid ID")
	}
}

func TestScan(t *testing.T) {
	var id ID
	raw := [16]byte{0x6b, 0xa7, 0xb8, 0x10, 0x9d, 0xad, 0x11, 0xd1, 0x80, 0xb4, 0x00, 0xc0, 0x4f, 0xd4, 0x30, 0xc8}

	if err := id.Scan(raw); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("Expected 6ba7b810-9dad-11d1-80b4-00c04fd430c8, got %s", id)
	}
	if err := id.Scan(nil); err != nil || !id.IsZero() {
		t.Error("Expected nil scan to reset ID")
	}
	if err := id.Scan(42); err == nil {
		t.Error("Expected error scanning int")
	}
}
