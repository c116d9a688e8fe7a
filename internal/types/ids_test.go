package types

import "testing"

func TestNewID_Parseable(t *testing.T) {
	id := NewID()
	got, err := ParseID(id)
	if err != nil {
		t.Fatalf("ParseID(NewID()) error = %v", err)
	}
	if got != id {
		t.Errorf("ParseID() = %q, want %q", got, id)
	}
}

func TestNewID_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %q after %d generations", id, i)
		}
		seen[id] = true
	}
}

func TestParseID_Rejects(t *testing.T) {
	tests := []string{
		"",
		"not-a-uuid",
		"12345",
		"zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz",
	}
	for _, s := range tests {
		if _, err := ParseID(s); err == nil {
			t.Errorf("ParseID(%q) error = nil, want error", s)
		}
	}
}

func TestRoastLevel_Valid(t *testing.T) {
	for _, r := range []RoastLevel{RoastDark, RoastMediumDark, RoastMedium, RoastMediumLight, RoastLight} {
		if !r.Valid() {
			t.Errorf("Valid(%q) = false, want true", r)
		}
	}
	for _, r := range []RoastLevel{"", "dark", "Extra Dark", "medium"} {
		if r.Valid() {
			t.Errorf("Valid(%q) = true, want false", r)
		}
	}
}
