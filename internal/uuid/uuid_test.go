package uuid

import (
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestForVersion(t *testing.T) {
	for _, version := range []int{4, 7} {
		gen, err := ForVersion(version)
		if err != nil {
			t.Fatalf("ForVersion(%d): %v", version, err)
		}
		id := gen()
		if !IsValid(id) {
			t.Fatalf("generated invalid uuid %q", id)
		}
		if got := googleuuid.MustParse(id).Version(); int(got) != version {
			t.Errorf("expected version %d, got %d", version, got)
		}
	}

	if _, err := ForVersion(1); err == nil {
		t.Error("expected error for unsupported version")
	}
}

func TestGeneratorsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		for _, id := range []string{NewV4(), NewV7()} {
			if seen[id] {
				t.Fatalf("duplicate id %q", id)
			}
			seen[id] = true
		}
	}
}

func TestIsValid(t *testing.T) {
	if IsValid("not-a-uuid") {
		t.Error("expected invalid")
	}
	if !IsValid("f72b6339-ce81-4cf9-9be6-13cc36f2b215") {
		t.Error("expected valid")
	}
}
