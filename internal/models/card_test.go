package models

import (
	"strings"
	"testing"
)

func TestNewCardID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewCardID()
		if len(id) <= 9 {
			t.Fatalf("id %q too short", id)
		}
		for _, c := range id {
			if !strings.ContainsRune(cardIDAlphabet, c) {
				t.Fatalf("id %q contains non-base36 character %q", id, c)
			}
		}
		if seen[id] {
			t.Fatalf("duplicate id %q after %d draws", id, i)
		}
		seen[id] = true
	}
}
