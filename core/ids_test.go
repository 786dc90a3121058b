package core

import "testing"

func TestSequenceNext(t *testing.T) {
	var s Sequence

	if s.Last() != 0 {
		t.Fatalf("Expected zero Last on fresh sequence, got %d", s.Last())
	}

	seen := make(map[SlotID]bool)
	for i := 0; i < 100; i++ {
		id := s.Next()
		if id == 0 {
			t.Fatal("Sequence issued zero id")
		}
		if seen[id] {
			t.Fatalf("Sequence issued duplicate id %d", id)
		}
		seen[id] = true
	}

	if s.Last() != 100 {
		t.Errorf("Expected Last=100, got %d", s.Last())
	}
}
