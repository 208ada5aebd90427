package giftcard

import "testing"

func TestSeededIDSourceIsReproducible(test *testing.T) {
	test.Parallel()
	first := NewSeededIDSource(42)
	second := NewSeededIDSource(42)
	for index := 0; index < 100; index++ {
		left, right := first(), second()
		if left != right {
			test.Fatalf("draw %d diverged: %d != %d", index, left, right)
		}
		if left < MinCardID || left > MaxCardID {
			test.Fatalf("draw %d out of range: %d", index, left)
		}
	}
}

func TestRandomIDSourceStaysInRange(test *testing.T) {
	test.Parallel()
	source := RandomIDSource()
	for index := 0; index < 1000; index++ {
		if id := source(); id < MinCardID || id > MaxCardID {
			test.Fatalf("id out of range: %d", id)
		}
	}
}

func TestSequenceIDSourceRepeatsLast(test *testing.T) {
	test.Parallel()
	source := SequenceIDSource(11111, 22222)
	got := []int{source(), source(), source()}
	want := []int{11111, 22222, 22222}
	for index := range want {
		if got[index] != want[index] {
			test.Fatalf("expected %v, got %v", want, got)
		}
	}
	if empty := SequenceIDSource(); empty() != 0 {
		test.Fatalf("expected empty sequence to return 0")
	}
}
