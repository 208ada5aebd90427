package giftcard

import "math/rand/v2"

// IDSource returns the next candidate card number. Candidates outside
// [MinCardID, MaxCardID] or already issued are discarded by the Manager.
type IDSource func() int

// RandomIDSource draws uniformly from the card number range.
func RandomIDSource() IDSource {
	return func() int {
		return MinCardID + rand.IntN(cardIDSpaceSize)
	}
}

// NewSeededIDSource returns a reproducible source for the given seed.
func NewSeededIDSource(seed uint64) IDSource {
	generator := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return func() int {
		return MinCardID + generator.IntN(cardIDSpaceSize)
	}
}

// SequenceIDSource replays ids in order and then keeps returning the last one.
func SequenceIDSource(ids ...int) IDSource {
	next := 0
	return func() int {
		if len(ids) == 0 {
			return 0
		}
		id := ids[next]
		if next < len(ids)-1 {
			next++
		}
		return id
	}
}
