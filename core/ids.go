package core

// SlotID identifies a pooled slot or a fallback instance
// Zero is never issued and means "no slot"
type SlotID uint64

// PoolID identifies a pool within its registry, assigned in creation order starting at 1
type PoolID uint32

// Category names one action/effect kind (basic attack, special attack, impact)
type Category string

// Sequence issues monotonically increasing SlotIDs
// Shared by a registry and its controller so pooled and fallback handles never collide
type Sequence struct {
	last SlotID
}

// Next returns the next unused id
func (s *Sequence) Next() SlotID {
	s.last++
	return s.last
}

// Last returns the most recently issued id, zero if none
func (s *Sequence) Last() SlotID {
	return s.last
}
