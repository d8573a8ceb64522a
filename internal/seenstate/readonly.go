package seenstate

import "github.com/Monika-msk/vtu-internyet/internal/model"

// ReadOnly wraps a store so dry runs see the real seen set but persist
// nothing: every Save is a no-op, so the next real run reports the same
// listings again.
type ReadOnly struct {
	inner model.SeenStore
}

func NewReadOnly(inner model.SeenStore) *ReadOnly { return &ReadOnly{inner: inner} }

func (s *ReadOnly) Load() *model.SeenState        { return s.inner.Load() }
func (s *ReadOnly) Save(_ *model.SeenState) error { return nil }
