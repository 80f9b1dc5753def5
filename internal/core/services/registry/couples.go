package registry

import (
	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

// CoupleEntry holds the two sides of one relationship instance.
// A nil slot means that side has not registered yet, or has left.
type CoupleEntry struct {
	Path  domain.ObjectPath
	Sides [2]ports.Handle
}

// Bound reports whether both sides are present.
func (e CoupleEntry) Bound() bool {
	return e.Sides[0] != nil && e.Sides[1] != nil
}

// ChangeFunc is called after every bind or unbind callback.
type ChangeFunc func(couple domain.CoupleType, path domain.ObjectPath, bound bool)

// Couples tracks partially and fully bound relationships between panels.
//
// Bind fires when an entry gains its second side; unbind fires when a fully
// bound entry loses one. Entries with one side left are kept because iwd does
// not order the two sides' announcements.
type Couples struct {
	methods  [domain.NumCoupleTypes]ports.CoupleMethods
	buckets  [domain.NumCoupleTypes][]*CoupleEntry
	onChange ChangeFunc
}

// NewCouples returns an empty registry dispatching to methods.
func NewCouples(methods [domain.NumCoupleTypes]ports.CoupleMethods) *Couples {
	return &Couples{methods: methods}
}

// OnChange installs a hook observing bind and unbind callbacks.
func (c *Couples) OnChange(fn ChangeFunc) {
	c.onChange = fn
}

// Register fills side of the entry keyed by path, creating it if needed.
//
// If the first entry for path already has that side occupied, the path was
// reused by a new object: a fresh entry is inserted ahead of the old one,
// carrying h and a copy of the other side, and the old entry is left for
// its own removal to unwind.
func (c *Couples) Register(ct domain.CoupleType, side domain.Side, h ports.Handle, path domain.ObjectPath) {
	bucket := c.buckets[ct]

	for i, e := range bucket {
		if e.Path != path {
			continue
		}

		entry := e
		if e.Sides[side] == nil {
			e.Sides[side] = h
		} else {
			entry = &CoupleEntry{Path: path}
			entry.Sides[side] = h
			entry.Sides[side.Other()] = e.Sides[side.Other()]

			bucket = append(bucket, nil)
			copy(bucket[i+1:], bucket[i:])
			bucket[i] = entry
			c.buckets[ct] = bucket
		}

		if entry.Bound() {
			c.bind(ct, entry)
		}
		return
	}

	entry := &CoupleEntry{Path: path}
	entry.Sides[side] = h
	c.buckets[ct] = append(bucket, entry)
}

// Unregister clears h from side of every entry holding it. Entries left
// empty are deleted; fully bound entries are unbound first.
// Matching is by handle because paths are reused across churn.
func (c *Couples) Unregister(ct domain.CoupleType, side domain.Side, h ports.Handle) {
	if h == nil {
		return
	}
	bucket := c.buckets[ct]
	kept := bucket[:0]

	for _, e := range bucket {
		if e.Sides[side] != h {
			kept = append(kept, e)
			continue
		}
		if e.Sides[side.Other()] == nil {
			continue
		}
		c.unbind(ct, e)
		e.Sides[side] = nil
		kept = append(kept, e)
	}

	for i := len(kept); i < len(bucket); i++ {
		bucket[i] = nil
	}
	c.buckets[ct] = kept
}

// Len returns the number of entries of type ct.
func (c *Couples) Len(ct domain.CoupleType) int {
	return len(c.buckets[ct])
}

// Entries returns copies of the entries of type ct, in list order.
func (c *Couples) Entries(ct domain.CoupleType) []CoupleEntry {
	out := make([]CoupleEntry, 0, len(c.buckets[ct]))
	for _, e := range c.buckets[ct] {
		out = append(out, *e)
	}
	return out
}

// States summarizes every entry for snapshots.
func (c *Couples) States() []domain.CoupleState {
	var out []domain.CoupleState
	for ct := range c.buckets {
		for _, e := range c.buckets[ct] {
			out = append(out, domain.CoupleState{
				Couple: domain.CoupleType(ct).String(),
				Path:   e.Path,
				Sides:  [2]bool{e.Sides[0] != nil, e.Sides[1] != nil},
				Bound:  e.Bound(),
			})
		}
	}
	return out
}

func (c *Couples) bind(ct domain.CoupleType, e *CoupleEntry) {
	if fn := c.methods[ct].Bind; fn != nil {
		fn(e.Sides[0], e.Sides[1])
	}
	if c.onChange != nil {
		c.onChange(ct, e.Path, true)
	}
}

func (c *Couples) unbind(ct domain.CoupleType, e *CoupleEntry) {
	if fn := c.methods[ct].Unbind; fn != nil {
		fn(e.Sides[0], e.Sides[1])
	}
	if c.onChange != nil {
		c.onChange(ct, e.Path, false)
	}
}
