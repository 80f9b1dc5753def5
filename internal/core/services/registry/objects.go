package registry

import (
	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

// ObjectEntry is one (remote object, handle) pair in a bucket.
type ObjectEntry struct {
	Path   domain.ObjectPath
	Handle ports.Handle
}

// Objects maps each interface type to the ordered list of panels built for it.
// It never calls constructors or destructors; the window manager does.
type Objects struct {
	buckets [domain.NumObjectTypes][]ObjectEntry
}

// NewObjects returns an empty registry.
func NewObjects() *Objects {
	return &Objects{}
}

// Append records h at the tail of t's bucket.
func (o *Objects) Append(t domain.ObjectType, path domain.ObjectPath, h ports.Handle) {
	o.buckets[t] = append(o.buckets[t], ObjectEntry{Path: path, Handle: h})
}

// Lookup returns the handle of the first entry for path in t's bucket.
func (o *Objects) Lookup(t domain.ObjectType, path domain.ObjectPath) (ports.Handle, bool) {
	if i := o.index(t, path); i >= 0 {
		return o.buckets[t][i].Handle, true
	}
	return nil, false
}

// Remove unlinks the first entry for path in t's bucket and returns its handle.
// A missing entry is not an error.
func (o *Objects) Remove(t domain.ObjectType, path domain.ObjectPath) (ports.Handle, bool) {
	i := o.index(t, path)
	if i < 0 {
		return nil, false
	}
	h := o.buckets[t][i].Handle
	o.unlink(t, i)
	return h, true
}

// Front returns the head of t's bucket.
func (o *Objects) Front(t domain.ObjectType) (ObjectEntry, bool) {
	if len(o.buckets[t]) == 0 {
		return ObjectEntry{}, false
	}
	return o.buckets[t][0], true
}

// PopFront unlinks the head of t's bucket.
func (o *Objects) PopFront(t domain.ObjectType) (ObjectEntry, bool) {
	e, ok := o.Front(t)
	if ok {
		o.unlink(t, 0)
	}
	return e, ok
}

// Len returns the number of entries in t's bucket.
func (o *Objects) Len(t domain.ObjectType) int {
	return len(o.buckets[t])
}

// Total returns the number of entries across all buckets.
func (o *Objects) Total() int {
	n := 0
	for i := range o.buckets {
		n += len(o.buckets[i])
	}
	return n
}

// Entries returns a copy of t's bucket in insertion order.
func (o *Objects) Entries(t domain.ObjectType) []ObjectEntry {
	out := make([]ObjectEntry, len(o.buckets[t]))
	copy(out, o.buckets[t])
	return out
}

func (o *Objects) index(t domain.ObjectType, path domain.ObjectPath) int {
	for i, e := range o.buckets[t] {
		if e.Path == path {
			return i
		}
	}
	return -1
}

func (o *Objects) unlink(t domain.ObjectType, i int) {
	b := o.buckets[t]
	copy(b[i:], b[i+1:])
	b[len(b)-1] = ObjectEntry{}
	o.buckets[t] = b[:len(b)-1]
}
