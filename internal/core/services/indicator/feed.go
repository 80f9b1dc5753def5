// Package indicator keeps the window-independent list of status indicators.
package indicator

import (
	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

// Indicator mirrors one live proxy for the status indicator.
type Indicator struct {
	Proxy  ports.Proxy
	Update ports.IndicatorSetter
}

// Status invokes the update callback recorded at creation.
func (i *Indicator) Status() domain.IndicatorStatus {
	st := i.Update(i.Proxy)
	if st.Path == "" {
		st.Path = i.Proxy.Path()
	}
	if st.Interface == "" {
		st.Interface = i.Proxy.InterfaceName()
	}
	return st
}

// Feed is an ordered list of indicators in discovery order.
type Feed struct {
	entries []*Indicator
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Append adds an indicator for proxy at the tail.
func (f *Feed) Append(proxy ports.Proxy, update ports.IndicatorSetter) *Indicator {
	ind := &Indicator{Proxy: proxy, Update: update}
	f.entries = append(f.entries, ind)
	return ind
}

// Remove unlinks the first indicator subscribed to proxy. Proxies are matched
// by object path and interface name, since the bus layer may hand out a new
// proxy value for the removal.
func (f *Feed) Remove(proxy ports.Proxy) (*Indicator, bool) {
	for i, ind := range f.entries {
		if sameProxy(ind.Proxy, proxy) {
			copy(f.entries[i:], f.entries[i+1:])
			f.entries[len(f.entries)-1] = nil
			f.entries = f.entries[:len(f.entries)-1]
			return ind, true
		}
	}
	return nil, false
}

// Has reports whether an indicator is subscribed to proxy.
func (f *Feed) Has(proxy ports.Proxy) bool {
	for _, ind := range f.entries {
		if sameProxy(ind.Proxy, proxy) {
			return true
		}
	}
	return false
}

// Len returns the number of indicators.
func (f *Feed) Len() int {
	return len(f.entries)
}

// Entries returns the indicators in discovery order.
func (f *Feed) Entries() []*Indicator {
	out := make([]*Indicator, len(f.entries))
	copy(out, f.entries)
	return out
}

// Refresh collects the current state of every indicator.
func (f *Feed) Refresh() []domain.IndicatorStatus {
	out := make([]domain.IndicatorStatus, 0, len(f.entries))
	for _, ind := range f.entries {
		out = append(out, ind.Status())
	}
	return out
}

// Clear drops every indicator and returns the removed entries.
func (f *Feed) Clear() []*Indicator {
	old := f.entries
	f.entries = nil
	return old
}

func sameProxy(a, b ports.Proxy) bool {
	if a == b {
		return true
	}
	return a.Path() == b.Path() && a.InterfaceName() == b.InterfaceName()
}
