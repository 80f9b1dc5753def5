package panel

import (
	"fmt"

	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

func propString(p ports.Proxy, name string) string {
	v, ok := p.Property(name)
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case domain.ObjectPath:
		return string(s)
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}

func propBool(p ports.Proxy, name string) bool {
	v, ok := p.Property(name)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func propPath(p ports.Proxy, name string) domain.ObjectPath {
	return domain.ObjectPath(propString(p, name))
}

func without[T comparable](list []T, v T) []T {
	for i, e := range list {
		if e == v {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
