package domain

import "fmt"

// ObjectType indexes the static table of supported interfaces.
// The order matches the constructor table and the teardown order.
type ObjectType int

const (
	KnownNetworkType ObjectType = iota
	AdapterType
	DeviceType
	StationType
	AccessPointType
	AdHocType
	WPSType
	NetworkType

	NumObjectTypes = int(NetworkType) + 1
)

var objectTypeNames = [NumObjectTypes]string{
	"known_network",
	"adapter",
	"device",
	"station",
	"access_point",
	"adhoc",
	"wps",
	"network",
}

func (t ObjectType) String() string {
	if t < 0 || int(t) >= NumObjectTypes {
		return fmt.Sprintf("object_type(%d)", int(t))
	}
	return objectTypeNames[t]
}

// Valid reports whether t indexes the object table.
func (t ObjectType) Valid() bool {
	return t >= 0 && int(t) < NumObjectTypes
}

// ParseObjectType is the inverse of ObjectType.String.
func ParseObjectType(s string) (ObjectType, error) {
	for i, name := range objectTypeNames {
		if name == s {
			return ObjectType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownObjectType, s)
}

// CoupleType indexes the static table of relationships between two panels.
type CoupleType int

const (
	AdapterDevice CoupleType = iota
	DeviceStation
	DeviceAP
	DeviceAdHoc
	DeviceWPS

	NumCoupleTypes = int(DeviceWPS) + 1
)

var coupleTypeNames = [NumCoupleTypes]string{
	"adapter_device",
	"device_station",
	"device_ap",
	"device_adhoc",
	"device_wps",
}

func (c CoupleType) String() string {
	if c < 0 || int(c) >= NumCoupleTypes {
		return fmt.Sprintf("couple_type(%d)", int(c))
	}
	return coupleTypeNames[c]
}

// Valid reports whether c indexes the couple table.
func (c CoupleType) Valid() bool {
	return c >= 0 && int(c) < NumCoupleTypes
}

// Side selects one of the two slots of a couple.
// For every couple type, side 0 is the owning panel (adapter or device).
type Side int

const (
	Side0 Side = 0
	Side1 Side = 1
)

// Other returns the opposite side.
func (s Side) Other() Side {
	return 1 - s
}
