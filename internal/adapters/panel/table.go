package panel

import (
	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

// Objects returns the constructor table, indexed by domain.ObjectType.
func Objects() [domain.NumObjectTypes]ports.ObjectMethods {
	return [domain.NumObjectTypes]ports.ObjectMethods{
		domain.KnownNetworkType: {Interface: domain.IfaceKnownNetwork, New: newKnownNetwork, Remove: removeKnownNetwork},
		domain.AdapterType:      {Interface: domain.IfaceAdapter, New: newAdapter, Remove: removeAdapter},
		domain.DeviceType:       {Interface: domain.IfaceDevice, New: newDevice, Remove: removeDevice},
		domain.StationType:      {Interface: domain.IfaceStation, New: newStation, Remove: removeStation, Indicator: StationIndicator},
		domain.AccessPointType:  {Interface: domain.IfaceAccessPoint, New: newAccessPoint, Remove: removeAccessPoint, Indicator: AccessPointIndicator},
		domain.AdHocType:        {Interface: domain.IfaceAdHoc, New: newAdHoc, Remove: removeAdHoc, Indicator: AdHocIndicator},
		domain.WPSType:          {Interface: domain.IfaceWPS, New: newWPS, Remove: removeWPS},
		domain.NetworkType:      {Interface: domain.IfaceNetwork, New: newNetwork, Remove: removeNetwork},
	}
}

// Couples returns the relationship table, indexed by domain.CoupleType.
func Couples() [domain.NumCoupleTypes]ports.CoupleMethods {
	return [domain.NumCoupleTypes]ports.CoupleMethods{
		domain.AdapterDevice: {Bind: bindAdapterDevice, Unbind: unbindAdapterDevice},
		domain.DeviceStation: {Bind: bindDeviceStation, Unbind: unbindDeviceStation},
		domain.DeviceAP:      {Bind: bindDeviceAP, Unbind: unbindDeviceAP},
		domain.DeviceAdHoc:   {Bind: bindDeviceAdHoc, Unbind: unbindDeviceAdHoc},
		domain.DeviceWPS:     {Bind: bindDeviceWPS, Unbind: unbindDeviceWPS},
	}
}
