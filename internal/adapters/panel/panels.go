package panel

import (
	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

// Adapter is the panel of a physical radio.
type Adapter struct {
	proxy   ports.Proxy
	path    domain.ObjectPath
	devices []*Device
}

func newAdapter(w ports.Window, obj ports.Object, proxy ports.Proxy) ports.Handle {
	a := &Adapter{proxy: proxy, path: obj.Path()}
	if s := surfaceOf(w); s != nil {
		s.adapters = append(s.adapters, a)
	}
	w.Register(domain.AdapterDevice, domain.Side0, a, obj.Path())
	return a
}

func removeAdapter(w ports.Window, h ports.Handle) {
	a := h.(*Adapter)
	w.Unregister(domain.AdapterDevice, domain.Side0, a)
	if s := surfaceOf(w); s != nil {
		s.adapters = without(s.adapters, a)
	}
}

// Devices returns the devices bound to the adapter.
func (a *Adapter) Devices() []*Device { return a.devices }

// Device is the panel of a network interface. It is coupled to its adapter
// and to whichever mode sub-panel is active.
type Device struct {
	proxy       ports.Proxy
	path        domain.ObjectPath
	adapterPath domain.ObjectPath

	adapter *Adapter
	station *Station
	ap      *AccessPoint
	adhoc   *AdHoc
	wps     *WPS
}

func newDevice(w ports.Window, obj ports.Object, proxy ports.Proxy) ports.Handle {
	d := &Device{
		proxy:       proxy,
		path:        obj.Path(),
		adapterPath: propPath(proxy, "Adapter"),
	}
	if d.adapterPath != "" {
		w.Register(domain.AdapterDevice, domain.Side1, d, d.adapterPath)
	}
	w.Register(domain.DeviceStation, domain.Side0, d, d.path)
	w.Register(domain.DeviceAP, domain.Side0, d, d.path)
	w.Register(domain.DeviceAdHoc, domain.Side0, d, d.path)
	w.Register(domain.DeviceWPS, domain.Side0, d, d.path)
	return d
}

func removeDevice(w ports.Window, h ports.Handle) {
	d := h.(*Device)
	w.Unregister(domain.DeviceWPS, domain.Side0, d)
	w.Unregister(domain.DeviceAdHoc, domain.Side0, d)
	w.Unregister(domain.DeviceAP, domain.Side0, d)
	w.Unregister(domain.DeviceStation, domain.Side0, d)
	w.Unregister(domain.AdapterDevice, domain.Side1, d)
}

// Adapter returns the bound adapter panel, or nil.
func (d *Device) Adapter() *Adapter { return d.adapter }

// Station returns the bound station panel, or nil.
func (d *Device) Station() *Station { return d.station }

// AccessPoint returns the bound access point panel, or nil.
func (d *Device) AccessPoint() *AccessPoint { return d.ap }

// AdHoc returns the bound ad-hoc panel, or nil.
func (d *Device) AdHoc() *AdHoc { return d.adhoc }

// WPS returns the bound WPS panel, or nil.
func (d *Device) WPS() *WPS { return d.wps }

// Station is the station-mode panel of a device.
type Station struct {
	proxy  ports.Proxy
	path   domain.ObjectPath
	device *Device
}

func newStation(w ports.Window, obj ports.Object, proxy ports.Proxy) ports.Handle {
	st := &Station{proxy: proxy, path: obj.Path()}
	w.Register(domain.DeviceStation, domain.Side1, st, st.path)
	return st
}

func removeStation(w ports.Window, h ports.Handle) {
	w.Unregister(domain.DeviceStation, domain.Side1, h)
}

// AccessPoint is the AP-mode panel of a device.
type AccessPoint struct {
	proxy  ports.Proxy
	path   domain.ObjectPath
	device *Device
}

func newAccessPoint(w ports.Window, obj ports.Object, proxy ports.Proxy) ports.Handle {
	ap := &AccessPoint{proxy: proxy, path: obj.Path()}
	w.Register(domain.DeviceAP, domain.Side1, ap, ap.path)
	return ap
}

func removeAccessPoint(w ports.Window, h ports.Handle) {
	w.Unregister(domain.DeviceAP, domain.Side1, h)
}

// AdHoc is the ad-hoc-mode panel of a device.
type AdHoc struct {
	proxy  ports.Proxy
	path   domain.ObjectPath
	device *Device
}

func newAdHoc(w ports.Window, obj ports.Object, proxy ports.Proxy) ports.Handle {
	ah := &AdHoc{proxy: proxy, path: obj.Path()}
	w.Register(domain.DeviceAdHoc, domain.Side1, ah, ah.path)
	return ah
}

func removeAdHoc(w ports.Window, h ports.Handle) {
	w.Unregister(domain.DeviceAdHoc, domain.Side1, h)
}

// WPS is the push-button / PIN configuration panel of a device.
type WPS struct {
	proxy  ports.Proxy
	path   domain.ObjectPath
	device *Device
}

func newWPS(w ports.Window, obj ports.Object, proxy ports.Proxy) ports.Handle {
	p := &WPS{proxy: proxy, path: obj.Path()}
	w.Register(domain.DeviceWPS, domain.Side1, p, p.path)
	return p
}

func removeWPS(w ports.Window, h ports.Handle) {
	w.Unregister(domain.DeviceWPS, domain.Side1, h)
}

// Network is a network visible to a station.
type Network struct {
	proxy ports.Proxy
	path  domain.ObjectPath
}

func newNetwork(w ports.Window, obj ports.Object, proxy ports.Proxy) ports.Handle {
	n := &Network{proxy: proxy, path: obj.Path()}
	if s := surfaceOf(w); s != nil {
		s.networks = append(s.networks, n)
	}
	return n
}

func removeNetwork(w ports.Window, h ports.Handle) {
	if s := surfaceOf(w); s != nil {
		s.networks = without(s.networks, h.(*Network))
	}
}

// KnownNetwork is a row of the known networks table.
type KnownNetwork struct {
	proxy ports.Proxy
	path  domain.ObjectPath
}

func newKnownNetwork(w ports.Window, obj ports.Object, proxy ports.Proxy) ports.Handle {
	k := &KnownNetwork{proxy: proxy, path: obj.Path()}
	if s := surfaceOf(w); s != nil {
		s.knownNetworks = append(s.knownNetworks, k)
	}
	return k
}

func removeKnownNetwork(w ports.Window, h ports.Handle) {
	if s := surfaceOf(w); s != nil {
		s.knownNetworks = without(s.knownNetworks, h.(*KnownNetwork))
	}
}
