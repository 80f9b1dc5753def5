package panel

import "github.com/lcalzada-xor/iwbind/internal/core/ports"

func bindAdapterDevice(h0, h1 ports.Handle) {
	a, d := h0.(*Adapter), h1.(*Device)
	a.devices = append(a.devices, d)
	d.adapter = a
}

func unbindAdapterDevice(h0, h1 ports.Handle) {
	a, d := h0.(*Adapter), h1.(*Device)
	a.devices = without(a.devices, d)
	if d.adapter == a {
		d.adapter = nil
	}
}

func bindDeviceStation(h0, h1 ports.Handle) {
	d, st := h0.(*Device), h1.(*Station)
	d.station = st
	st.device = d
}

func unbindDeviceStation(h0, h1 ports.Handle) {
	d, st := h0.(*Device), h1.(*Station)
	if d.station == st {
		d.station = nil
	}
	st.device = nil
}

func bindDeviceAP(h0, h1 ports.Handle) {
	d, ap := h0.(*Device), h1.(*AccessPoint)
	d.ap = ap
	ap.device = d
}

func unbindDeviceAP(h0, h1 ports.Handle) {
	d, ap := h0.(*Device), h1.(*AccessPoint)
	if d.ap == ap {
		d.ap = nil
	}
	ap.device = nil
}

func bindDeviceAdHoc(h0, h1 ports.Handle) {
	d, ah := h0.(*Device), h1.(*AdHoc)
	d.adhoc = ah
	ah.device = d
}

func unbindDeviceAdHoc(h0, h1 ports.Handle) {
	d, ah := h0.(*Device), h1.(*AdHoc)
	if d.adhoc == ah {
		d.adhoc = nil
	}
	ah.device = nil
}

func bindDeviceWPS(h0, h1 ports.Handle) {
	d, p := h0.(*Device), h1.(*WPS)
	d.wps = p
	p.device = d
}

func unbindDeviceWPS(h0, h1 ports.Handle) {
	d, p := h0.(*Device), h1.(*WPS)
	if d.wps == p {
		d.wps = nil
	}
	p.device = nil
}
