package panel

import (
	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

// StationIndicator reports the connection state of a station.
func StationIndicator(p ports.Proxy) domain.IndicatorStatus {
	state := propString(p, "State")
	st := domain.IndicatorStatus{Tooltip: "Disconnected", Icon: "network-wireless-offline"}

	switch state {
	case "connected":
		st.Icon = "network-wireless-connected"
		st.Tooltip = "Connected"
	case "connecting", "roaming":
		st.Icon = "network-wireless-acquiring"
		st.Tooltip = "Connecting"
	case "disconnecting":
		st.Tooltip = "Disconnecting"
	}
	return st
}

// AccessPointIndicator reports whether an access point is running.
func AccessPointIndicator(p ports.Proxy) domain.IndicatorStatus {
	if !propBool(p, "Started") {
		return domain.IndicatorStatus{Icon: "network-wireless-hotspot-off", Tooltip: "Access point stopped"}
	}
	tip := "Access point"
	if name := propString(p, "Name"); name != "" {
		tip += ": " + name
	}
	return domain.IndicatorStatus{Icon: "network-wireless-hotspot", Tooltip: tip}
}

// AdHocIndicator reports whether an ad-hoc network is running.
func AdHocIndicator(p ports.Proxy) domain.IndicatorStatus {
	if !propBool(p, "Started") {
		return domain.IndicatorStatus{Icon: "network-wireless-offline", Tooltip: "Ad-hoc network stopped"}
	}
	return domain.IndicatorStatus{Icon: "network-wireless-adhoc", Tooltip: "Ad-hoc network"}
}
