package domain

import "errors"

// ObjectPath identifies a remote bus object. iwd exposes one object per
// adapter, device, network and known network.
type ObjectPath string

// iwd bus names and interfaces.
const (
	IwdService = "net.connman.iwd"

	IfaceKnownNetwork = "net.connman.iwd.KnownNetwork"
	IfaceAdapter      = "net.connman.iwd.Adapter"
	IfaceDevice       = "net.connman.iwd.Device"
	IfaceStation      = "net.connman.iwd.Station"
	IfaceAccessPoint  = "net.connman.iwd.AccessPoint"
	IfaceAdHoc        = "net.connman.iwd.AdHoc"
	IfaceWPS          = "net.connman.iwd.SimpleConfiguration"
	IfaceNetwork      = "net.connman.iwd.Network"
)

// Domain errors.
var (
	ErrUnknownObjectType = errors.New("unknown object type")
	ErrUnknownCoupleType = errors.New("unknown couple type")
	ErrNoWindow          = errors.New("no window is open")
	ErrBusUnavailable    = errors.New("iwd is not running")
	ErrStopped           = errors.New("event loop stopped")
)
