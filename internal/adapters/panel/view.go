package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lcalzada-xor/iwbind/internal/core/domain"
)

// View is the JSON description of a surface.
type View struct {
	Title         string             `json:"title"`
	Placeholder   string             `json:"placeholder,omitempty"`
	Adapters      []AdapterView      `json:"adapters"`
	KnownNetworks []KnownNetworkView `json:"known_networks"`
}

type AdapterView struct {
	Path    domain.ObjectPath `json:"path"`
	Name    string            `json:"name"`
	Model   string            `json:"model,omitempty"`
	Vendor  string            `json:"vendor,omitempty"`
	Powered bool              `json:"powered"`
	Devices []DeviceView      `json:"devices"`
}

type DeviceView struct {
	Path        domain.ObjectPath `json:"path"`
	Name        string            `json:"name"`
	Address     string            `json:"address,omitempty"`
	Mode        string            `json:"mode"`
	Powered     bool              `json:"powered"`
	Station     *StationView      `json:"station,omitempty"`
	AccessPoint *ModeView         `json:"access_point,omitempty"`
	AdHoc       *ModeView         `json:"adhoc,omitempty"`
	WPS         bool              `json:"wps"`
}

type StationView struct {
	State            string            `json:"state"`
	ConnectedNetwork domain.ObjectPath `json:"connected_network,omitempty"`
	Scanning         bool              `json:"scanning"`
	Networks         []NetworkView     `json:"networks"`
}

type ModeView struct {
	Started bool   `json:"started"`
	Name    string `json:"name,omitempty"`
}

type NetworkView struct {
	Path      domain.ObjectPath `json:"path"`
	Name      string            `json:"name"`
	Type      string            `json:"type"`
	Connected bool              `json:"connected"`
	Known     bool              `json:"known"`
}

type KnownNetworkView struct {
	Path          domain.ObjectPath `json:"path"`
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	AutoConnect   bool              `json:"autoconnect"`
	LastConnected string            `json:"last_connected,omitempty"`
}

// View implements ports.SurfaceViewer.
func (s *Surface) View() any {
	return s.view()
}

func (s *Surface) view() View {
	v := View{
		Title:         s.title,
		Placeholder:   s.placeholder,
		Adapters:      []AdapterView{},
		KnownNetworks: []KnownNetworkView{},
	}
	if !s.chrome {
		return v
	}

	for _, a := range s.adapters {
		av := AdapterView{
			Path:    a.path,
			Name:    propString(a.proxy, "Name"),
			Model:   propString(a.proxy, "Model"),
			Vendor:  propString(a.proxy, "Vendor"),
			Powered: propBool(a.proxy, "Powered"),
			Devices: []DeviceView{},
		}
		for _, d := range a.devices {
			av.Devices = append(av.Devices, s.deviceView(d))
		}
		v.Adapters = append(v.Adapters, av)
	}

	for _, k := range s.knownNetworks {
		v.KnownNetworks = append(v.KnownNetworks, KnownNetworkView{
			Path:          k.path,
			Name:          propString(k.proxy, "Name"),
			Type:          propString(k.proxy, "Type"),
			AutoConnect:   propBool(k.proxy, "AutoConnect"),
			LastConnected: propString(k.proxy, "LastConnectedTime"),
		})
	}
	return v
}

func (s *Surface) deviceView(d *Device) DeviceView {
	dv := DeviceView{
		Path:    d.path,
		Name:    propString(d.proxy, "Name"),
		Address: propString(d.proxy, "Address"),
		Mode:    propString(d.proxy, "Mode"),
		Powered: propBool(d.proxy, "Powered"),
		WPS:     d.wps != nil,
	}

	if st := d.station; st != nil {
		sv := &StationView{
			State:            propString(st.proxy, "State"),
			ConnectedNetwork: propPath(st.proxy, "ConnectedNetwork"),
			Scanning:         propBool(st.proxy, "Scanning"),
			Networks:         []NetworkView{},
		}
		for _, n := range s.networks {
			if propPath(n.proxy, "Device") != d.path {
				continue
			}
			sv.Networks = append(sv.Networks, NetworkView{
				Path:      n.path,
				Name:      propString(n.proxy, "Name"),
				Type:      propString(n.proxy, "Type"),
				Connected: propBool(n.proxy, "Connected"),
				Known:     propPath(n.proxy, "KnownNetwork") != "",
			})
		}
		dv.Station = sv
	}
	if ap := d.ap; ap != nil {
		dv.AccessPoint = &ModeView{Started: propBool(ap.proxy, "Started"), Name: propString(ap.proxy, "Name")}
	}
	if ah := d.adhoc; ah != nil {
		dv.AdHoc = &ModeView{Started: propBool(ah.proxy, "Started")}
	}
	return dv
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	indentStyle  = lipgloss.NewStyle().PaddingLeft(2)
	noticeStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	knownColumns = []struct {
		title string
		width int
	}{
		{"SSID", 24},
		{"Security", 10},
		{"Autoconnect", 13},
		{"Forget", 8},
		{"Last connection", 20},
	}
)

// Render implements ports.SurfaceViewer with a plain text layout.
func (s *Surface) Render() string {
	v := s.view()
	if v.Placeholder != "" {
		return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(v.Title), noticeStyle.Render(v.Placeholder))
	}

	blocks := []string{titleStyle.Render(v.Title)}
	for _, a := range v.Adapters {
		blocks = append(blocks, renderAdapter(a))
	}
	blocks = append(blocks, headerStyle.Render("Known Networks"), renderKnownNetworks(v.KnownNetworks))
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderAdapter(a AdapterView) string {
	lines := []string{fmt.Sprintf("%s %s", titleStyle.Render(a.Name), mutedStyle.Render(onOff(a.Powered)))}
	for _, d := range a.Devices {
		lines = append(lines, indentStyle.Render(renderDevice(d)))
	}
	return strings.Join(lines, "\n")
}

func renderDevice(d DeviceView) string {
	lines := []string{fmt.Sprintf("%s [%s] %s", d.Name, d.Mode, onOff(d.Powered))}
	switch {
	case d.Station != nil:
		lines = append(lines, "station: "+d.Station.State)
		for _, n := range d.Station.Networks {
			mark := " "
			if n.Connected {
				mark = "*"
			}
			lines = append(lines, fmt.Sprintf("  %s %s (%s)", mark, n.Name, n.Type))
		}
	case d.AccessPoint != nil:
		lines = append(lines, "access point: "+startedStopped(d.AccessPoint.Started)+" "+d.AccessPoint.Name)
	case d.AdHoc != nil:
		lines = append(lines, "ad-hoc: "+startedStopped(d.AdHoc.Started))
	}
	if d.WPS {
		lines = append(lines, mutedStyle.Render("WPS available"))
	}
	return strings.Join(lines, "\n")
}

func renderKnownNetworks(rows []KnownNetworkView) string {
	cells := make([]string, len(knownColumns))
	for i, c := range knownColumns {
		cells[i] = headerStyle.Width(c.width).Render(c.title)
	}
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, cells...)}

	for _, r := range rows {
		values := []string{r.Name, r.Type, yesNo(r.AutoConnect), "forget", r.LastConnected}
		for i, c := range knownColumns {
			cells[i] = lipgloss.NewStyle().Width(c.width).Render(values[i])
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func startedStopped(b bool) string {
	if b {
		return "started"
	}
	return "stopped"
}
