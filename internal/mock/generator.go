package mock

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/lcalzada-xor/iwbind/internal/core/domain"
)

// Default object paths of the seeded tree.
const (
	AdapterPath domain.ObjectPath = "/net/connman/iwd/0"
	DevicePath  domain.ObjectPath = "/net/connman/iwd/0/4"
)

// Scenario names accepted by Seed.
const (
	ScenarioStation = "station"
	ScenarioAP      = "ap"
	ScenarioEmpty   = "empty"
)

var seedNetworks = []struct {
	ssid     string
	security string
	known    bool
}{
	{"home", "psk", true},
	{"office", "8021x", true},
	{"cafe", "open", false},
	{"neighbour", "psk", false},
}

// NetworkPath returns the network object path for ssid on the default device.
func NetworkPath(ssid, security string) domain.ObjectPath {
	return domain.ObjectPath(fmt.Sprintf("%s/%x_%s", DevicePath, ssid, security))
}

// KnownNetworkPath returns the known network object path for ssid.
func KnownNetworkPath(ssid, security string) domain.ObjectPath {
	return domain.ObjectPath(fmt.Sprintf("/net/connman/iwd/%x_%s", ssid, security))
}

// Seed fills bus with the object tree of the named scenario.
func Seed(bus *Bus, scenario string) error {
	switch scenario {
	case ScenarioEmpty:
		return nil
	case ScenarioStation, "":
		seedAdapter(bus, "station")
		bus.AddInterface(DevicePath, domain.IfaceStation, map[string]any{
			"State":    "connected",
			"Scanning": false,
		})
		bus.AddInterface(DevicePath, domain.IfaceWPS, nil)
		seedNetworkList(bus)
		bus.SetProperty(DevicePath, domain.IfaceStation, "ConnectedNetwork", NetworkPath("home", "psk"))
		bus.SetProperty(NetworkPath("home", "psk"), domain.IfaceNetwork, "Connected", true)
		return nil
	case ScenarioAP:
		seedAdapter(bus, "ap")
		bus.AddInterface(DevicePath, domain.IfaceAccessPoint, map[string]any{
			"Started": true,
			"Name":    "iwbind-ap",
		})
		for _, n := range seedNetworks {
			if n.known {
				addKnown(bus, n.ssid, n.security)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown mock scenario %q", scenario)
	}
}

func seedAdapter(bus *Bus, mode string) {
	bus.AddInterface(AdapterPath, domain.IfaceAdapter, map[string]any{
		"Name":    "phy0",
		"Model":   "Wireless 8265",
		"Vendor":  "Intel Corporation",
		"Powered": true,
	})
	bus.AddInterface(DevicePath, domain.IfaceDevice, map[string]any{
		"Name":    "wlan0",
		"Address": "02:00:00:00:00:04",
		"Mode":    mode,
		"Powered": true,
		"Adapter": AdapterPath,
	})
}

func seedNetworkList(bus *Bus) {
	for _, n := range seedNetworks {
		props := map[string]any{
			"Name":      n.ssid,
			"Type":      n.security,
			"Connected": false,
			"Device":    DevicePath,
		}
		if n.known {
			props["KnownNetwork"] = addKnown(bus, n.ssid, n.security)
		}
		bus.AddInterface(NetworkPath(n.ssid, n.security), domain.IfaceNetwork, props)
	}
}

func addKnown(bus *Bus, ssid, security string) domain.ObjectPath {
	path := KnownNetworkPath(ssid, security)
	bus.AddInterface(path, domain.IfaceKnownNetwork, map[string]any{
		"Name":              ssid,
		"Type":              security,
		"AutoConnect":       true,
		"LastConnectedTime": time.Now().UTC().Format(time.RFC3339),
	})
	return path
}

// Simulator applies random churn to a seeded bus, standing in for iwd
// reacting to user actions and radio conditions.
type Simulator struct {
	bus    *Bus
	rng    *rand.Rand
	logger *slog.Logger
}

// NewSimulator returns a simulator driving bus. A zero seed picks one from
// the clock.
func NewSimulator(bus *Bus, seed int64, logger *slog.Logger) *Simulator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{bus: bus, rng: rand.New(rand.NewSource(seed)), logger: logger}
}

// Run applies one step per interval until ctx is done.
func (s *Simulator) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Step()
		}
	}
}

// Step applies a single random mutation and returns its name.
func (s *Simulator) Step() string {
	var action string
	switch s.rng.Intn(4) {
	case 0:
		action = s.toggleMode()
	case 1:
		action = s.churnNetwork()
	case 2:
		action = s.churnKnown()
	default:
		action = s.toggleStationState()
	}
	s.logger.Debug("mock bus step", "action", action)
	return action
}

// toggleMode flips the device between station and access point mode the
// way iwd does: mode interfaces go away before their replacements appear.
func (s *Simulator) toggleMode() string {
	if !s.bus.Has(DevicePath, domain.IfaceDevice) {
		seedAdapter(s.bus, "station")
		return "device-added"
	}

	if s.bus.Has(DevicePath, domain.IfaceAccessPoint) {
		s.bus.RemoveInterface(DevicePath, domain.IfaceAccessPoint)
		s.bus.SetProperty(DevicePath, domain.IfaceDevice, "Mode", "station")
		s.bus.AddInterface(DevicePath, domain.IfaceStation, map[string]any{"State": "disconnected", "Scanning": true})
		s.bus.AddInterface(DevicePath, domain.IfaceWPS, nil)
		return "mode-station"
	}

	s.bus.RemoveInterface(DevicePath, domain.IfaceWPS)
	s.bus.RemoveInterface(DevicePath, domain.IfaceStation)
	s.bus.SetProperty(DevicePath, domain.IfaceDevice, "Mode", "ap")
	s.bus.AddInterface(DevicePath, domain.IfaceAccessPoint, map[string]any{"Started": s.rng.Intn(2) == 0, "Name": "iwbind-ap"})
	return "mode-ap"
}

func (s *Simulator) churnNetwork() string {
	n := seedNetworks[s.rng.Intn(len(seedNetworks))]
	path := NetworkPath(n.ssid, n.security)
	if s.bus.Has(path, domain.IfaceNetwork) {
		s.bus.RemoveObject(path)
		return "network-lost"
	}
	if !s.bus.Has(DevicePath, domain.IfaceStation) {
		return "idle"
	}
	s.bus.AddInterface(path, domain.IfaceNetwork, map[string]any{
		"Name":   n.ssid,
		"Type":   n.security,
		"Device": DevicePath,
	})
	return "network-found"
}

func (s *Simulator) churnKnown() string {
	n := seedNetworks[s.rng.Intn(len(seedNetworks))]
	path := KnownNetworkPath(n.ssid, n.security)
	if s.bus.Has(path, domain.IfaceKnownNetwork) {
		s.bus.RemoveObject(path)
		return "known-forgotten"
	}
	addKnown(s.bus, n.ssid, n.security)
	return "known-added"
}

func (s *Simulator) toggleStationState() string {
	states := []string{"connected", "disconnected", "connecting", "roaming"}
	state := states[s.rng.Intn(len(states))]
	if !s.bus.SetProperty(DevicePath, domain.IfaceStation, "State", state) {
		return "idle"
	}
	return "station-" + state
}
