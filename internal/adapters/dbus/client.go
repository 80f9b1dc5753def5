// Package dbus connects the binding engine to iwd over the system bus.
package dbus

import (
	"context"
	"fmt"
	"log/slog"

	godbus "github.com/godbus/dbus/v5"

	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

const (
	signalBuffer = 256
	eventBuffer  = 256
)

// Client is a ports.EventSource backed by iwd's object manager.
type Client struct {
	conn    *godbus.Conn
	cache   *cache
	signals chan *godbus.Signal
	events  chan ports.BusEvent
	logger  *slog.Logger
}

var _ ports.EventSource = (*Client)(nil)

// Dial connects to the bus at address, or to the system bus when address is
// empty, and subscribes to iwd's lifecycle signals.
func Dial(ctx context.Context, address string, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		conn *godbus.Conn
		err  error
	)
	if address == "" {
		conn, err = godbus.ConnectSystemBus(godbus.WithContext(ctx))
	} else {
		conn, err = godbus.Connect(address, godbus.WithContext(ctx))
	}
	if err != nil {
		return nil, fmt.Errorf("connect to bus: %w", err)
	}

	matches := [][]godbus.MatchOption{
		{godbus.WithMatchSender(domain.IwdService), godbus.WithMatchInterface(objectManagerIface), godbus.WithMatchMember("InterfacesAdded")},
		{godbus.WithMatchSender(domain.IwdService), godbus.WithMatchInterface(objectManagerIface), godbus.WithMatchMember("InterfacesRemoved")},
		{godbus.WithMatchSender(domain.IwdService), godbus.WithMatchInterface(propertiesIface), godbus.WithMatchMember("PropertiesChanged")},
		{godbus.WithMatchSender(busIface), godbus.WithMatchInterface(busIface), godbus.WithMatchMember("NameOwnerChanged"), godbus.WithMatchArg(0, domain.IwdService)},
	}
	for _, m := range matches {
		if err := conn.AddMatchSignalContext(ctx, m...); err != nil {
			conn.Close()
			return nil, fmt.Errorf("add match rule: %w", err)
		}
	}

	c := &Client{
		conn:    conn,
		cache:   newCache(),
		signals: make(chan *godbus.Signal, signalBuffer),
		events:  make(chan ports.BusEvent, eventBuffer),
		logger:  logger,
	}
	conn.Signal(c.signals)
	return c, nil
}

// Objects implements ports.ObjectManager.
func (c *Client) Objects() []ports.Object {
	return c.cache.snapshot()
}

// Events implements ports.EventSource.
func (c *Client) Events() <-chan ports.BusEvent {
	return c.events
}

// Run announces iwd if it is already running and then translates signals
// until ctx is done or the connection drops.
func (c *Client) Run(ctx context.Context) error {
	running, err := c.nameHasOwner(ctx)
	if err != nil {
		return err
	}
	if running {
		if err := c.appeared(ctx); err != nil {
			return err
		}
	} else {
		c.logger.Warn("iwd is not running, waiting for it to appear")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig, ok := <-c.signals:
			if !ok {
				return fmt.Errorf("bus connection closed")
			}
			if err := c.handle(ctx, sig); err != nil {
				c.logger.Error("Failed to handle bus signal", "signal", sig.Name, "error", err)
			}
		}
	}
}

// Close unsubscribes and closes the bus connection.
func (c *Client) Close() error {
	c.conn.RemoveSignal(c.signals)
	return c.conn.Close()
}

func (c *Client) handle(ctx context.Context, sig *godbus.Signal) error {
	if sig.Name != signalNameOwnerChanged {
		for _, ev := range c.cache.apply(sig) {
			if err := c.send(ctx, ev); err != nil {
				return err
			}
		}
		return nil
	}

	var name, oldOwner, newOwner string
	if err := godbus.Store(sig.Body, &name, &oldOwner, &newOwner); err != nil {
		return fmt.Errorf("decode NameOwnerChanged: %w", err)
	}
	if name != domain.IwdService {
		return nil
	}
	if newOwner == "" {
		c.logger.Warn("iwd vanished from the bus", "owner", oldOwner)
		c.cache.reset()
		return c.send(ctx, ports.BusEvent{Kind: ports.ServiceVanished})
	}
	return c.appeared(ctx)
}

// appeared reloads the tree before announcing iwd, so that the snapshot
// read by the binding loop is complete.
func (c *Client) appeared(ctx context.Context) error {
	var managed managedObjects
	call := c.conn.Object(domain.IwdService, "/").CallWithContext(ctx, objectManagerIface+".GetManagedObjects", 0)
	if err := call.Store(&managed); err != nil {
		return fmt.Errorf("GetManagedObjects: %w", err)
	}

	n := c.cache.load(managed)
	c.logger.Info("iwd appeared on the bus", "objects", n)
	return c.send(ctx, ports.BusEvent{Kind: ports.ServiceAppeared})
}

func (c *Client) nameHasOwner(ctx context.Context) (bool, error) {
	var has bool
	call := c.conn.BusObject().CallWithContext(ctx, busIface+".NameHasOwner", 0, domain.IwdService)
	if err := call.Store(&has); err != nil {
		return false, fmt.Errorf("NameHasOwner: %w", err)
	}
	return has, nil
}

func (c *Client) send(ctx context.Context, ev ports.BusEvent) error {
	select {
	case c.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
