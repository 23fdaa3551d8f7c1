package marstek

import (
	"context"
	"net"

	"github.com/go-logr/logr"

	"github.com/jsys/marstip/pkg/marstek/es"
	"github.com/jsys/marstip/pkg/marstek/types"
)

// Manager owns the selected-device slot and exposes the operations the
// hosting application calls. All calls are synchronous and blocking;
// the only bound on blocking time is the per-exchange receive timeout.
type Manager struct {
	log   logr.Logger
	store Store
}

func NewManager(log logr.Logger) *Manager {
	return &Manager{log: log}
}

// SelectDevice overwrites the selected target. A non-positive port
// selects the default port 30000.
func (m *Manager) SelectDevice(host string, port int) {
	m.log.V(1).Info("Selecting device", "host", host, "port", port)
	m.store.Select(host, port)
}

// CurrentDevice returns a copy of the selected target.
func (m *Manager) CurrentDevice() Target {
	return m.store.Current()
}

// device copies the selected target out of the store and resolves it to
// a callable Device. The store lock is already released by the time any
// network I/O can happen.
func (m *Manager) device() (*Device, error) {
	target := m.store.Current()
	if target.Host == "" {
		return nil, types.NewConfigurationError("Device not configured. Call SelectDevice first.")
	}
	ip := net.ParseIP(target.Host)
	if ip == nil {
		ips, err := net.LookupIP(target.Host)
		if err != nil || len(ips) == 0 {
			return nil, types.NewTransportError("resolve "+target.Host, err)
		}
		ip = ips[0]
	}
	return NewDevice(m.log, ip, target.Port), nil
}

// GetMode reads the active operating mode of the selected device.
func (m *Manager) GetMode(ctx context.Context) (*es.ModeStatus, error) {
	d, err := m.device()
	if err != nil {
		return nil, err
	}
	return es.GetModeE(ctx, types.ChannelUdp, d)
}

// SetMode validates the requested mode and issues ES.SetMode against
// the selected device. Validation failures surface before any network
// I/O. The returned bool is the device's set_result acknowledgement;
// a reply that omits it reads as success.
func (m *Manager) SetMode(ctx context.Context, mode es.Mode, cfg *es.ModeConfig) (bool, error) {
	d, err := m.device()
	if err != nil {
		return false, err
	}
	return es.SetModeE(ctx, types.ChannelUdp, d, mode, cfg)
}
