package marstek

import (
	"context"
	"time"

	"github.com/jsys/marstip/pkg/marstek/bat"
	"github.com/jsys/marstip/pkg/marstek/em"
	"github.com/jsys/marstip/pkg/marstek/es"
	"github.com/jsys/marstip/pkg/marstek/types"
	"github.com/jsys/marstip/pkg/marstek/wifi"
)

// Dashboard is the composed result of six independent status queries,
// assembled fresh on every call.
type Dashboard struct {
	Device    DeviceInfo    `json:"device"`
	Battery   bat.Status    `json:"battery"`
	Energy    es.Status     `json:"energy"`
	Mode      es.ModeStatus `json:"mode"`
	Meter     em.Status     `json:"meter"`
	Wifi      wifi.Status   `json:"wifi"`
	Timestamp string        `json:"timestamp"` // Local wall-clock time, HH:MM:SS
}

// Dashboard issues the six status queries strictly in sequence. A
// transport failure on any query aborts the whole call; a reply that
// fails to decode downgrades that one section to all-unknown and the
// remaining queries still run.
func (m *Manager) Dashboard(ctx context.Context) (*Dashboard, error) {
	d, err := m.device()
	if err != nil {
		return nil, err
	}

	var dashboard Dashboard

	device, err := GetDeviceE(ctx, types.ChannelUdp, d)
	if err := softFail(m, err, GetDevice.String()); err != nil {
		return nil, err
	} else if device != nil {
		dashboard.Device = *device
	}

	energy, err := es.GetStatusE(ctx, types.ChannelUdp, d)
	if err := softFail(m, err, es.GetStatus.String()); err != nil {
		return nil, err
	} else if energy != nil {
		dashboard.Energy = *energy
	}

	battery, err := bat.GetStatusE(ctx, types.ChannelUdp, d)
	if err := softFail(m, err, bat.GetStatus.String()); err != nil {
		return nil, err
	} else if battery != nil {
		dashboard.Battery = *battery
	}

	wifiStatus, err := wifi.GetStatusE(ctx, types.ChannelUdp, d)
	if err := softFail(m, err, wifi.GetStatus.String()); err != nil {
		return nil, err
	} else if wifiStatus != nil {
		dashboard.Wifi = *wifiStatus
	}

	mode, err := es.GetModeE(ctx, types.ChannelUdp, d)
	if err := softFail(m, err, es.GetMode.String()); err != nil {
		return nil, err
	} else if mode != nil {
		dashboard.Mode = *mode
	}

	meter, err := em.GetStatusE(ctx, types.ChannelUdp, d)
	if err := softFail(m, err, em.GetStatus.String()); err != nil {
		return nil, err
	} else if meter != nil {
		dashboard.Meter = *meter
	}

	dashboard.Timestamp = time.Now().Format("15:04:05")
	return &dashboard, nil
}

// softFail decides what one failed query means for the aggregation:
// decode failures leave the section all-unknown, anything else aborts.
func softFail(m *Manager, err error, method string) error {
	if err == nil {
		return nil
	}
	if types.IsKind(err, types.KindCodec) {
		m.log.V(1).Info("Undecodable reply, section left unknown", "method", method, "cause", err.Error())
		return nil
	}
	return err
}
