package marstek

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/go-logr/logr"

	"github.com/jsys/marstip/pkg/marstek/types"
	"github.com/jsys/marstip/pkg/marstek/udp"
)

// DiscoveryTimeout bounds the broadcast scan window. It is longer than
// a single command needs and shorter than the command timeout since
// many replies are expected over the window, not one.
const DiscoveryTimeout = 3000 * time.Millisecond

// DiscoveredDevice is one battery that answered the broadcast probe,
// keyed by the source IP of its reply.
type DiscoveredDevice struct {
	Ip      string  `json:"ip"`
	Port    int     `json:"port"`
	Device  *string `json:"device,omitempty"` // Device model name from the reply
	Version *int    `json:"ver,omitempty"`    // Firmware version from the reply
}

// Discover broadcasts a Marstek.GetDevice probe and collects replies
// until the scan window closes. The scan owns its own ephemeral
// endpoint, independent of the selected device.
func (m *Manager) Discover(ctx context.Context) ([]DiscoveredDevice, error) {
	addr := &net.UDPAddr{IP: net.IPv4bcast, Port: DefaultPort}
	return discover(ctx, m.log, addr, DiscoveryTimeout)
}

func discover(ctx context.Context, log logr.Logger, addr *net.UDPAddr, timeout time.Duration) ([]DiscoveredDevice, error) {
	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return nil, types.NewTransportError("bind", err)
	}
	defer conn.Close()

	message, err := json.Marshal(udp.Request{
		Id:     0,
		Method: GetDevice.String(),
		Params: &GetDeviceParams{BleMac: "0"},
	})
	if err != nil {
		return nil, types.NewCodecError("discovery request", err)
	}

	log.V(1).Info("Broadcasting discovery probe", "addr", addr.String(), "window", timeout)
	if _, err := conn.WriteToUDP(message, addr); err != nil {
		return nil, types.NewTransportError("broadcast", err)
	}

	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, types.NewTransportError("set deadline", err)
	}

	devices := make([]DiscoveredDevice, 0)
	seen := make(map[string]bool)
	buf := make([]byte, 4096)

	for {
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			// The scan window closing is the normal way out. Any other
			// receive fault ends the scan the same way; it is logged so
			// genuine socket faults stay visible.
			if ne, ok := err.(net.Error); !ok || !ne.Timeout() {
				log.V(1).Info("Discovery receive ended", "cause", err.Error())
			}
			break
		}

		var response udp.Response
		if err := json.Unmarshal(buf[:n], &response); err != nil {
			continue
		}
		if response.Result == nil {
			continue
		}

		ip := from.IP.String()
		if seen[ip] {
			continue
		}
		seen[ip] = true

		var info DeviceInfo
		// Best effort: a reply whose result is not an object still counts
		// as a responding device, with name and version unknown.
		_ = json.Unmarshal(response.Result, &info)

		log.V(1).Info("Discovered", "ip", ip, "device", info.Device, "ver", info.Version)
		devices = append(devices, DiscoveredDevice{
			Ip:      ip,
			Port:    DefaultPort,
			Device:  info.Device,
			Version: info.Version,
		})
	}

	return devices, nil
}
