package marstek

import (
	"context"
	"fmt"
	"net"

	"github.com/go-logr/logr"

	"github.com/jsys/marstip/pkg/marstek/types"
)

// Device is one Marstek battery on the local network.
type Device struct {
	Ipv4_ net.IP      `json:"ip"`
	Port_ int         `json:"port"`
	log   logr.Logger `json:"-"`
}

func NewDevice(log logr.Logger, ip net.IP, port int) *Device {
	if port <= 0 {
		port = DefaultPort
	}
	return &Device{
		Ipv4_: ip,
		Port_: port,
		log:   log,
	}
}

func (d *Device) String() string {
	return fmt.Sprintf("%s:%d", d.Ipv4_, d.Port_)
}

func (d *Device) Ipv4() net.IP {
	return d.Ipv4_
}

func (d *Device) Port() int {
	return d.Port_
}

func (d *Device) CallE(ctx context.Context, via types.Channel, verb string, params any) (any, error) {
	mh, err := registrar.MethodHandlerE(verb)
	if err != nil {
		d.log.Error(err, "Unknown method", "verb", verb)
		return nil, err
	}
	return registrar.CallE(ctx, d, via, mh, params)
}

// DeviceInfo is the result of Marstek.GetDevice.
type DeviceInfo struct {
	Device   *string `json:"device,omitempty"`    // Device model name
	Version  *int    `json:"ver,omitempty"`       // Firmware version
	BleMac   *string `json:"ble_mac,omitempty"`   // Bluetooth MAC address
	WifiMac  *string `json:"wifi_mac,omitempty"`  // WiFi MAC address
	WifiName *string `json:"wifi_name,omitempty"` // SSID the device is joined to
	Ip       *string `json:"ip,omitempty"`        // IP address the device reports
}

// GetDeviceParams is the fixed parameter marker of Marstek.GetDevice.
type GetDeviceParams struct {
	BleMac string `json:"ble_mac"`
}

func GetDeviceE(ctx context.Context, via types.Channel, device types.Device) (*DeviceInfo, error) {
	out, err := device.CallE(ctx, via, GetDevice.String(), &GetDeviceParams{BleMac: "0"})
	if err != nil {
		return nil, err
	}
	return out.(*DeviceInfo), nil
}
