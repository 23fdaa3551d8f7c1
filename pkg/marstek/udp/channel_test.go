package udp

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"

	"github.com/jsys/marstip/pkg/marstek/types"
)

type testDevice struct {
	addr *net.UDPAddr
}

func (d *testDevice) String() string {
	return d.addr.String()
}

func (d *testDevice) Ipv4() net.IP {
	return d.addr.IP
}

func (d *testDevice) Port() int {
	return d.addr.Port
}

func (d *testDevice) CallE(ctx context.Context, via types.Channel, verb string, params any) (any, error) {
	return nil, nil
}

// startResponder runs a fake device on loopback. The handler gets each
// decoded request and returns the raw datagram to send back, or nil to
// stay silent.
func startResponder(t *testing.T, handler func(req Request) []byte) *testDevice {
	t.Helper()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("Failed to bind responder: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	go func() {
		buf := make([]byte, 4096)
		for {
			n, from, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			var req Request
			if err := json.Unmarshal(buf[:n], &req); err != nil {
				continue
			}
			if reply := handler(req); reply != nil {
				conn.WriteToUDP(reply, from)
			}
		}
	}()

	return &testDevice{addr: conn.LocalAddr().(*net.UDPAddr)}
}

func testChannel(t *testing.T, timeout time.Duration) *UdpChannel {
	t.Helper()
	return &UdpChannel{timeout: timeout, log: testr.New(t)}
}

type wifiOut struct {
	Ssid      *string `json:"ssid,omitempty"`
	Rssi      *int    `json:"rssi,omitempty"`
	StationIp *string `json:"sta_ip,omitempty"`
}

func TestCallDecodesResult(t *testing.T) {
	device := startResponder(t, func(req Request) []byte {
		if req.Method != "Wifi.GetStatus" {
			t.Errorf("Unexpected method: %s", req.Method)
		}
		return []byte(`{"id":1,"result":{"ssid":"attic","rssi":-47}}`)
	})
	ch := testChannel(t, time.Second)

	out := new(wifiOut)
	mh := types.MethodHandler{Method: "Wifi.GetStatus"}
	got, err := ch.callE(context.Background(), device, mh, out, map[string]int{"id": 0})
	if err != nil {
		t.Fatalf("callE failed: %v", err)
	}
	status := got.(*wifiOut)
	if status.Ssid == nil || *status.Ssid != "attic" {
		t.Errorf("Expected ssid attic, got %v", status.Ssid)
	}
	if status.Rssi == nil || *status.Rssi != -47 {
		t.Errorf("Expected rssi -47, got %v", status.Rssi)
	}
	// Omitted field stays unknown, never a zero default
	if status.StationIp != nil {
		t.Errorf("Expected sta_ip to be unknown, got %q", *status.StationIp)
	}
}

func TestCallMissingResultYieldsEmptyOut(t *testing.T) {
	device := startResponder(t, func(req Request) []byte {
		return []byte(`{"id":1}`)
	})
	ch := testChannel(t, time.Second)

	out := new(wifiOut)
	got, err := ch.callE(context.Background(), device, types.MethodHandler{Method: "Wifi.GetStatus"}, out, nil)
	if err != nil {
		t.Fatalf("callE failed: %v", err)
	}
	status := got.(*wifiOut)
	if status.Ssid != nil || status.Rssi != nil || status.StationIp != nil {
		t.Errorf("Expected all fields unknown, got %+v", status)
	}
}

func TestCallTimesOutWithoutReply(t *testing.T) {
	device := startResponder(t, func(req Request) []byte {
		return nil
	})
	ch := testChannel(t, 100*time.Millisecond)

	_, err := ch.callE(context.Background(), device, types.MethodHandler{Method: "ES.GetStatus"}, new(wifiOut), nil)
	if err == nil {
		t.Fatal("Expected a timeout error")
	}
	if !types.IsKind(err, types.KindTransport) {
		t.Errorf("Expected a transport error, got %v", err)
	}
	if !types.IsTimeout(err) {
		t.Errorf("Expected the timeout flag to be set, got %v", err)
	}
}

func TestCallMalformedReplyIsCodecError(t *testing.T) {
	device := startResponder(t, func(req Request) []byte {
		return []byte(`this is not json`)
	})
	ch := testChannel(t, time.Second)

	_, err := ch.callE(context.Background(), device, types.MethodHandler{Method: "ES.GetStatus"}, new(wifiOut), nil)
	if !types.IsKind(err, types.KindCodec) {
		t.Errorf("Expected a codec error, got %v", err)
	}
	if types.IsTimeout(err) {
		t.Errorf("Codec error must not read as timeout: %v", err)
	}
}

func TestCallResultShapeMismatchIsCodecError(t *testing.T) {
	device := startResponder(t, func(req Request) []byte {
		return []byte(`{"id":1,"result":"unexpected"}`)
	})
	ch := testChannel(t, time.Second)

	_, err := ch.callE(context.Background(), device, types.MethodHandler{Method: "Bat.GetStatus"}, new(wifiOut), nil)
	if !types.IsKind(err, types.KindCodec) {
		t.Errorf("Expected a codec error, got %v", err)
	}
}

func TestCallHonorsEarlierContextDeadline(t *testing.T) {
	device := startResponder(t, func(req Request) []byte {
		return nil
	})
	ch := testChannel(t, 10*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := ch.callE(ctx, device, types.MethodHandler{Method: "ES.GetStatus"}, new(wifiOut), nil)
	if !types.IsTimeout(err) {
		t.Fatalf("Expected a timeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Context deadline not honored, blocked for %v", elapsed)
	}
}
