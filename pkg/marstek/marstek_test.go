package marstek

import (
	"encoding/json"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"

	"github.com/jsys/marstip/pkg/marstek/udp"
)

// startFakeDevice runs a battery simulator on loopback. results maps a
// method name to the raw JSON of its "result" payload; methods not in
// the map get no reply at all.
func startFakeDevice(t *testing.T, results map[string]string) *net.UDPAddr {
	t.Helper()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("Failed to bind fake device: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	go func() {
		buf := make([]byte, 4096)
		for {
			n, from, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			var req udp.Request
			if err := json.Unmarshal(buf[:n], &req); err != nil {
				continue
			}
			result, ok := results[req.Method]
			if !ok {
				continue
			}
			reply := fmt.Sprintf(`{"id":%d,"result":%s}`, req.Id, result)
			conn.WriteToUDP([]byte(reply), from)
		}
	}()

	return conn.LocalAddr().(*net.UDPAddr)
}

// newTestManager wires the registrar with a short command timeout and
// selects the fake device when one is given.
func newTestManager(t *testing.T, addr *net.UDPAddr) *Manager {
	t.Helper()
	log := testr.New(t)
	Init(log, 300*time.Millisecond)
	m := NewManager(log)
	if addr != nil {
		m.SelectDevice(addr.IP.String(), addr.Port)
	}
	return m
}
