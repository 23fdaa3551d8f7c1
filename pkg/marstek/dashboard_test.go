package marstek

import (
	"context"
	"regexp"
	"testing"

	"github.com/jsys/marstip/pkg/marstek/types"
)

func fullDeviceResults() map[string]string {
	return map[string]string{
		"Marstek.GetDevice": `{"device":"VenusE","ver":151,"ble_mac":"ac15a2000001","wifi_name":"attic"}`,
		"ES.GetStatus":      `{"bat_soc":72,"bat_power":-420.0,"ongrid_power":180.5}`,
		"Bat.GetStatus":     `{"soc":72,"charg_flag":true,"bat_temp":21.5}`,
		"Wifi.GetStatus":    `{"ssid":"attic","rssi":-51,"sta_ip":"192.168.1.50"}`,
		"ES.GetMode":        `{"mode":"Auto","bat_soc":72}`,
		"EM.GetStatus":      `{"ct_state":1,"total_power":312.0}`,
	}
}

var timestampRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

func TestDashboardComposesAllSections(t *testing.T) {
	addr := startFakeDevice(t, fullDeviceResults())
	m := newTestManager(t, addr)

	snapshot, err := m.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	if snapshot.Device.Device == nil || *snapshot.Device.Device != "VenusE" {
		t.Errorf("Expected device VenusE, got %v", snapshot.Device.Device)
	}
	if snapshot.Device.Version == nil || *snapshot.Device.Version != 151 {
		t.Errorf("Expected ver 151, got %v", snapshot.Device.Version)
	}
	if snapshot.Energy.BatterySoc == nil || *snapshot.Energy.BatterySoc != 72 {
		t.Errorf("Expected bat_soc 72, got %v", snapshot.Energy.BatterySoc)
	}
	if snapshot.Battery.ChargeFlag == nil || !*snapshot.Battery.ChargeFlag {
		t.Errorf("Expected charg_flag true, got %v", snapshot.Battery.ChargeFlag)
	}
	if snapshot.Wifi.StationIp == nil || *snapshot.Wifi.StationIp != "192.168.1.50" {
		t.Errorf("Expected sta_ip, got %v", snapshot.Wifi.StationIp)
	}
	if snapshot.Mode.Mode == nil || *snapshot.Mode.Mode != "Auto" {
		t.Errorf("Expected mode Auto, got %v", snapshot.Mode.Mode)
	}
	if snapshot.Meter.TotalPower == nil || *snapshot.Meter.TotalPower != 312.0 {
		t.Errorf("Expected total_power 312, got %v", snapshot.Meter.TotalPower)
	}
	if !timestampRe.MatchString(snapshot.Timestamp) {
		t.Errorf("Expected HH:MM:SS timestamp, got %q", snapshot.Timestamp)
	}
	// Fields the device never sent stay unknown across sections
	if snapshot.Battery.RatedCapacity != nil {
		t.Errorf("Expected rated_capacity unknown, got %v", *snapshot.Battery.RatedCapacity)
	}
	if snapshot.Meter.PhaseA != nil {
		t.Errorf("Expected a_power unknown, got %v", *snapshot.Meter.PhaseA)
	}
}

func TestDashboardSoftFailsUndecodableSection(t *testing.T) {
	results := fullDeviceResults()
	results["Bat.GetStatus"] = `"garbage"` // well-formed JSON, wrong shape
	addr := startFakeDevice(t, results)
	m := newTestManager(t, addr)

	snapshot, err := m.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	// The battery section alone is all-unknown
	if snapshot.Battery.Soc != nil || snapshot.Battery.ChargeFlag != nil || snapshot.Battery.Temperature != nil {
		t.Errorf("Expected the battery section to be all-unknown, got %+v", snapshot.Battery)
	}
	// Every other section still reflects its own query
	if snapshot.Energy.BatterySoc == nil || *snapshot.Energy.BatterySoc != 72 {
		t.Errorf("Energy section lost its data: %+v", snapshot.Energy)
	}
	if snapshot.Meter.TotalPower == nil || *snapshot.Meter.TotalPower != 312.0 {
		t.Errorf("Meter section lost its data: %+v", snapshot.Meter)
	}
}

func TestDashboardAbortsOnTransportFailure(t *testing.T) {
	results := fullDeviceResults()
	delete(results, "ES.GetStatus") // this query will time out
	addr := startFakeDevice(t, results)
	m := newTestManager(t, addr)

	snapshot, err := m.Dashboard(context.Background())
	if err == nil {
		t.Fatal("Expected the aggregation to abort")
	}
	if snapshot != nil {
		t.Errorf("Expected no partial snapshot, got %+v", snapshot)
	}
	if !types.IsKind(err, types.KindTransport) {
		t.Errorf("Expected a transport error, got %v", err)
	}
	if !types.IsTimeout(err) {
		t.Errorf("Expected the timeout flag, got %v", err)
	}
}
