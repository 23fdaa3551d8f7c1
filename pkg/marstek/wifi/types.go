package wifi

// Status is the result of Wifi.GetStatus.
type Status struct {
	Ssid      *string `json:"ssid,omitempty"`   // SSID the device is joined to
	Rssi      *int    `json:"rssi,omitempty"`   // Signal strength in dBm
	StationIp *string `json:"sta_ip,omitempty"` // IP address on the station interface
}
