package bat

// Status is the result of Bat.GetStatus. Fields the device omits stay
// nil and are reported as unknown.
type Status struct {
	Soc           *int     `json:"soc,omitempty"`            // State of charge in %
	ChargeFlag    *bool    `json:"charg_flag,omitempty"`     // Battery is charging
	DischargeFlag *bool    `json:"dischrg_flag,omitempty"`   // Battery is discharging
	Temperature   *float64 `json:"bat_temp,omitempty"`       // Battery temperature in degrees C
	Capacity      *float64 `json:"bat_capacity,omitempty"`   // Remaining capacity in Wh
	RatedCapacity *float64 `json:"rated_capacity,omitempty"` // Rated capacity in Wh
}
