package es

import "encoding/json"

// Energy-system status and operating-mode types. Every status field is
// optional: a field the device omits (or that fails to decode) stays
// nil and is reported as unknown, never as a zero default.

// Status is the result of ES.GetStatus.
type Status struct {
	BatterySoc            *int     `json:"bat_soc,omitempty"`                  // Battery state of charge in %
	BatteryCapacity       *float64 `json:"bat_cap,omitempty"`                  // Remaining battery capacity in Wh
	PvPower               *float64 `json:"pv_power,omitempty"`                 // Solar input power in W
	OngridPower           *float64 `json:"ongrid_power,omitempty"`             // Power exchanged with the grid in W
	OffgridPower          *float64 `json:"offgrid_power,omitempty"`            // Power on the off-grid output in W
	BatteryPower          *float64 `json:"bat_power,omitempty"`                // Battery charge/discharge power in W
	TotalPvEnergy         *float64 `json:"total_pv_energy,omitempty"`          // Lifetime solar energy in kWh
	TotalGridOutputEnergy *float64 `json:"total_grid_output_energy,omitempty"` // Lifetime energy fed to the grid in kWh
	TotalGridInputEnergy  *float64 `json:"total_grid_input_energy,omitempty"`  // Lifetime energy drawn from the grid in kWh
	TotalLoadEnergy       *float64 `json:"total_load_energy,omitempty"`        // Lifetime energy delivered to loads in kWh
}

// ModeStatus is the result of ES.GetMode.
type ModeStatus struct {
	Mode         *string  `json:"mode,omitempty"`          // Active operating mode
	OngridPower  *float64 `json:"ongrid_power,omitempty"`  // Power exchanged with the grid in W
	OffgridPower *float64 `json:"offgrid_power,omitempty"` // Power on the off-grid output in W
	BatterySoc   *int     `json:"bat_soc,omitempty"`       // Battery state of charge in %
}

// Mode names the four operating modes the device accepts.
type Mode string

const (
	ModeAuto    Mode = "Auto"
	ModeAI      Mode = "AI"
	ModeManual  Mode = "Manual"
	ModePassive Mode = "Passive"
)

// EnableConfig is the sub-config the builder synthesizes for Auto and AI.
type EnableConfig struct {
	Enable int `json:"enable"`
}

// ManualConfig is the schedule/time/power sub-config Manual mode requires.
type ManualConfig struct {
	TimeNum   *int    `json:"time_num,omitempty"`   // Schedule slot index
	StartTime *string `json:"start_time,omitempty"` // Slot start, "HH:MM"
	EndTime   *string `json:"end_time,omitempty"`   // Slot end, "HH:MM"
	WeekSet   *int    `json:"week_set,omitempty"`   // Weekday bitmask
	Power     *int    `json:"power,omitempty"`      // Slot power in W
	Enable    *int    `json:"enable,omitempty"`     // Slot enable flag
}

// PassiveConfig is the power/duration sub-config Passive mode requires.
type PassiveConfig struct {
	Power         *int `json:"power,omitempty"`   // Target power in W
	CountdownTime *int `json:"cd_time,omitempty"` // Countdown duration in s
}

// ModeConfig is a tagged choice over the four modes: exactly one of the
// sub-configs matches Mode after validation.
type ModeConfig struct {
	Mode    Mode           `json:"mode"`
	Auto    *EnableConfig  `json:"auto_cfg,omitempty"`
	AI      *EnableConfig  `json:"ai_cfg,omitempty"`
	Manual  *ManualConfig  `json:"manual_cfg,omitempty"`
	Passive *PassiveConfig `json:"passive_cfg,omitempty"`
}

// SetModeRequest is the params payload of ES.SetMode.
type SetModeRequest struct {
	Id     int        `json:"id"`
	Config ModeConfig `json:"config"`
}

// SetModeResponse carries the device's acknowledgement. A reply without
// set_result reads as success.
type SetModeResponse struct {
	SetResult *bool `json:"set_result,omitempty"`
}

// UnmarshalJSON decodes the acknowledgement leniently: only a boolean
// set_result is kept. A result of another shape, or a set_result of
// another type, leaves SetResult nil and so reads as success.
func (r *SetModeResponse) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	raw, present := fields["set_result"]
	if !present {
		return nil
	}
	var ok bool
	if err := json.Unmarshal(raw, &ok); err == nil {
		r.SetResult = &ok
	}
	return nil
}
