package em

// Status is the result of EM.GetStatus, the CT meter readings.
type Status struct {
	CtState    *int     `json:"ct_state,omitempty"`    // CT clamp connection state
	PhaseA     *float64 `json:"a_power,omitempty"`     // Phase A power in W
	PhaseB     *float64 `json:"b_power,omitempty"`     // Phase B power in W
	PhaseC     *float64 `json:"c_power,omitempty"`     // Phase C power in W
	TotalPower *float64 `json:"total_power,omitempty"` // Total measured power in W
}
