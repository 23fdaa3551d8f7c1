package es

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-logr/logr"

	"github.com/jsys/marstip/pkg/marstek/types"
)

var log logr.Logger

type empty struct{}

type Verb string

const (
	GetStatus Verb = "ES.GetStatus"
	GetMode   Verb = "ES.GetMode"
	SetMode   Verb = "ES.SetMode"
)

func (v Verb) String() string {
	return string(v)
}

func Init(l logr.Logger, r types.MethodsRegistrar) {
	log = l
	log.V(1).Info("Init", "package", reflect.TypeOf(empty{}).PkgPath())
	r.RegisterMethodHandler(GetStatus.String(), types.MethodHandler{
		Allocate: func() any { return new(Status) },
	})
	r.RegisterMethodHandler(GetMode.String(), types.MethodHandler{
		Allocate: func() any { return new(ModeStatus) },
	})
	r.RegisterMethodHandler(SetMode.String(), types.MethodHandler{
		Allocate: func() any { return new(SetModeResponse) },
	})
}

type statusParams struct {
	Id int `json:"id"`
}

func GetStatusE(ctx context.Context, via types.Channel, device types.Device) (*Status, error) {
	out, err := device.CallE(ctx, via, GetStatus.String(), &statusParams{})
	if err != nil {
		return nil, err
	}
	return out.(*Status), nil
}

func GetModeE(ctx context.Context, via types.Channel, device types.Device) (*ModeStatus, error) {
	out, err := device.CallE(ctx, via, GetMode.String(), &statusParams{})
	if err != nil {
		return nil, err
	}
	return out.(*ModeStatus), nil
}

// BuildModeConfig validates the requested mode against the caller's
// config and produces the exact payload ES.SetMode expects. No network
// I/O happens here: every validation failure is caught before a call.
func BuildModeConfig(mode Mode, cfg *ModeConfig) (*ModeConfig, error) {
	switch mode {
	case ModeAuto:
		return &ModeConfig{Mode: ModeAuto, Auto: &EnableConfig{Enable: 1}}, nil
	case ModeAI:
		return &ModeConfig{Mode: ModeAI, AI: &EnableConfig{Enable: 1}}, nil
	case ModeManual:
		if cfg == nil {
			return nil, types.NewValidationError("Manual mode requires config with manual_cfg")
		}
		if cfg.Manual == nil {
			return nil, types.NewValidationError("Missing manual_cfg in config")
		}
		return &ModeConfig{Mode: ModeManual, Manual: cfg.Manual}, nil
	case ModePassive:
		if cfg == nil {
			return nil, types.NewValidationError("Passive mode requires config with passive_cfg")
		}
		if cfg.Passive == nil {
			return nil, types.NewValidationError("Missing passive_cfg in config")
		}
		return &ModeConfig{Mode: ModePassive, Passive: cfg.Passive}, nil
	default:
		return nil, types.NewValidationError(fmt.Sprintf("Unknown mode: %s", mode))
	}
}

// SetModeE validates and issues a mode change. The device acknowledges
// with set_result; a reply that omits it reads as success, so a
// malformed-but-well-formed-JSON acknowledgement is indistinguishable
// from one.
func SetModeE(ctx context.Context, via types.Channel, device types.Device, mode Mode, cfg *ModeConfig) (bool, error) {
	config, err := BuildModeConfig(mode, cfg)
	if err != nil {
		return false, err
	}
	out, err := device.CallE(ctx, via, SetMode.String(), &SetModeRequest{Id: 0, Config: *config})
	if err != nil {
		log.Error(err, "Unable to set mode", "mode", mode)
		return false, err
	}
	response := out.(*SetModeResponse)
	if response.SetResult != nil {
		return *response.SetResult, nil
	}
	return true, nil
}
