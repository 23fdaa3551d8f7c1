package bat

import (
	"context"
	"reflect"

	"github.com/go-logr/logr"

	"github.com/jsys/marstip/pkg/marstek/types"
)

var log logr.Logger

type empty struct{}

type Verb string

const (
	GetStatus Verb = "Bat.GetStatus"
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
