package marstek

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/go-logr/logr"

	"github.com/jsys/marstip/pkg/marstek/bat"
	"github.com/jsys/marstip/pkg/marstek/em"
	"github.com/jsys/marstip/pkg/marstek/es"
	"github.com/jsys/marstip/pkg/marstek/types"
	"github.com/jsys/marstip/pkg/marstek/udp"
	"github.com/jsys/marstip/pkg/marstek/wifi"
)

// Local API of Marstek Venus storage batteries: JSON over UDP, one
// datagram per request and per reply, default port 30000.

type Verb string

func (v Verb) String() string {
	return string(v)
}

const (
	GetDevice Verb = "Marstek.GetDevice"
)

// CommandTimeout bounds every single request/reply exchange.
const CommandTimeout = 5000 * time.Millisecond

type empty struct{}

func Init(log logr.Logger, timeout time.Duration) {
	log.V(1).Info("Init", "package", reflect.TypeOf(empty{}).PkgPath())
	registrar.Init(log)

	registrar.RegisterMethodHandler(GetDevice.String(), types.MethodHandler{
		Allocate: func() any { return new(DeviceInfo) },
	})

	es.Init(log, &registrar)
	bat.Init(log, &registrar)
	wifi.Init(log, &registrar)
	em.Init(log, &registrar)
	udp.Init(log, &registrar, timeout)
}

var registrar Registrar

// return singleton registrar
func GetRegistrar() *Registrar {
	return &registrar
}

type Registrar struct {
	log      logr.Logger
	methods  map[string]types.MethodHandler
	channels []types.DeviceCaller
}

func (r *Registrar) Init(log logr.Logger) {
	r.log = log
	r.channels = make([]types.DeviceCaller, 1 /*sizeof(Channel)*/)
	r.methods = make(map[string]types.MethodHandler)
}

func (r *Registrar) MethodHandlerE(verb string) (types.MethodHandler, error) {
	mh, ok := r.methods[verb]
	if !ok {
		return types.MethodNotFound, fmt.Errorf("method not found in registrar: %s", verb)
	}
	return mh, nil
}

func (r *Registrar) RegisterMethodHandler(verb string, mh types.MethodHandler) {
	mh.Method = verb
	if mh.Allocate == nil {
		mh.Allocate = func() any {
			return make(map[string]interface{})
		}
	}
	r.methods[verb] = mh
}

func (r *Registrar) RegisterDeviceCaller(ch types.Channel, dc types.DeviceCaller) {
	r.log.V(1).Info("Registering", "channel", ch)
	r.channels[ch] = dc
}

func (r *Registrar) CallE(ctx context.Context, d types.Device, ch types.Channel, mh types.MethodHandler, params any) (any, error) {
	out := mh.Allocate()
	r.log.V(1).Info("Calling", "channel", ch, "method", mh.Method, "params", params)
	return r.channels[ch](ctx, d, mh, out, params)
}
