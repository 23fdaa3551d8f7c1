package types

import (
	"context"
	"net"
)

// <https://eu.hamedata.com/app/marstek/downloadAgreement.html>

type MethodsRegistrar interface {
	RegisterMethodHandler(verb string, mh MethodHandler)
	RegisterDeviceCaller(ch Channel, dc DeviceCaller)
	CallE(ctx context.Context, d Device, ch Channel, mh MethodHandler, params any) (any, error)
}

type Device interface {
	String() string
	Ipv4() net.IP
	Port() int
	CallE(ctx context.Context, via Channel, verb string, params any) (any, error)
}

type DeviceCaller func(ctx context.Context, device Device, mh MethodHandler, out any, params any) (any, error)

type Channel uint

const (
	ChannelUdp Channel = iota
)

func (ch Channel) String() string {
	return [...]string{"Udp"}[ch]
}

type MethodHandler struct {
	Method   string     `json:"method"` // The method name
	Allocate func() any `json:"-"`      // Allocate a new instance of the output type
}

var MethodNotFound = MethodHandler{}
