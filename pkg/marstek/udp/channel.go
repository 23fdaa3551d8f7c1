package udp

import (
	"context"
	"encoding/json"
	"net"
	"reflect"
	"time"

	"github.com/go-logr/logr"

	"github.com/jsys/marstip/pkg/marstek/types"
)

// One UDP exchange per call: fresh ephemeral endpoint, single send,
// single receive bounded by the command timeout, endpoint closed on
// every return path.

const receiveBufferSize = 4096

// Envelope id for commands. The device echoes whatever it wants; the
// first datagram received on the ephemeral endpoint is the answer.
const requestId = 1

type UdpChannel struct {
	timeout time.Duration
	log     logr.Logger
}

var udpChannel UdpChannel

type empty struct{}

func Init(log logr.Logger, r types.MethodsRegistrar, timeout time.Duration) {
	log.V(1).Info("Init", "package", reflect.TypeOf(empty{}).PkgPath(), "timeout", timeout)
	udpChannel = UdpChannel{
		timeout: timeout,
		log:     log,
	}
	r.RegisterDeviceCaller(types.ChannelUdp, udpChannel.callE)
}

func (ch *UdpChannel) callE(ctx context.Context, device types.Device, mh types.MethodHandler, out any, params any) (any, error) {
	result, err := ch.exchange(ctx, device, mh.Method, params)
	if err != nil {
		ch.log.V(1).Error(err, "UDP exchange failed", "device", device.String(), "method", mh.Method)
		return nil, err
	}
	if result == nil || out == nil {
		return out, nil
	}
	if err := json.Unmarshal(result, out); err != nil {
		return nil, types.NewCodecError(mh.Method+" result", err)
	}
	return out, nil
}

// exchange sends one request datagram and waits for one reply datagram,
// returning the raw "result" payload (nil when the reply carries none).
func (ch *UdpChannel) exchange(ctx context.Context, device types.Device, method string, params any) (json.RawMessage, error) {
	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return nil, types.NewTransportError("bind", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok && deadline.Before(time.Now().Add(ch.timeout)) {
		err = conn.SetReadDeadline(deadline)
	} else {
		err = conn.SetReadDeadline(time.Now().Add(ch.timeout))
	}
	if err != nil {
		return nil, types.NewTransportError("set deadline", err)
	}

	message, err := json.Marshal(Request{
		Id:     requestId,
		Method: method,
		Params: params,
	})
	if err != nil {
		return nil, types.NewCodecError(method+" request", err)
	}

	addr := &net.UDPAddr{IP: device.Ipv4(), Port: device.Port()}
	ch.log.V(1).Info("Calling", "method", method, "device", addr.String())
	if _, err := conn.WriteToUDP(message, addr); err != nil {
		return nil, types.NewTransportError("send", err)
	}

	buf := make([]byte, receiveBufferSize)
	n, _, err := conn.ReadFromUDP(buf)
	if err != nil {
		return nil, types.NewTransportError("receive", err)
	}

	var response Response
	if err := json.Unmarshal(buf[:n], &response); err != nil {
		return nil, types.NewCodecError(method+" reply", err)
	}
	return response.Result, nil
}
