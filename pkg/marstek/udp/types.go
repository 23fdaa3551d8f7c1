package udp

import "encoding/json"

// Request is the JSON envelope sent to the device, one datagram per call.
type Request struct {
	Id     uint32 `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params"`
}

// Response is the reply envelope. The device answers with the payload
// under "result"; replies are not correlated back to the request id.
type Response struct {
	Id     uint32          `json:"id"`
	Result json.RawMessage `json:"result"`
}
