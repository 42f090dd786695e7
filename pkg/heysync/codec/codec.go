// Package codec turns published payloads into bytes for the broker adapters.
// The shared heysync.Signal is encoded as nil so that zero-argument events
// carry an empty, well-defined body on every transport.
package codec

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/fotap/heysync/pkg/heysync"
)

// Codec encodes a payload for the wire.
type Codec interface {
	// Name is used as the content-type header value
	Name() string
	Marshal(payload any) ([]byte, error)
}

// JSON encodes payloads with encoding/json.
var JSON Codec = jsonCodec{}

// MsgPack encodes payloads with vmihailenco/msgpack.
var MsgPack Codec = msgpackCodec{}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "application/json" }

func (jsonCodec) Marshal(payload any) ([]byte, error) {
	return json.Marshal(normalize(payload))
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string { return "application/msgpack" }

func (msgpackCodec) Marshal(payload any) ([]byte, error) {
	return msgpack.Marshal(normalize(payload))
}

func normalize(payload any) any {
	if heysync.IsSignal(payload) {
		return nil
	}
	return payload
}
