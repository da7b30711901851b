// Package api defines the request and response messages of the
// pokerledger.v1 Connect services. Messages are plain Go structs encoded
// with Codec; money fields are integer cents and timestamps Unix seconds.
package api

import "encoding/json"

// Codec is the Connect codec for api messages. It is registered under the
// name "json" so clients send and accept application/json.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal accepts an empty body as the zero message.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
