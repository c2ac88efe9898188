package ipc

import "encoding/json"

// The wire protocol has no length prefix or delimiter. Both sides accumulate
// received bytes and, after every chunk, try to decode the whole buffer as
// one JSON document. A failed decode is ambiguous between "not yet complete"
// and "malformed"; callers keep reading until the decode succeeds, the peer
// goes away, or a size/time bound trips. This preserves wire compatibility
// with the original protocol, so the encoded form of one message must never
// itself contain a trailing decodable prefix (a property JSON documents
// written by a single Encode call have).

// DecodeCommand attempts to decode buf as exactly one complete Command.
// The second return is false while the buffer does not (yet) hold a full
// document.
func DecodeCommand(buf []byte) (*Command, bool) {
	var cmd Command
	if err := json.Unmarshal(buf, &cmd); err != nil {
		return nil, false
	}
	return &cmd, true
}

// DecodeResponse attempts to decode buf as exactly one complete Response.
func DecodeResponse(buf []byte) (*Response, bool) {
	var resp Response
	if err := json.Unmarshal(buf, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// EncodeCommand renders a Command as a single wire document.
func EncodeCommand(cmd *Command) ([]byte, error) {
	return json.Marshal(cmd)
}

// EncodeResponse renders a Response as a single wire document.
func EncodeResponse(resp *Response) ([]byte, error) {
	return json.Marshal(resp)
}
