package ffi

import (
	"bytes"
	"encoding/json"

	"github.com/mrigan/sysprims/sysprimserr"
)

// strictDecode parses data into v, rejecting any field not present in v's
// JSON tags. Used for every *Request type so a caller on the other side of
// the FFI boundary gets an immediate, structured error for typos instead of
// silently-ignored fields.
func strictDecode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return sysprimserr.InvalidArgumentf("malformed request: %v", err)
	}
	return nil
}

// checkSchema rejects a request whose schema_id does not match what this
// version of sysprims expects, rather than guessing at compatibility.
func checkSchema(got, want string) error {
	if got != want {
		return sysprimserr.InvalidArgumentf("unexpected schema_id %q, expected %q", got, want)
	}
	return nil
}
