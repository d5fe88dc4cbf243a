package ffi

import (
	"encoding/json"
	"testing"
)

func TestDecodeTimeoutRequestRejectsUnknownFields(t *testing.T) {
	data := []byte(`{"schema_id":"` + TimeoutRequestSchemaV1 + `","command":"echo","deadline_ms":1000,"bogus_field":true}`)
	if _, err := DecodeTimeoutRequest(data); err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}

func TestDecodeTimeoutRequestRejectsWrongSchema(t *testing.T) {
	data := []byte(`{"schema_id":"https://example.com/wrong.schema.json","command":"echo","deadline_ms":1000}`)
	if _, err := DecodeTimeoutRequest(data); err == nil {
		t.Fatal("expected an error for a mismatched schema_id")
	}
}

func TestDecodeTimeoutRequestRejectsEmptyCommand(t *testing.T) {
	data := []byte(`{"schema_id":"` + TimeoutRequestSchemaV1 + `","command":"","deadline_ms":1000}`)
	if _, err := DecodeTimeoutRequest(data); err == nil {
		t.Fatal("expected an error for an empty command")
	}
}

func TestRunTimeoutRoundTrip(t *testing.T) {
	req, err := DecodeTimeoutRequest([]byte(`{
		"schema_id": "` + TimeoutRequestSchemaV1 + `",
		"command": "sh",
		"args": ["-c", "exit 3"],
		"deadline_ms": 2000
	}`))
	if err != nil {
		t.Fatalf("DecodeTimeoutRequest failed: %v", err)
	}

	result := RunTimeout(req)
	if result.Error != nil {
		t.Fatalf("RunTimeout failed: %+v", result.Error)
	}
	if result.Status != "completed" {
		t.Fatalf("expected status completed, got %q", result.Status)
	}
	if result.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", result.ExitCode)
	}

	// Confirm the result actually serializes: a stray unexported-only field
	// or bad tag would silently produce an empty object rather than fail.
	blob, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if len(blob) < len(`{"schema_id":""}`) {
		t.Fatalf("serialized result suspiciously short: %s", blob)
	}
}

func TestDecodeKillRequestRejectsBothPIDForms(t *testing.T) {
	pid := uint32(123)
	req := KillRequest{SchemaID: KillRequestSchemaV1, Signal: "TERM", PID: &pid, PIDs: []uint32{456}}
	data, _ := json.Marshal(req)
	if _, err := DecodeKillRequest(data); err == nil {
		t.Fatal("expected an error when both pid and pids are set")
	}
}

func TestDecodeKillRequestRequiresTarget(t *testing.T) {
	req := KillRequest{SchemaID: KillRequestSchemaV1, Signal: "TERM"}
	data, _ := json.Marshal(req)
	if _, err := DecodeKillRequest(data); err == nil {
		t.Fatal("expected an error when neither pid nor pids is set")
	}
}
