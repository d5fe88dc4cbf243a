package ffi

import (
	"time"

	"github.com/mrigan/sysprims/sigdispatch"
	"github.com/mrigan/sysprims/sysprimserr"
	"github.com/mrigan/sysprims/treekill"
)

// TerminateRequest is the JSON request shape for ad-hoc tree termination.
type TerminateRequest struct {
	SchemaID   string `json:"schema_id"`
	PID        uint32 `json:"pid"`
	Signal     string `json:"signal,omitempty"`
	KillSignal string `json:"kill_signal,omitempty"`
	GraceMS    int64  `json:"grace_ms,omitempty"`
	KillMS     int64  `json:"kill_timeout_ms,omitempty"`
}

// TerminateResult is the JSON response shape.
type TerminateResult struct {
	SchemaID string                  `json:"schema_id"`
	Members  []TerminateResultMember `json:"members,omitempty"`
	Escapees bool                    `json:"escapees,omitempty"`
	Error    *Error                  `json:"error,omitempty"`
}

// TerminateResultMember is one PID's outcome within a TerminateResult.
type TerminateResultMember struct {
	PID   uint32 `json:"pid"`
	Alive bool   `json:"alive"`
}

// DecodeTerminateRequest strict-decodes and validates req.
func DecodeTerminateRequest(data []byte) (*TerminateRequest, error) {
	var req TerminateRequest
	if err := strictDecode(data, &req); err != nil {
		return nil, err
	}
	if err := checkSchema(req.SchemaID, TerminateRequestSchemaV1); err != nil {
		return nil, err
	}
	if req.PID == 0 {
		return nil, sysprimserr.InvalidArgumentf("pid must be > 0")
	}
	return &req, nil
}

// RunTerminate executes a decoded TerminateRequest.
func RunTerminate(req *TerminateRequest) *TerminateResult {
	cfg := treekill.Config{
		GraceTimeout: time.Duration(req.GraceMS) * time.Millisecond,
		KillTimeout:  time.Duration(req.KillMS) * time.Millisecond,
	}
	if req.Signal != "" {
		sig, err := sigdispatch.ResolveSignal(req.Signal)
		if err != nil {
			return &TerminateResult{SchemaID: TerminateResultSchemaV1, Error: errorFrom(err)}
		}
		cfg.Signal = sig
	}
	if req.KillSignal != "" {
		sig, err := sigdispatch.ResolveSignal(req.KillSignal)
		if err != nil {
			return &TerminateResult{SchemaID: TerminateResultSchemaV1, Error: errorFrom(err)}
		}
		cfg.KillSignal = sig
	}

	result, err := treekill.Terminate(req.PID, cfg)
	if err != nil {
		return &TerminateResult{SchemaID: TerminateResultSchemaV1, Error: errorFrom(err)}
	}

	out := &TerminateResult{SchemaID: TerminateResultSchemaV1, Escapees: result.Escapees}
	for _, m := range result.Members {
		out.Members = append(out.Members, TerminateResultMember{PID: m.PID, Alive: m.Alive})
	}
	return out
}
