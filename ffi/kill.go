package ffi

import (
	"github.com/mrigan/sysprims/sigdispatch"
	"github.com/mrigan/sysprims/sysprimserr"
)

// KillRequest is the JSON request shape for signal dispatch.
// Exactly one of PID or PIDs should be set; PIDs takes SendMany's batch
// semantics.
type KillRequest struct {
	SchemaID string   `json:"schema_id"`
	PID      *uint32  `json:"pid,omitempty"`
	PIDs     []uint32 `json:"pids,omitempty"`
	Signal   string   `json:"signal"`
	Group    bool     `json:"group,omitempty"`
}

// KillResult is the JSON response shape, covering both the single-PID and
// batch cases.
type KillResult struct {
	SchemaID  string              `json:"schema_id"`
	Succeeded []uint32            `json:"succeeded,omitempty"`
	Failed    []KillResultFailure `json:"failed,omitempty"`
	Error     *Error              `json:"error,omitempty"`
}

// KillResultFailure is one per-PID failure entry in a batch KillResult.
type KillResultFailure struct {
	PID   uint32 `json:"pid"`
	Error *Error `json:"error"`
}

// DecodeKillRequest strict-decodes and validates req.
func DecodeKillRequest(data []byte) (*KillRequest, error) {
	var req KillRequest
	if err := strictDecode(data, &req); err != nil {
		return nil, err
	}
	if err := checkSchema(req.SchemaID, KillRequestSchemaV1); err != nil {
		return nil, err
	}
	if req.Signal == "" {
		return nil, sysprimserr.InvalidArgumentf("signal must not be empty")
	}
	if req.PID == nil && len(req.PIDs) == 0 {
		return nil, sysprimserr.InvalidArgumentf("exactly one of pid or pids must be set")
	}
	if req.PID != nil && len(req.PIDs) > 0 {
		return nil, sysprimserr.InvalidArgumentf("exactly one of pid or pids must be set, not both")
	}
	return &req, nil
}

// RunKill executes a decoded KillRequest.
func RunKill(req *KillRequest) *KillResult {
	sig, err := sigdispatch.ResolveSignal(req.Signal)
	if err != nil {
		return &KillResult{SchemaID: KillResultSchemaV1, Error: errorFrom(err)}
	}

	if req.PID != nil {
		var sendErr error
		switch {
		case req.Group:
			sendErr = sigdispatch.SendGroup(*req.PID, sig)
		default:
			sendErr = sigdispatch.Send(*req.PID, sig)
		}
		if sendErr != nil {
			return &KillResult{SchemaID: KillResultSchemaV1, Error: errorFrom(sendErr)}
		}
		return &KillResult{SchemaID: KillResultSchemaV1, Succeeded: []uint32{*req.PID}}
	}

	batch, err := sigdispatch.SendMany(req.PIDs, sig)
	if err != nil {
		return &KillResult{SchemaID: KillResultSchemaV1, Error: errorFrom(err)}
	}
	result := &KillResult{SchemaID: KillResultSchemaV1, Succeeded: batch.Succeeded}
	for _, f := range batch.Failed {
		result.Failed = append(result.Failed, KillResultFailure{PID: f.PID, Error: errorFrom(f.Error)})
	}
	return result
}
