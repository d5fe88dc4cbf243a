package ffi

import (
	"github.com/mrigan/sysprims/spawngroup"
	"github.com/mrigan/sysprims/sysprimserr"
)

// SpawnRequest is the JSON request shape for spawn-in-group.
// Argv[0] is the command itself; Env is a key/value map rather than Go's
// native KEY=VALUE slice, matching the external JSON contract.
type SpawnRequest struct {
	SchemaID string            `json:"schema_id"`
	Argv     []string          `json:"argv"`
	Cwd      string            `json:"cwd,omitempty"`
	Env      map[string]string `json:"env,omitempty"`
}

// SpawnResult is the JSON response shape. Output is not inlined, since it
// may grow unbounded over the group's lifetime; only an in-process caller
// holding RunSpawn's second return value can read it. There is no lookup of
// output by PID.
type SpawnResult struct {
	SchemaID            string   `json:"schema_id"`
	PID                 uint32   `json:"pid,omitempty"`
	TreeKillReliability string   `json:"tree_kill_reliability,omitempty"`
	Warnings            []string `json:"warnings,omitempty"`
	Error               *Error   `json:"error,omitempty"`
}

// DecodeSpawnRequest strict-decodes and validates req.
func DecodeSpawnRequest(data []byte) (*SpawnRequest, error) {
	var req SpawnRequest
	if err := strictDecode(data, &req); err != nil {
		return nil, err
	}
	if err := checkSchema(req.SchemaID, SpawnRequestSchemaV1); err != nil {
		return nil, err
	}
	if len(req.Argv) == 0 || req.Argv[0] == "" {
		return nil, sysprimserr.InvalidArgumentf("argv must not be empty")
	}
	return &req, nil
}

// RunSpawn executes a decoded SpawnRequest. The live *spawngroup.Result
// (including its output buffer) is returned alongside the JSON projection
// so an in-process embedder can still read output directly; a cross-FFI
// caller only receives the JSON fields.
func RunSpawn(req *SpawnRequest) (*SpawnResult, *spawngroup.Result) {
	env := make([]string, 0, len(req.Env))
	for k, v := range req.Env {
		env = append(env, k+"="+v)
	}
	result, err := spawngroup.Spawn(req.Argv[0], req.Argv[1:], spawngroup.Options{
		Dir: req.Cwd,
		Env: env,
	})
	if err != nil {
		return &SpawnResult{SchemaID: SpawnResultSchemaV1, Error: errorFrom(err)}, nil
	}
	return &SpawnResult{
		SchemaID:            SpawnResultSchemaV1,
		PID:                 result.PID,
		TreeKillReliability: result.Reliability.String(),
		Warnings:            result.Warnings,
	}, result
}
