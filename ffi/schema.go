// Package ffi implements the JSON-over-FFI surface: strict,
// schema-tagged request/response types for each operation, meant to be
// serialized across a language boundary by cmd/libsysprims or any other
// embedder. Decoding rejects unknown fields so a caller on the other side of
// the FFI boundary gets an immediate error instead of silently-ignored
// typos, mirroring the deny-unknown-fields discipline the original Rust
// implementation enforces with serde.
package ffi

// Schema ID constants, following the URI shape documented in
// original_source/crates/sysprims-core/src/schema.rs:
// https://schemas.sysprims.dev/<topic>/<version>/<name>.schema.json
const (
	TimeoutRequestSchemaV1   = "https://schemas.sysprims.dev/timeout/v1/timeout-request.schema.json"
	TimeoutResultSchemaV1    = "https://schemas.sysprims.dev/timeout/v1/timeout-result.schema.json"
	KillRequestSchemaV1      = "https://schemas.sysprims.dev/signal/v1/kill-request.schema.json"
	KillResultSchemaV1       = "https://schemas.sysprims.dev/signal/v1/kill-result.schema.json"
	SpawnRequestSchemaV1     = "https://schemas.sysprims.dev/process/v1/spawn-in-group-request.schema.json"
	SpawnResultSchemaV1      = "https://schemas.sysprims.dev/process/v1/spawn-in-group-result.schema.json"
	TerminateRequestSchemaV1 = "https://schemas.sysprims.dev/process/v1/terminate-tree-request.schema.json"
	TerminateResultSchemaV1  = "https://schemas.sysprims.dev/process/v1/terminate-tree-result.schema.json"
)
