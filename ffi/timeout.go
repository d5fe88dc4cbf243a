package ffi

import (
	"time"

	"github.com/mrigan/sysprims/sigdispatch"
	"github.com/mrigan/sysprims/sysprimserr"
	"github.com/mrigan/sysprims/timeout"
)

// TimeoutRequest is the JSON request shape for the timeout runner.
type TimeoutRequest struct {
	SchemaID       string   `json:"schema_id"`
	Command        string   `json:"command"`
	Args           []string `json:"args,omitempty"`
	DeadlineMS     int64    `json:"deadline_ms"`
	Signal         string   `json:"signal,omitempty"`
	KillAfterMS    int64    `json:"kill_after_ms,omitempty"`
	Foreground     bool     `json:"foreground,omitempty"`
	PreserveStatus bool     `json:"preserve_status,omitempty"`
	Dir            string   `json:"dir,omitempty"`
	Env            []string `json:"env,omitempty"`
	CPULimit       int      `json:"cpu_limit_percent,omitempty"`
	MemLimitBytes  int64    `json:"mem_limit_bytes,omitempty"`
}

// TimeoutResult is the JSON response shape; exactly one of the Completed or
// TimedOut-specific field groups is meaningful, selected by Status.
// signal_sent is encoded numerically so bindings need no name table.
type TimeoutResult struct {
	SchemaID            string `json:"schema_id"`
	Status              string `json:"status"`
	ExitCode            int    `json:"exit_code,omitempty"`
	SignalSent          int32  `json:"signal_sent,omitempty"`
	Escalated           bool   `json:"escalated,omitempty"`
	TreeKillReliability string `json:"tree_kill_reliability,omitempty"`
	Error               *Error `json:"error,omitempty"`
}

// DecodeTimeoutRequest strict-decodes and validates req. Operational
// failures during the run itself are carried in TimeoutResult.Error, not
// here.
func DecodeTimeoutRequest(data []byte) (*TimeoutRequest, error) {
	var req TimeoutRequest
	if err := strictDecode(data, &req); err != nil {
		return nil, err
	}
	if err := checkSchema(req.SchemaID, TimeoutRequestSchemaV1); err != nil {
		return nil, err
	}
	if req.Command == "" {
		return nil, sysprimserr.InvalidArgumentf("command must not be empty")
	}
	if req.DeadlineMS <= 0 {
		return nil, sysprimserr.InvalidArgumentf("deadline_ms must be positive")
	}
	return &req, nil
}

// RunTimeout executes a decoded TimeoutRequest.
func RunTimeout(req *TimeoutRequest) *TimeoutResult {
	cfg := timeout.Config{
		Grouping:       timeout.GroupByDefault,
		PreserveStatus: req.PreserveStatus,
	}
	if req.Foreground {
		cfg.Grouping = timeout.Foreground
	}
	if req.Signal != "" {
		sig, err := sigdispatch.ResolveSignal(req.Signal)
		if err != nil {
			return &TimeoutResult{SchemaID: TimeoutResultSchemaV1, Error: errorFrom(err)}
		}
		cfg.Signal = sig
	}
	if req.KillAfterMS > 0 {
		cfg.KillAfter = time.Duration(req.KillAfterMS) * time.Millisecond
	}
	cfg.Dir = req.Dir
	cfg.Env = req.Env

	cgroup, warnErr := applyResourceLimits(&cfg, req.CPULimit, req.MemLimitBytes)
	if cgroup != nil {
		defer cgroup.Cleanup()
	}
	_ = warnErr // best-effort; resource limits are optional enrichment, not a hard requirement

	outcome, err := timeout.Run(req.Command, req.Args, time.Duration(req.DeadlineMS)*time.Millisecond, cfg)
	if err != nil {
		return &TimeoutResult{SchemaID: TimeoutResultSchemaV1, Error: errorFrom(err)}
	}

	result := &TimeoutResult{SchemaID: TimeoutResultSchemaV1}
	switch outcome.Status {
	case timeout.Completed:
		result.Status = "completed"
		result.ExitCode = outcome.ExitCode
	case timeout.TimedOut:
		result.Status = "timed_out"
		result.SignalSent = int32(outcome.SignalSent)
		result.Escalated = outcome.Escalated
		result.TreeKillReliability = outcome.Reliability.String()
	}
	return result
}
