// Command libsysprims builds the C-ABI shared library surface: every
// exported operation (signal send, timeout, spawn, terminate) returns 0 or
// one of the nine stable numeric error codes, with structured results
// serialized to JSON
// strings that the caller must free via sysprims_free_string. This package
// *is* the underlying implementation that bindings such as the Go package
// in 3leaps/sysprims expect on the other side of cgo.
package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"encoding/json"
	"runtime"
	"sync"
	"unsafe"

	"github.com/mrigan/sysprims/ffi"
	"github.com/mrigan/sysprims/sigdispatch"
	"github.com/mrigan/sysprims/sysprimserr"
)

func main() {} // required by -buildmode=c-shared; never invoked.

const abiVersion = 1

var version = "0.1.0"

// lastErrText and lastErrCode hold the most recent error per OS thread,
// keyed by native thread id. Go does not expose true thread-locals, so the map is
// keyed by nativeThreadID and protected by a mutex, matching the process-wide
// group registry's locking discipline in spawngroup.
var (
	lastErrMu   sync.Mutex
	lastErrText = map[int64]string{}
	lastErrCode = map[int64]int32{}
)

func setLastError(err error) C.int32_t {
	tid := nativeThreadID()
	lastErrMu.Lock()
	defer lastErrMu.Unlock()
	if err == nil {
		delete(lastErrText, tid)
		delete(lastErrCode, tid)
		return 0
	}
	se, ok := sysprimserr.As(err)
	code := int32(sysprimserr.Internal)
	msg := err.Error()
	if ok {
		code = se.Code()
		msg = se.Error()
	}
	lastErrText[tid] = msg
	lastErrCode[tid] = code
	return C.int32_t(code)
}

func clearLastError() {
	tid := nativeThreadID()
	lastErrMu.Lock()
	defer lastErrMu.Unlock()
	delete(lastErrText, tid)
	delete(lastErrCode, tid)
}

//export sysprims_last_error
func sysprims_last_error() *C.char {
	tid := nativeThreadID()
	lastErrMu.Lock()
	msg := lastErrText[tid]
	lastErrMu.Unlock()
	return C.CString(msg)
}

//export sysprims_last_error_code
func sysprims_last_error_code() C.int32_t {
	tid := nativeThreadID()
	lastErrMu.Lock()
	code := lastErrCode[tid]
	lastErrMu.Unlock()
	return C.int32_t(code)
}

//export sysprims_clear_error
func sysprims_clear_error() {
	clearLastError()
}

//export sysprims_free_string
func sysprims_free_string(s *C.char) {
	C.free(unsafe.Pointer(s))
}

//export sysprims_version
func sysprims_version() *C.char {
	return C.CString(version)
}

//export sysprims_abi_version
func sysprims_abi_version() C.uint32_t {
	return C.uint32_t(abiVersion)
}

//export sysprims_get_platform
func sysprims_get_platform() *C.char {
	return C.CString(goosName())
}

//export sysprims_signal_send
func sysprims_signal_send(pid C.uint32_t, sig C.int32_t) C.int32_t {
	clearLastError()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if err := sigdispatch.Send(uint32(pid), sigdispatch.Signal(sig)); err != nil {
		return setLastError(err)
	}
	return 0
}

//export sysprims_signal_send_group
func sysprims_signal_send_group(pgid C.uint32_t, sig C.int32_t) C.int32_t {
	clearLastError()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if err := sigdispatch.SendGroup(uint32(pgid), sigdispatch.Signal(sig)); err != nil {
		return setLastError(err)
	}
	return 0
}

//export sysprims_terminate
func sysprims_terminate(pid C.uint32_t) C.int32_t {
	clearLastError()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if err := sigdispatch.Terminate(uint32(pid)); err != nil {
		return setLastError(err)
	}
	return 0
}

//export sysprims_force_kill
func sysprims_force_kill(pid C.uint32_t) C.int32_t {
	clearLastError()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if err := sigdispatch.ForceKill(uint32(pid)); err != nil {
		return setLastError(err)
	}
	return 0
}

//export sysprims_timeout_run
func sysprims_timeout_run(requestJSON *C.char, resultJSON **C.char) C.int32_t {
	clearLastError()
	if requestJSON == nil || resultJSON == nil {
		return setLastError(sysprimserr.InvalidArgumentf("requestJSON and resultJSON must not be null"))
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	req, err := ffi.DecodeTimeoutRequest([]byte(C.GoString(requestJSON)))
	if err != nil {
		return setLastError(err)
	}
	result := ffi.RunTimeout(req)
	return marshalOut(result, resultJSON)
}

//export sysprims_signal_send_many
func sysprims_signal_send_many(requestJSON *C.char, resultJSON **C.char) C.int32_t {
	clearLastError()
	if requestJSON == nil || resultJSON == nil {
		return setLastError(sysprimserr.InvalidArgumentf("requestJSON and resultJSON must not be null"))
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	req, err := ffi.DecodeKillRequest([]byte(C.GoString(requestJSON)))
	if err != nil {
		return setLastError(err)
	}
	result := ffi.RunKill(req)
	return marshalOut(result, resultJSON)
}

//export sysprims_spawn_in_group
func sysprims_spawn_in_group(requestJSON *C.char, resultJSON **C.char) C.int32_t {
	clearLastError()
	if requestJSON == nil || resultJSON == nil {
		return setLastError(sysprimserr.InvalidArgumentf("requestJSON and resultJSON must not be null"))
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	req, err := ffi.DecodeSpawnRequest([]byte(C.GoString(requestJSON)))
	if err != nil {
		return setLastError(err)
	}
	result, _ := ffi.RunSpawn(req)
	return marshalOut(result, resultJSON)
}

//export sysprims_terminate_tree
func sysprims_terminate_tree(pid C.uint32_t, configJSON *C.char, resultJSON **C.char) C.int32_t {
	clearLastError()
	if resultJSON == nil {
		return setLastError(sysprimserr.InvalidArgumentf("resultJSON must not be null"))
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	raw := ""
	if configJSON != nil {
		raw = C.GoString(configJSON)
	}
	if raw == "" {
		raw = "{}"
	}
	req, err := ffi.DecodeTerminateRequest([]byte(patchPID(raw, uint32(pid))))
	if err != nil {
		return setLastError(err)
	}
	result := ffi.RunTerminate(req)
	return marshalOut(result, resultJSON)
}

// marshalOut serializes result to *out as a caller-owned C string, freed via
// sysprims_free_string. result's own Error field (if any) is also recorded
// as the thread-local last error so C callers checking only the return code
// still see a message.
func marshalOut(result any, out **C.char) C.int32_t {
	blob, err := json.Marshal(result)
	if err != nil {
		return setLastError(sysprimserr.Internalf("failed to serialize result: %v", err))
	}
	*out = C.CString(string(blob))

	if errField, ok := extractError(result); ok && errField != nil {
		return setLastError(&sysprimserr.Error{Kind: sysprimserr.Kind(errField.Code), Message: errField.Message})
	}
	return 0
}

// extractError pulls out the optional Error field every ffi *Result type
// carries, without requiring a shared interface across those types.
func extractError(result any) (*ffi.Error, bool) {
	switch r := result.(type) {
	case *ffi.TimeoutResult:
		return r.Error, true
	case *ffi.KillResult:
		return r.Error, true
	case *ffi.SpawnResult:
		return r.Error, true
	case *ffi.TerminateResult:
		return r.Error, true
	default:
		return nil, false
	}
}

// patchPID folds the C-ABI's separate pid argument into the JSON config
// blob terminate_tree is documented to accept, since the stable C function
// signature keeps pid out-of-band from the rest of the tunable fields.
func patchPID(configJSON string, pid uint32) string {
	var m map[string]any
	if err := json.Unmarshal([]byte(configJSON), &m); err != nil || m == nil {
		m = map[string]any{}
	}
	m["pid"] = pid
	if _, ok := m["schema_id"]; !ok {
		m["schema_id"] = ffi.TerminateRequestSchemaV1
	}
	patched, err := json.Marshal(m)
	if err != nil {
		return configJSON
	}
	return string(patched)
}
