//go:build !windows

package main

/*
#include <pthread.h>
*/
import "C"
import "runtime"

// nativeThreadID identifies the calling OS thread for the thread-local
// last-error map. pthread_self is portable across Linux/macOS/BSD, unlike
// golang.org/x/sys/unix.Gettid which is Linux-only; callers into this
// C-ABI already run with runtime.LockOSThread held for the duration of a
// call, so the pthread id is stable for the lifetime of the lookup.
func nativeThreadID() int64 {
	return int64(uintptr(C.pthread_self()))
}

func goosName() string {
	if runtime.GOOS == "darwin" {
		return "macos"
	}
	return runtime.GOOS
}
