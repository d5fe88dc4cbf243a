//go:build windows

package main

import "golang.org/x/sys/windows"

func nativeThreadID() int64 {
	return int64(windows.GetCurrentThreadId())
}

func goosName() string {
	return "windows"
}
