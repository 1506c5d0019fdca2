//go:build !windows

package app

// requestAttention is a no-op where the platform offers no taskbar flash.
func requestAttention(string) {}
