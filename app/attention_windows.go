package app

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// FLASHWINFO.dwFlags values.
const (
	flashwAll       = 0x00000003 // caption and taskbar button
	flashwTimerNoFG = 0x0000000C // keep flashing until the window is foreground
)

// flashWInfo matches FLASHWINFO from winuser.
type flashWInfo struct {
	CbSize    uint32
	Hwnd      uintptr
	DwFlags   uint32
	UCount    uint32
	DwTimeout uint32
}

// requestAttention flashes the app's taskbar entry until the user returns to
// the window. The window is resolved by its title; a missing window is a no-op.
func requestAttention(title string) {
	user32 := windows.NewLazySystemDLL("user32.dll")
	findWindowW := user32.NewProc("FindWindowW")
	flashWindowEx := user32.NewProc("FlashWindowEx")

	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return
	}
	hwnd, _, _ := findWindowW.Call(0, uintptr(unsafe.Pointer(p)))
	if hwnd == 0 {
		return
	}
	info := flashWInfo{
		Hwnd:    hwnd,
		DwFlags: flashwAll | flashwTimerNoFG,
	}
	info.CbSize = uint32(unsafe.Sizeof(info))
	_, _, _ = flashWindowEx.Call(uintptr(unsafe.Pointer(&info)))
}
