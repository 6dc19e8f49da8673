//go:build windows

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

// openInput opens a regular file, or a raw volume / physical drive when the
// path uses the \\.\ device syntax. Raw volumes need explicit share flags
// or CreateFile refuses the handle.
func openInput(path string) (*os.File, error) {
	if !strings.HasPrefix(path, `\\.\`) {
		return os.Open(path)
	}
	h, err := windows.CreateFile(
		windows.StringToUTF16Ptr(path),
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("open device %s: %w", path, err)
	}
	return os.NewFile(uintptr(h), path), nil
}

const ioctlDiskGetLengthInfo = 0x0007405C

// getDeviceSize returns the size of a file or raw device in bytes.
func getDeviceSize(f *os.File) (int64, error) {
	if size, err := f.Seek(0, io.SeekEnd); err == nil {
		_, _ = f.Seek(0, io.SeekStart)
		return size, nil
	}

	// Raw volumes do not seek; ask the disk driver for the length.
	var length int64
	var ret uint32
	err := windows.DeviceIoControl(
		windows.Handle(f.Fd()),
		ioctlDiskGetLengthInfo,
		nil, 0,
		(*byte)(unsafe.Pointer(&length)), uint32(unsafe.Sizeof(length)),
		&ret, nil,
	)
	if err != nil {
		return 0, fmt.Errorf("cannot determine device size: %w", err)
	}
	return length, nil
}
