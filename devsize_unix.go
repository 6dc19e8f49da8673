//go:build !windows

package main

import (
	"fmt"
	"io"
	"os"
	"syscall"
	"unsafe"
)

// openInput opens the raw image source. On Unix, block devices open like
// any other file.
func openInput(path string) (*os.File, error) {
	return os.Open(path)
}

// getDeviceSize returns the size of a file or block device in bytes.
func getDeviceSize(f *os.File) (int64, error) {
	// Regular files and Linux block devices answer to seek.
	if size, err := f.Seek(0, io.SeekEnd); err == nil && size > 0 {
		_, _ = f.Seek(0, io.SeekStart)
		return size, nil
	}

	// Linux block devices that refuse to seek: BLKGETSIZE64.
	const blkGetSize64 = 0x80081272
	var sizeBytes uint64
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), blkGetSize64, uintptr(unsafe.Pointer(&sizeBytes)))
	if errno == 0 {
		return int64(sizeBytes), nil
	}

	// macOS/BSD: DKIOCGETBLOCKSIZE + DKIOCGETBLOCKCOUNT.
	const (
		dkiocGetBlockSize  = 0x40046418
		dkiocGetBlockCount = 0x40086419
	)
	var blockSize uint32
	var blockCount uint64
	_, _, errno = syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), dkiocGetBlockSize, uintptr(unsafe.Pointer(&blockSize)))
	if errno != 0 {
		return 0, fmt.Errorf("cannot determine device size: %v", errno)
	}
	_, _, errno = syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), dkiocGetBlockCount, uintptr(unsafe.Pointer(&blockCount)))
	if errno != 0 {
		return 0, fmt.Errorf("cannot get block count: %v", errno)
	}
	return int64(blockSize) * int64(blockCount), nil
}
