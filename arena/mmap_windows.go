//go:build windows

package arena

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// mappedFile is a read-only memory mapping of an arena file, following
// vm/malloc_windows.go's CreateFileMapping/MapViewOfFile use of
// golang.org/x/sys/windows.
type mappedFile struct {
	handle windows.Handle
	addr   uintptr
	data   []byte
}

func (m *mappedFile) Bytes() []byte { return m.data }

func (m *mappedFile) Close() error {
	if m.addr != 0 {
		windows.UnmapViewOfFile(m.addr)
		m.addr = 0
	}
	if m.handle != 0 {
		windows.CloseHandle(m.handle)
		m.handle = 0
	}
	return nil
}

func mmapFile(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	if size == 0 {
		return &mappedFile{}, nil
	}

	h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY, 0, 0, nil)
	if err != nil {
		return nil, err
	}
	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(h)
		return nil, err
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(size))
	return &mappedFile{handle: h, addr: addr, data: data}, nil
}
