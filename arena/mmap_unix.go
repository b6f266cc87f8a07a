//go:build !windows

package arena

import (
	"os"

	"golang.org/x/sys/unix"
)

// mappedFile is a read-only memory mapping of an arena file, following
// the teacher's vm/malloc_linux.go Mmap/Munmap pairing but scoped to one
// file's contents rather than an anonymous VMM reservation.
type mappedFile struct {
	data []byte
}

func (m *mappedFile) Bytes() []byte { return m.data }

func (m *mappedFile) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	return err
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
	size := int(fi.Size())
	if size == 0 {
		return &mappedFile{data: nil}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return &mappedFile{data: data}, nil
}
