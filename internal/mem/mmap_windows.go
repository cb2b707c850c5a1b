//go:build windows

package mem

import "errors"

var errWindowsNoMmap = errors.New("mem: anonymous mappings not supported on windows")

func mmap(size int) ([]byte, error) {
	return nil, errMmapUnsupported
}

func munmap(data []byte) error {
	return errWindowsNoMmap
}
