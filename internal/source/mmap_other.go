//go:build !unix

package source

import (
	"errors"
	"os"
)

func mmapFile(*os.File, int) ([]byte, error) {
	return nil, errors.New("mmap not supported")
}

func unmap([]byte) error {
	return nil
}
