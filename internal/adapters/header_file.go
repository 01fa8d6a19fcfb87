package adapters

import (
	"os"

	"devkit-builder/internal/ports"
)

type HeaderFileAdapter struct{}

func NewHeaderFileAdapter() HeaderFileAdapter {
	return HeaderFileAdapter{}
}

func (a HeaderFileAdapter) ReadHeader(path string) ([]byte, error) {
	return os.ReadFile(path)
}

var _ ports.HeaderSourcePort = HeaderFileAdapter{}
