package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/m-mizutani/goerr/v2"
)

// Memory keeps attachment bytes in a map, for development and tests
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

var _ Service = &Memory{}

func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string][]byte),
	}
}

func (m *Memory) Put(ctx context.Context, companyID, reportID, fileName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read object data")
	}

	path := fmt.Sprintf("%s/%s/%s", companyID, reportID, fileName)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = data

	return path, nil
}

// Get returns stored bytes, for test assertions
func (m *Memory) Get(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[path]
	return data, ok
}
