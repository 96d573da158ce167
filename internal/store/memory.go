package store

import "sort"

// MemoryGateway keeps blobs in a map. It satisfies the same contract as
// Store and is used for throwaway sessions and tests.
type MemoryGateway struct {
	data map[string][]byte

	// Saves counts successful Save calls.
	Saves int
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{data: make(map[string][]byte)}
}

func (m *MemoryGateway) Load(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryGateway) Save(key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	m.Saves++
	return nil
}

func (m *MemoryGateway) FirstLaunch(key string) (bool, error) {
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = []byte(firstLaunchValue)
	return true, nil
}

func (m *MemoryGateway) Keys() ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
