package tools

import (
	"sync"
)

// SafeMap is a map with lock
type SafeMap[K comparable, V any] struct {
	lock *sync.RWMutex
	bm   map[K]V
}

// NewSafeMap return new safemap
func NewSafeMap[K comparable, V any]() *SafeMap[K, V] {
	return &SafeMap[K, V]{
		lock: new(sync.RWMutex),
		bm:   make(map[K]V),
	}
}

// Get from maps return the k's value
func (m *SafeMap[K, V]) Get(k K) (V, bool) {
	m.lock.RLock()
	val, ok := m.bm[k]
	m.lock.RUnlock()
	return val, ok
}

// Set Maps the given key and value. Returns false
// if the key is already in the map and changes nothing.
func (m *SafeMap[K, V]) Set(k K, v V) bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	if _, ok := m.bm[k]; ok {
		return false
	}
	m.bm[k] = v
	return true
}

// LoadOrStore 已存在则返回旧值, 否则存入v
func (m *SafeMap[K, V]) LoadOrStore(k K, v V) (actual V, loaded bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if val, ok := m.bm[k]; ok {
		return val, true
	}
	m.bm[k] = v
	return v, false
}

// Check Returns true if k is exist in the map.
func (m *SafeMap[K, V]) Check(k K) bool {
	m.lock.RLock()
	_, ok := m.bm[k]
	m.lock.RUnlock()
	return ok
}

// Delete the given key and value.
func (m *SafeMap[K, V]) Delete(k K) {
	m.lock.Lock()
	delete(m.bm, k)
	m.lock.Unlock()
}

// DeleteAll DeleteAll
func (m *SafeMap[K, V]) DeleteAll() {
	m.lock.Lock()
	clear(m.bm)
	m.lock.Unlock()
}

// Len 元素个数
func (m *SafeMap[K, V]) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.bm)
}

// Items returns all items in safemap.
func (m *SafeMap[K, V]) Items() map[K]V {
	m.lock.RLock()
	r := make(map[K]V, len(m.bm))
	for k, v := range m.bm {
		r[k] = v
	}
	m.lock.RUnlock()
	return r
}
