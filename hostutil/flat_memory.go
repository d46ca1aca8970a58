// Package hostutil is rvsim's reference host layer: concrete Memory and
// SystemCalls implementations, plus a harness for scheduling several
// independent simulators (§5, §6, §9). None of it is part of the core —
// every type here is just one possible consumer of the interfaces the core
// exposes.
package hostutil

import (
	"encoding/binary"
	"sync"
)

// FlatMemory is a byte-addressable guest memory backed by a single
// contiguous slice, grounded in the teacher's SystemBus (memory_bus.go):
// same little-endian encoding/binary access pattern and the same
// sync.RWMutex-guarded bounds-checked reads/writes, generalised from fixed
// 32-bit words to the §6 byte/halfword/word trio.
type FlatMemory struct {
	mu    sync.RWMutex
	bytes []byte
}

// NewFlatMemory allocates a FlatMemory of the given size in bytes.
func NewFlatMemory(size int) *FlatMemory {
	return &FlatMemory{bytes: make([]byte, size)}
}

// LoadImage copies data into memory starting at addr, for setting up a
// guest program before the first Step. It is not part of the Memory
// interface — callers use it once, before handing the memory to a
// Simulator.
func (m *FlatMemory) LoadImage(addr uint32, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy(m.bytes[addr:], data)
}

func (m *FlatMemory) Fetch(addr uint32) (uint16, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.inBounds(addr, 2) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(m.bytes[addr : addr+2]), true
}

func (m *FlatMemory) Load(addr uint32, width uint8) (uint32, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.inBounds(addr, uint32(width)) {
		return 0, false
	}
	switch width {
	case 1:
		return uint32(m.bytes[addr]), true
	case 2:
		return uint32(binary.LittleEndian.Uint16(m.bytes[addr : addr+2])), true
	case 4:
		return binary.LittleEndian.Uint32(m.bytes[addr : addr+4]), true
	default:
		return 0, false
	}
}

func (m *FlatMemory) Store(addr uint32, width uint8, value uint32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.inBounds(addr, uint32(width)) {
		return false
	}
	switch width {
	case 1:
		m.bytes[addr] = byte(value)
	case 2:
		binary.LittleEndian.PutUint16(m.bytes[addr:addr+2], uint16(value))
	case 4:
		binary.LittleEndian.PutUint32(m.bytes[addr:addr+4], value)
	default:
		return false
	}
	return true
}

func (m *FlatMemory) inBounds(addr, width uint32) bool {
	return uint64(addr)+uint64(width) <= uint64(len(m.bytes))
}
