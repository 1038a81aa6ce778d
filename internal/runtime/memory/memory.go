// Package memory provides bounds-checked access to a guest's linear
// memory. The host never touches guest memory except through the
// Sandbox, and every access is all-or-nothing.
package memory

import (
	"encoding/binary"
	"math"

	"github.com/tetratelabs/wazero/api"

	"github.com/mn13/chainext/types"
)

// SkipSentinel is the output-pointer value a guest supplies to decline
// an optional output buffer.
const SkipSentinel uint32 = math.MaxUint32

// Memory is the slice of the wazero api.Memory surface the sandbox
// needs. A wazero module memory satisfies it directly; tests and
// embedders without a live wasm instance can use SliceMemory.
type Memory interface {
	// Read reads byteCount bytes from offset. ok is false on an
	// out-of-range access.
	Read(offset, byteCount uint32) ([]byte, bool)
	// Write writes v to offset. ok is false on an out-of-range access.
	Write(offset uint32, v []byte) bool
	// Size returns the size in bytes of the memory.
	Size() uint32
}

var _ Memory = (api.Memory)(nil)

// Sandbox performs checked reads and writes against one guest memory.
type Sandbox struct {
	mem Memory
}

// NewSandbox wraps a guest linear memory.
func NewSandbox(mem Memory) *Sandbox {
	return &Sandbox{mem: mem}
}

// ReadBytes copies length bytes starting at offset out of guest
// memory. Returns types.MemoryAccessError if the range is not fully
// mapped; never returns partial data. The result is a copy, detached
// from the guest's memory.
func (s *Sandbox) ReadBytes(offset, length uint32) ([]byte, error) {
	if err := s.check(offset, length); err != nil {
		return nil, err
	}
	data, ok := s.mem.Read(offset, length)
	if !ok {
		return nil, types.MemoryAccessError{Offset: offset, Length: length, Size: s.mem.Size()}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// WriteBytes copies data into guest memory at offset.
func (s *Sandbox) WriteBytes(offset uint32, data []byte) error {
	length := uint32(len(data))
	if err := s.check(offset, length); err != nil {
		return err
	}
	if !s.mem.Write(offset, data) {
		return types.MemoryAccessError{Offset: offset, Length: length, Size: s.mem.Size()}
	}
	return nil
}

// ReadUint32 reads a little-endian u32 from guest memory. Wasm linear
// memory is little-endian regardless of the host.
func (s *Sandbox) ReadUint32(offset uint32) (uint32, error) {
	raw, err := s.ReadBytes(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(raw), nil
}

// WriteUint32 writes a little-endian u32 to guest memory.
func (s *Sandbox) WriteUint32(offset, value uint32) error {
	var raw [4]byte
	binary.LittleEndian.PutUint32(raw[:], value)
	return s.WriteBytes(offset, raw[:])
}

// check rejects ranges that leave the memory, widening to uint64 so a
// hostile offset+length cannot wrap around.
func (s *Sandbox) check(offset, length uint32) error {
	if uint64(offset)+uint64(length) > uint64(s.mem.Size()) {
		return types.MemoryAccessError{Offset: offset, Length: length, Size: s.mem.Size()}
	}
	return nil
}

// SliceMemory is a byte-slice-backed Memory for tests and embeddings
// that run the dispatch path without a wasm instance.
type SliceMemory []byte

var _ Memory = SliceMemory(nil)

func (m SliceMemory) Read(offset, byteCount uint32) ([]byte, bool) {
	if uint64(offset)+uint64(byteCount) > uint64(len(m)) {
		return nil, false
	}
	return m[offset : offset+byteCount], true
}

func (m SliceMemory) Write(offset uint32, v []byte) bool {
	if uint64(offset)+uint64(len(v)) > uint64(len(m)) {
		return false
	}
	copy(m[offset:], v)
	return true
}

func (m SliceMemory) Size() uint32 {
	return uint32(len(m))
}
