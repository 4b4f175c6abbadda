package intcode

import (
	"fmt"
	"math"

	"github.com/colorfulnotion/intcode/vmerrors"
)

// DefaultMinMemory is the number of cells a VM allocates up front.
const DefaultMinMemory = 81920

// Memory is the flat word-addressed store of one VM. Addresses at or past
// Len grow the store with zeros; Len never shrinks.
type Memory struct {
	cells []int64
	limit int64 // 0 means unbounded
}

// NewMemory copies image into a store of at least minSize cells. A non-zero
// limit caps growth; it is raised to the initial size if smaller.
func NewMemory(image []int64, minSize int, limit int64) *Memory {
	size := max(len(image), minSize)
	cells := make([]int64, size)
	copy(cells, image)
	if limit > 0 && limit < int64(size) {
		limit = int64(size)
	}
	return &Memory{cells: cells, limit: limit}
}

func (m *Memory) Len() int {
	return len(m.cells)
}

// EnsureCapacity grows the store so addr is in bounds. Growth at least
// doubles the store so a run that walks upward reallocates O(log n) times.
func (m *Memory) EnsureCapacity(addr int64) error {
	if addr < 0 {
		return fmt.Errorf("%w (addr=%d)", vmerrors.ErrNegativeAddress, addr)
	}
	if addr < int64(len(m.cells)) {
		return nil
	}
	if m.limit > 0 && addr >= m.limit {
		return fmt.Errorf("%w (addr=%d, limit=%d)", vmerrors.ErrMemoryLimit, addr, m.limit)
	}
	// addr+1 must stay a valid slice length
	if addr >= math.MaxInt-1 {
		return fmt.Errorf("%w (addr=%d)", vmerrors.ErrMemoryLimit, addr)
	}
	size := max(addr+1, 2*int64(len(m.cells)))
	if m.limit > 0 && size > m.limit {
		size = m.limit
	}
	grown := make([]int64, size)
	copy(grown, m.cells)
	m.cells = grown
	return nil
}

func (m *Memory) Read(addr int64) (int64, error) {
	if err := m.EnsureCapacity(addr); err != nil {
		return 0, err
	}
	return m.cells[addr], nil
}

func (m *Memory) Write(addr int64, value int64) error {
	if err := m.EnsureCapacity(addr); err != nil {
		return err
	}
	m.cells[addr] = value
	return nil
}

// Peek reads without growing; cells past Len read as zero.
func (m *Memory) Peek(addr int64) (int64, error) {
	if addr < 0 {
		return 0, fmt.Errorf("%w (addr=%d)", vmerrors.ErrNegativeAddress, addr)
	}
	if addr >= int64(len(m.cells)) {
		return 0, nil
	}
	return m.cells[addr], nil
}

// Dump copies the first n cells (fewer if the store is shorter).
func (m *Memory) Dump(n int) []int64 {
	n = min(max(n, 0), len(m.cells))
	out := make([]int64, n)
	copy(out, m.cells[:n])
	return out
}
