package symbol

import (
	"encoding/binary"
	"sync"

	"github.com/dchest/siphash"
	"golang.org/x/exp/maps"
)

// siphash key used purely to pre-hash interned strings before they enter
// the toindex map; not a security boundary. Grounded on the teacher's own
// use of siphash for hashing hot-path keys (vm/interphash.go, expr/redact.go).
var sipK0, sipK1 uint64 = 0x6d6f726b5f6b3000, 0x6d6f726b5f6b3100

// Table is the default interning Interner, structured after the teacher's
// ion.Symtab: an append-only slice of interned strings plus a hash->handle
// index, guarded by a read/write lock so concurrent readers share it.
type Table struct {
	mu       sync.RWMutex
	interned [][]byte          // handle (minus 1) -> bytes
	toindex  map[uint64]uint64 // prehash(bytes) -> handle; a hash hit is not compared against interned
	next     uint64
}

// NewTable returns an empty symbol table. The zero Table is also usable.
func NewTable() *Table {
	return &Table{}
}

func (t *Table) init() {
	if t.toindex == nil {
		t.toindex = make(map[uint64]uint64)
		t.next = 1 // reserve handle 0 as "unassigned"
	}
}

func prehash(buf []byte) uint64 {
	return siphash.Hash(sipK0, sipK1, buf)
}

func handleFor(id uint64) Handle {
	var h Handle
	binary.LittleEndian.PutUint64(h[:], id)
	return h
}

func idOf(h Handle) uint64 {
	return binary.LittleEndian.Uint64(h[:])
}

// Intern returns buf's handle, interning it if this is the first time it's
// been seen. Equal byte strings always yield equal handles (idempotent),
// and a handle, once issued, is never reassigned (stable).
func (t *Table) Intern(buf []byte) Handle {
	key := prehash(buf)

	t.mu.RLock()
	if id, ok := t.lookupLocked(key, buf); ok {
		t.mu.RUnlock()
		return handleFor(id)
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.init()
	// re-check under the write lock: another writer may have interned
	// the same bytes between the RUnlock above and this Lock.
	if id, ok := t.lookupLocked(key, buf); ok {
		return handleFor(id)
	}
	id := t.next
	t.next++
	cp := make([]byte, len(buf))
	copy(cp, buf)
	t.interned = append(t.interned, cp)
	t.toindex[key] = id
	return handleFor(id)
}

// lookupLocked requires the caller hold at least a read lock.
func (t *Table) lookupLocked(key uint64, buf []byte) (uint64, bool) {
	if t.toindex == nil {
		return 0, false
	}
	id, ok := t.toindex[key]
	if !ok {
		return 0, false
	}
	// NOTE: a production interner would chain on hash collision; MORK's
	// 64-bit siphash over the (usually short) symbol alphabet makes a
	// collision between two distinct interned strings astronomically
	// unlikely, so a single-slot index (like the teacher's toindex map,
	// which is collision-free only because it keys on the full string) is
	// an acceptable trade here. See DESIGN.md.
	if int(id-1) < len(t.interned) {
		return id, true
	}
	return 0, false
}

// InternBytes implements Interner by returning the 8-byte handle payload.
func (t *Table) InternBytes(buf []byte) []byte {
	h := t.Intern(buf)
	return h.Bytes()
}

// Resolve maps an 8-byte handle payload back to its original bytes.
func (t *Table) Resolve(payload []byte) ([]byte, bool) {
	if len(payload) != 8 {
		return nil, false
	}
	var h Handle
	copy(h[:], payload)
	id := idOf(h)
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id == 0 || int(id-1) >= len(t.interned) {
		return nil, false
	}
	return t.interned[id-1], true
}

// Len returns the number of distinct interned symbols.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.interned)
}

// Reset clears the table back to empty, as if newly constructed.
func (t *Table) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.interned = t.interned[:0]
	if t.toindex != nil {
		maps.Clear(t.toindex)
	}
	t.next = 1
}
