// Package authority implements the access authority of spec §4.8: the
// registry of live read/write cursor paths that enforces the single-writer
// discipline the trie itself doesn't know about (spec §9, "the trie
// primitive itself does not know about permissions").
package authority

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
)

// Kind distinguishes a read permit (many allowed, overlapping) from a
// write permit (exclusive: no other permit, read or write, may overlap
// its path).
type Kind int

const (
	Read Kind = iota
	Write
)

// ConflictError reports that a requested permit's path overlaps one
// already held, per spec's PathConflict error kind (§4.8, §7).
type ConflictError struct {
	Requested []byte
	Held      []byte
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("authority: path %q conflicts with held permit %q", e.Requested, e.Held)
}

// Permit is a released-on-Close handle to a registered path. Callers must
// Close every Permit they acquire, typically via defer, so the path
// becomes available to later requests.
type Permit struct {
	auth *Authority
	path []byte
	kind Kind
	id   uint64
}

// Path returns the byte path this permit covers.
func (p *Permit) Path() []byte { return p.path }

// Close releases the permit, making its path available again.
func (p *Permit) Close() error {
	p.auth.release(p.id)
	return nil
}

type entry struct {
	id   uint64
	path []byte
	kind Kind
}

// Authority guards a single Space's cursor paths against overlapping
// reads and writes. The zero value is an empty, ready-to-use Authority;
// New returns one.
type Authority struct {
	mu      sync.Mutex
	entries []entry
	nextID  uint64
}

// New returns an empty Authority.
func New() *Authority {
	return &Authority{}
}

// overlaps reports whether paths a and b overlap, i.e. one is a prefix of
// the other (including equality) — the same notion of conflict spec §4.8
// uses for write-zipper exclusivity.
func overlaps(a, b []byte) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return bytes.Equal(a[:n], b[:n])
}

// AcquireRead registers a read permit at path. Read permits never
// conflict with other read permits, but do conflict with any overlapping
// write permit.
func (a *Authority) AcquireRead(path []byte) (*Permit, error) {
	return a.acquire(path, Read)
}

// AcquireWrite registers an exclusive write permit at path. It conflicts
// with any overlapping permit, read or write.
func (a *Authority) AcquireWrite(path []byte) (*Permit, error) {
	return a.acquire(path, Write)
}

func (a *Authority) acquire(path []byte, kind Kind) (*Permit, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cp := make([]byte, len(path))
	copy(cp, path)

	for _, e := range a.entries {
		if !overlaps(cp, e.path) {
			continue
		}
		if kind == Read && e.kind == Read {
			continue
		}
		return nil, &ConflictError{Requested: cp, Held: e.path}
	}

	a.nextID++
	id := a.nextID
	a.entries = append(a.entries, entry{id: id, path: cp, kind: kind})
	sortEntries(a.entries)
	return &Permit{auth: a, path: cp, kind: kind, id: id}, nil
}

func (a *Authority) release(id uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, e := range a.entries {
		if e.id == id {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			return
		}
	}
}

// Held returns the paths currently registered, sorted, for diagnostics and
// tests.
func (a *Authority) Held() [][]byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([][]byte, len(a.entries))
	for i, e := range a.entries {
		out[i] = append([]byte(nil), e.path...)
	}
	return out
}

func sortEntries(es []entry) {
	sort.Slice(es, func(i, j int) bool {
		return bytes.Compare(es[i].path, es[j].path) < 0
	})
}
