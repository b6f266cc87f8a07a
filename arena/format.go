// Package arena implements MORK's compact arena encoding of a Space: every
// path as a length-prefixed entry, all packed into one contiguous buffer,
// optionally zstd-compressed end to end, and — via Save/Load — backed by a
// memory-mapped file rather than a read-into-RAM copy. It preserves set
// semantics: decoding and re-inserting every entry reconstructs an
// equivalent Space. This package has no separate full structural dump
// format; the only other whole-Space dump is the text form of package sexpr.
//
// Compression follows the teacher's compr.Compressor/Decompressor split
// (compr/compression.go) narrowed to the one algorithm MORK actually
// needs; the on-disk mapping follows vm/malloc_linux.go and
// vm/malloc_windows.go's unix/windows build-tag split, adapted from an
// anonymous VMM reservation to a read-only file mapping.
package arena

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"runtime"

	"github.com/HyperCogWizard/mork-go/space"
	"github.com/HyperCogWizard/mork-go/symbol"
	"github.com/klauspost/compress/zstd"
)

// magic identifies an arena-encoded buffer; version allows the format to
// evolve without silently misreading an old file.
const (
	magic   = "MORKAR01"
	version = 1

	flagCompressed = 1 << 0
)

// Encode packs every path in s into a single contiguous buffer: an
// 8-byte magic, a version byte, a flags byte, a little-endian uint64
// entry count, then each
// path as a uvarint length followed by its raw bytes. When compress is
// true the entry section is zstd-compressed as a whole (better ratio
// than per-entry compression, since paths sharing a prefix benefit from a
// shared dictionary window).
func Encode(s *space.Space, compress bool) ([]byte, error) {
	var body bytes.Buffer
	var lenBuf [binary.MaxVarintLen64]byte
	count := uint64(0)
	s.Each(func(buf []byte) bool {
		n := binary.PutUvarint(lenBuf[:], uint64(len(buf)))
		body.Write(lenBuf[:n])
		body.Write(buf)
		count++
		return true
	})

	payload := body.Bytes()
	flags := byte(0)
	if compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		payload = enc.EncodeAll(payload, nil)
		enc.Close()
		flags |= flagCompressed
	}

	var out bytes.Buffer
	out.WriteString(magic)
	out.WriteByte(version)
	out.WriteByte(flags)
	var countBuf [8]byte
	binary.LittleEndian.PutUint64(countBuf[:], count)
	out.Write(countBuf[:])
	out.Write(payload)
	return out.Bytes(), nil
}

// Decode reconstructs a Space from bytes produced by Encode. Paths are
// inserted verbatim, symbol payloads included; interner is not consulted
// while decoding and only becomes the new Space's interner, so it must map
// those payloads back to the same symbols as the interner that produced
// the original Space (the same interner, or one seeded with the same
// symbol table).
func Decode(buf []byte, interner symbol.Interner) (*space.Space, error) {
	if len(buf) < len(magic)+2+8 {
		return nil, fmt.Errorf("arena: truncated header")
	}
	if string(buf[:len(magic)]) != magic {
		return nil, fmt.Errorf("arena: bad magic")
	}
	pos := len(magic)
	ver := buf[pos]
	pos++
	if ver != version {
		return nil, fmt.Errorf("arena: unsupported version %d", ver)
	}
	flags := buf[pos]
	pos++
	count := binary.LittleEndian.Uint64(buf[pos : pos+8])
	pos += 8

	payload := buf[pos:]
	if flags&flagCompressed != 0 {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(runtime.GOMAXPROCS(0)))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		payload, err = dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, err
		}
	}

	s := space.New(interner)
	off := 0
	for i := uint64(0); i < count; i++ {
		n, k := binary.Uvarint(payload[off:])
		if k <= 0 {
			return nil, fmt.Errorf("arena: malformed length prefix at entry %d", i)
		}
		off += k
		if off+int(n) > len(payload) {
			return nil, fmt.Errorf("arena: entry %d overruns buffer", i)
		}
		path := payload[off : off+int(n)]
		off += int(n)
		if _, err := insertPath(s, path); err != nil {
			return nil, err
		}
	}
	return s, nil
}
