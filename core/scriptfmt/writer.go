package scriptfmt

import (
	"bytes"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/blake2b"
)

const (
	// Magic is the snapshot file magic number (4 bytes).
	Magic = "CSNP"

	// Version is the format version (uint16, little-endian). Breaking
	// changes increment major, additions increment minor.
	Version uint16 = 0x0001
)

// Flags is a bitmask for optional features. No bits are assigned yet.
type Flags uint16

// Write encodes a snapshot to w and returns the 32-byte BLAKE2b-256 hash of
// the canonical body.
//
// Format: MAGIC(4) | VERSION(2) | FLAGS(2) | BODY_LEN(8) | HASH(32) | BODY
func Write(w io.Writer, snap *Snapshot) ([32]byte, error) {
	body, digest, err := Encode(snap)
	if err != nil {
		return [32]byte{}, err
	}

	var preamble bytes.Buffer
	preamble.WriteString(Magic)
	if err := binary.Write(&preamble, binary.LittleEndian, Version); err != nil {
		return [32]byte{}, err
	}
	if err := binary.Write(&preamble, binary.LittleEndian, uint16(Flags(0))); err != nil {
		return [32]byte{}, err
	}
	if err := binary.Write(&preamble, binary.LittleEndian, uint64(len(body))); err != nil {
		return [32]byte{}, err
	}
	preamble.Write(digest[:])

	if _, err := w.Write(preamble.Bytes()); err != nil {
		return [32]byte{}, err
	}
	if _, err := w.Write(body); err != nil {
		return [32]byte{}, err
	}
	return digest, nil
}

// Encode returns the canonical CBOR body and its BLAKE2b-256 hash without
// the file envelope.
func Encode(snap *Snapshot) ([]byte, [32]byte, error) {
	body, err := encMode.Marshal(Canonicalize(snap))
	if err != nil {
		return nil, [32]byte{}, err
	}

	hasher, err := blake2b.New256(nil)
	if err != nil {
		return nil, [32]byte{}, err
	}
	if _, err := hasher.Write(body); err != nil {
		return nil, [32]byte{}, err
	}
	var digest [32]byte
	copy(digest[:], hasher.Sum(nil))
	return body, digest, nil
}
