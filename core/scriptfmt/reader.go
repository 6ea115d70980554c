package scriptfmt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// Read decodes a snapshot file, verifying the magic, version and body hash.
// It returns the canonical form and the verified hash.
func Read(r io.Reader) (*CanonicalSnapshot, [32]byte, error) {
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, [32]byte{}, fmt.Errorf("reading magic: %w", err)
	}
	if !bytes.Equal(magic, []byte(Magic)) {
		return nil, [32]byte{}, fmt.Errorf("bad magic %q, want %q", magic, Magic)
	}

	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, [32]byte{}, fmt.Errorf("reading version: %w", err)
	}
	if version != Version {
		return nil, [32]byte{}, fmt.Errorf("unsupported version 0x%04x", version)
	}

	var flags uint16
	if err := binary.Read(r, binary.LittleEndian, &flags); err != nil {
		return nil, [32]byte{}, fmt.Errorf("reading flags: %w", err)
	}

	var bodyLen uint64
	if err := binary.Read(r, binary.LittleEndian, &bodyLen); err != nil {
		return nil, [32]byte{}, fmt.Errorf("reading body length: %w", err)
	}

	var stored [32]byte
	if _, err := io.ReadFull(r, stored[:]); err != nil {
		return nil, [32]byte{}, fmt.Errorf("reading hash: %w", err)
	}

	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, [32]byte{}, fmt.Errorf("reading body: %w", err)
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
	if digest != stored {
		return nil, [32]byte{}, fmt.Errorf("body hash mismatch")
	}

	var cs CanonicalSnapshot
	if err := cbor.Unmarshal(body, &cs); err != nil {
		return nil, [32]byte{}, fmt.Errorf("decoding body: %w", err)
	}
	return &cs, digest, nil
}
