// Package ids mints and validates object identifiers for stored records.
//
// Identifiers follow the classic object-id shape: 12 bytes, rendered as a
// 24-character lowercase hex string. The first four bytes are a unix
// timestamp so freshly minted ids sort roughly by creation time.
package ids

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"time"
)

var ErrInvalidID = errors.New("invalid id: must be 12 or 24 characters")

// New mints a 24-character hex object id.
func New() string {
	var raw [12]byte
	binary.BigEndian.PutUint32(raw[:4], uint32(time.Now().Unix()))
	if _, err := rand.Read(raw[4:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(raw[:])
}

// IsValid reports whether value has a valid identifier shape: either the
// 12-byte raw form or the 24-character hex form.
func IsValid(value string) bool {
	switch len(value) {
	case 12:
		return true
	case 24:
		_, err := hex.DecodeString(value)
		return err == nil
	default:
		return false
	}
}

// Validate returns ErrInvalidID when value does not have an identifier shape.
func Validate(value string) error {
	if !IsValid(value) {
		return ErrInvalidID
	}
	return nil
}
