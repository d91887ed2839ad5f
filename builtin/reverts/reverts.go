// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"encoding/binary"
	"errors"
)

// errorSelector is the 4-byte selector of Error(string).
var errorSelector = []byte{0x08, 0xc3, 0x79, 0xa0}

// ErrRequire is a contract level failure, the equivalent of a failed require().
// Every state change made by the failing call is reverted.
type ErrRequire struct {
	message string
}

// New creates a require error with the given revert reason.
func New(message string) *ErrRequire {
	return &ErrRequire{
		message: message,
	}
}

func (e *ErrRequire) Error() string {
	return e.message
}

// Reason returns the revert reason.
func (e *ErrRequire) Reason() string {
	return e.message
}

// Bytes returns the ABI encoded Error(string) revert data.
func (e *ErrRequire) Bytes() []byte {
	if e == nil {
		return nil
	}

	msg := []byte(e.message)
	padded := ((len(msg) + 31) / 32) * 32

	// selector + offset (32 bytes) + length (32 bytes) + data (padded to 32)
	encoded := make([]byte, 4+32+32+padded)
	copy(encoded, errorSelector)
	binary.BigEndian.PutUint64(encoded[4+24:], 32)
	binary.BigEndian.PutUint64(encoded[4+32+24:], uint64(len(msg)))
	copy(encoded[4+64:], msg)
	return encoded
}

// DecodeReason extracts the revert reason from ABI encoded Error(string) data.
func DecodeReason(data []byte) (string, bool) {
	if len(data) < 4+64 || string(data[:4]) != string(errorSelector) {
		return "", false
	}
	offset := binary.BigEndian.Uint64(data[4+24 : 4+32])
	if offset != 32 {
		return "", false
	}
	length := binary.BigEndian.Uint64(data[4+32+24 : 4+64])
	if uint64(len(data)-4-64) < length {
		return "", false
	}
	return string(data[4+64 : 4+64+int(length)]), true
}

// IsRevertErr reports whether err is, or wraps, a require error.
func IsRevertErr(err error) bool {
	if err == nil {
		return false
	}
	var re *ErrRequire
	return errors.As(err, &re) && re != nil
}
