// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarshalUnmarshall(t *testing.T) {
	originalHex := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var unmarshaledValue Bytes32

	err := unmarshaledValue.UnmarshalJSON([]byte(originalHex))
	assert.NoError(t, err)

	err = json.Unmarshal([]byte(originalHex), &unmarshaledValue)
	assert.NoError(t, err)

	directMarshallJSON, err := unmarshaledValue.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, originalHex, string(directMarshallJSON))

	marshalVal, err := json.Marshal(unmarshaledValue)
	assert.NoError(t, err)
	assert.Equal(t, originalHex, string(marshalVal))

	marshalPtr, err := json.Marshal(&unmarshaledValue)
	assert.NoError(t, err)
	assert.Equal(t, originalHex, string(marshalPtr))
}

func TestParseBytes32(t *testing.T) {
	tests := []struct {
		in      string
		wantErr string
	}{
		{"0x00000000000000000000000000000000000000000000000000006d6173746572", ""},
		{"00000000000000000000000000000000000000000000000000006d6173746572", ""},
		{"1x00000000000000000000000000000000000000000000000000006d6173746572", "invalid prefix"},
		{"0X00000000000000000000000000000000000000000000000000006D6173746572", ""},
		{"0x1234", "invalid length"},
		{"0xzz000000000000000000000000000000000000000000000000006d6173746572", "encoding/hex: invalid byte: U+007A 'z'"},
	}
	for _, tt := range tests {
		_, err := ParseBytes32(tt.in)
		if tt.wantErr == "" {
			assert.NoError(t, err, tt.in)
		} else {
			assert.EqualError(t, err, tt.wantErr, tt.in)
		}
	}
}

func TestKeccak256(t *testing.T) {
	// keccak256("") is well known
	assert.Equal(t,
		"0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		Keccak256().String())
	assert.Equal(t, Keccak256([]byte("a"), []byte("b")), Keccak256([]byte("ab")))
}
