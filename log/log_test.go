// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"math/big"
	"strings"
	"testing"
	"time"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T, verbosity int) *bytes.Buffer {
	old := ethlog.Root()
	t.Cleanup(func() { ethlog.SetDefault(old) })

	buf := &bytes.Buffer{}
	Setup(buf, verbosity, true, false)
	return buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestWithContextFollowsRoot(t *testing.T) {
	// created before Setup on purpose
	logger := WithContext("pkg", "test")
	buf := captureJSON(t, 3)

	logger.Info("hello", "value", big.NewInt(5), "u", uint256.NewInt(7), "took", time.Second)
	logger.Debug("filtered")
	logger.New("sub", 1).Warn("child")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "hello", lines[0]["msg"])
	assert.Equal(t, "info", lines[0]["lvl"])
	assert.Equal(t, "test", lines[0]["pkg"])
	assert.Equal(t, "5", lines[0]["value"])
	assert.Equal(t, "7", lines[0]["u"])
	assert.Equal(t, "1s", lines[0]["took"])
	assert.Contains(t, lines[0], "t")

	assert.Equal(t, "warn", lines[1]["lvl"])
	assert.Equal(t, "test", lines[1]["pkg"])
	assert.Equal(t, float64(1), lines[1]["sub"])
}

func TestVerbosity(t *testing.T) {
	buf := captureJSON(t, 5)
	Trace("trace")
	Debug("debug")
	assert.Len(t, decodeLines(t, buf), 2)

	buf = captureJSON(t, 1)
	Warn("warn")
	Error("error")
	assert.Len(t, decodeLines(t, buf), 1)
}

func TestTerminal(t *testing.T) {
	old := ethlog.Root()
	t.Cleanup(func() { ethlog.SetDefault(old) })

	buf := &bytes.Buffer{}
	Setup(buf, 3, false, false)
	Root().Info("started", "addr", "localhost:8669")
	assert.Contains(t, buf.String(), "started")
	assert.Contains(t, buf.String(), "addr=localhost:8669")

	SetDefault(DiscardHandler())
	buf.Reset()
	Info("dropped")
	assert.Empty(t, buf.String())
}
