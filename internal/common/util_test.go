package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	key, err := MakeRandHexString(32)
	require.NoError(t, err)
	assert.Len(t, key, 64)

	raw, err := hex.DecodeString(key)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	other, err := MakeRandHexString(32)
	require.NoError(t, err)
	assert.NotEqual(t, key, other, "ephemeral secret keys must differ between runs")
}

func TestMakeRandHexString_Empty(t *testing.T) {
	key, err := MakeRandHexString(0)
	require.NoError(t, err)
	assert.Empty(t, key)
}
