package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type holder struct {
	TTL Duration `json:"ttl" yaml:"ttl"`
}

func TestDuration_JSON(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{`{"ttl":"90s"}`, 90 * time.Second, false},
		{`{"ttl":1000000000}`, time.Second, false},
		{`{"ttl":null}`, 0, false},
		{`{"ttl":"soon"}`, 0, true},
		{`{"ttl":true}`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var h holder
			err := json.Unmarshal([]byte(tt.in), &h)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, h.TTL.Duration)
		})
	}

	out, err := json.Marshal(holder{TTL: Duration{5 * time.Minute}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ttl":"5m0s"}`, string(out))
}

func TestDuration_YAML(t *testing.T) {
	var h holder
	require.NoError(t, yaml.Unmarshal([]byte("ttl: 15m\n"), &h))
	assert.Equal(t, 15*time.Minute, h.TTL.Duration)

	require.NoError(t, yaml.Unmarshal([]byte("ttl: 2000\n"), &h))
	assert.Equal(t, 2*time.Microsecond, h.TTL.Duration)

	require.Error(t, yaml.Unmarshal([]byte("ttl: [1]\n"), &h))

	out, err := yaml.Marshal(holder{TTL: Duration{time.Hour}})
	require.NoError(t, err)
	assert.Equal(t, "ttl: 1h0m0s\n", string(out))
}
