package conf

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Limit Duration `json:"limit"`
	Depth int      `json:"depth"`
	Name  string   `json:"name"`
}

func TestDurationJSON(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{`"1.5s"`, 1500 * time.Millisecond},
		{`"250ms"`, 250 * time.Millisecond},
		{`1000`, 1000},
	}
	for _, tc := range cases {
		var d Duration
		require.NoError(t, json.Unmarshal([]byte(tc.in), &d), tc.in)
		assert.Equal(t, tc.want, d.D(), tc.in)
	}

	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))

	bs, err := json.Marshal(Duration(3 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"3s"`, string(bs))
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"limit": "2s"}`), 0644))

	v := sample{Limit: Duration(time.Second), Depth: 4, Name: "default"}
	require.NoError(t, Load(path, &v))
	assert.Equal(t, 2*time.Second, v.Limit.D())
	assert.Equal(t, 4, v.Depth)
	assert.Equal(t, "default", v.Name)

	assert.Error(t, Load(filepath.Join(t.TempDir(), "missing.json"), &v))
}
