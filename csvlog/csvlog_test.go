package csvlog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogMetrics(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	require.NoError(t, w.LogMetrics(100, -0.055, 0.0123))
	require.NoError(t, w.LogMetrics(200, -0.0556, 0.004))
	require.NoError(t, w.Close())

	assert.Equal(t, "100,-0.055,0.0123\n200,-0.0556,0.004\n", buf.String())
}

func TestRowsAreFlushedImmediately(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	require.NoError(t, w.LogMetrics(1, 0, 0.5))
	assert.Equal(t, "1,0,0.5\n", buf.String())
}

func TestCreateWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")

	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.LogMetrics(10, 0.25, 1))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "10,0.25,1\n", string(data))
}

func TestCreateRejectsBadPath(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "missing", "metrics.csv"))
	assert.Error(t, err)
}
