package terminal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewport(t *testing.T) {
	rows, cols := Viewport(80, 24, 4, 1)
	assert.Equal(t, 20, rows)
	assert.Equal(t, 80, cols)

	rows, cols = Viewport(81, 24, 4, 2)
	assert.Equal(t, 20, rows)
	assert.Equal(t, 40, cols)

	rows, cols = Viewport(0, 2, 4, 0)
	assert.Equal(t, 1, rows)
	assert.Equal(t, 1, cols)
}

func TestSizeOf_FallsBackForFiles(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	w, h := SizeOf(f)
	assert.Equal(t, DefaultWidth, w)
	assert.Equal(t, DefaultHeight, h)
	assert.False(t, IsTerminal(f))

	w, h = SizeOf(nil)
	assert.Equal(t, DefaultWidth, w)
	assert.Equal(t, DefaultHeight, h)
}
