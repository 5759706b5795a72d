package morph

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ones(rows, cols int) [][]int {
	f := make([][]int, rows)
	for i := range f {
		f[i] = make([]int, cols)
		for j := range f[i] {
			f[i][j] = 1
		}
	}
	return f
}

func blockedCount(f [][]int) int {
	n := 0
	for _, row := range f {
		for _, v := range row {
			if v == 0 {
				n++
			}
		}
	}
	return n
}

func TestKernelOffsets(t *testing.T) {
	cases := []struct{ k, left, right int }{
		{1, 0, 1},
		{2, 1, 1},
		{3, 1, 2},
		{4, 2, 2},
		{5, 2, 3},
	}
	for _, tc := range cases {
		l, r := KernelOffsets(tc.k)
		assert.Equal(t, tc.left, l, "left(%d)", tc.k)
		assert.Equal(t, tc.right, r, "right(%d)", tc.k)
	}
}

func TestDilate_OddKernelIsCentred(t *testing.T) {
	f := ones(7, 7)
	f[3][3] = 0
	out := Dilate(f, 3)

	for r := 0; r < 7; r++ {
		for c := 0; c < 7; c++ {
			want := 1
			if r >= 2 && r <= 4 && c >= 2 && c <= 4 {
				want = 0
			}
			assert.Equal(t, want, out[r][c], "cell %d,%d", r, c)
		}
	}
	assert.Equal(t, 1, blockedCount(f), "input must stay untouched")
}

func TestDilate_EvenKernelLeansLow(t *testing.T) {
	f := ones(6, 6)
	f[3][3] = 0
	out := Dilate(f, 2)

	// window [2,4)×[2,4)
	assert.Equal(t, 4, blockedCount(out))
	for _, rc := range [][2]int{{2, 2}, {2, 3}, {3, 2}, {3, 3}} {
		assert.Equal(t, 0, out[rc[0]][rc[1]])
	}
	assert.Equal(t, 1, out[4][4])
}

func TestDilate_SkipsAnchorsNearEdge(t *testing.T) {
	f := ones(5, 5)
	f[0][2] = 0 // inside the top margin for k=3
	f[4][4] = 0 // inside the bottom-right margin
	out := Dilate(f, 3)
	assert.Equal(t, f, out)
}

func TestDilate_KernelOneIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	f := ones(9, 9)
	for i := 0; i < 12; i++ {
		f[rng.Intn(9)][rng.Intn(9)] = 0
	}
	once := Dilate(f, 1)
	assert.Equal(t, f, once)
	assert.Equal(t, once, Dilate(once, 1))
}

func TestDilate_RepeatedIsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, k := range []int{2, 3, 4} {
		f := ones(15, 15)
		for i := 0; i < 6; i++ {
			f[rng.Intn(15)][rng.Intn(15)] = 0
		}
		once := Dilate(f, k)
		twice := Dilate(once, k)
		for r := range once {
			for c := range once[r] {
				if once[r][c] == 0 {
					require.Equal(t, 0, twice[r][c], "k=%d cell %d,%d unblocked by second pass", k, r, c)
				}
			}
		}
		assert.GreaterOrEqual(t, blockedCount(twice), blockedCount(once))
	}
}

func TestDilate_BoolField(t *testing.T) {
	f := [][]bool{
		{true, true, true, true},
		{true, false, true, true},
		{true, true, true, true},
		{true, true, true, true},
	}
	out := Dilate(f, 3)
	assert.False(t, out[0][0])
	assert.False(t, out[2][2])
	assert.True(t, out[3][3])
}

func TestDilate_RaggedFieldCopied(t *testing.T) {
	f := [][]int{{0, 1, 1}, {1, 1}}
	out := Dilate(f, 3)
	assert.Equal(t, f, out)
	out[0][1] = 7
	assert.Equal(t, 1, f[0][1])
}
