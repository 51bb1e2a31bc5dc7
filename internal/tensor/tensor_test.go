package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeros(t *testing.T) {
	x := Zeros(2, 3, 4)

	assert.True(t, x.Shape().Equal(Shape{2, 3, 4}))
	assert.Equal(t, 24, x.Shape().NumElements())
	for _, v := range x.Data() {
		assert.Zero(t, v)
	}
}

func TestSetAt(t *testing.T) {
	x := Zeros(2, 3, 4)
	x.Set(1, 1, 2, 3)

	assert.Equal(t, 1.0, x.At(1, 2, 3))
	assert.Equal(t, 0.0, x.At(0, 2, 3))
	assert.Equal(t, 1.0, x.Data()[len(x.Data())-1])
}

func TestRowIsAView(t *testing.T) {
	x := Zeros(2, 3, 4)
	row := x.Row(0, 1)
	require.Len(t, row, 4)

	row[2] = 7
	assert.Equal(t, 7.0, x.At(0, 1, 2))
}

func TestRows(t *testing.T) {
	x := Zeros(2, 3, 4)
	x.Set(5, 1, 0, 0)
	x.Set(6, 1, 2, 3)

	rows := x.Rows(1)
	require.Len(t, rows, 3)
	assert.Equal(t, 5.0, rows[0][0])
	assert.Equal(t, 6.0, rows[2][3])

	// 2D tensors need no leading index.
	y := Zeros(3, 4)
	assert.Len(t, y.Rows(), 3)
}

func TestZero(t *testing.T) {
	x := Zeros(2, 2)
	x.Set(3, 1, 1)
	x.Zero()

	assert.Equal(t, 0.0, x.At(1, 1))
}

func TestOutOfRangePanics(t *testing.T) {
	x := Zeros(2, 2)

	assert.Panics(t, func() { x.At(2, 0) })
	assert.Panics(t, func() { x.At(0) })
	assert.Panics(t, func() { x.Row(0, 0) })
}
