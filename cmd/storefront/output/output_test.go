package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStars(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{0, "☆☆☆☆☆"},
		{4.4, "★★★★☆"},
		{4.5, "★★★★★"},
		{7, "★★★★★"},
		{-1, "☆☆☆☆☆"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Stars(tt.rating), tt.rating)
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)

	p.Success("added %s", "Ghế X1")
	p.Table([]string{"ID", "Name"}, [][]string{{"1", "Ghế X1"}})

	out := buf.String()
	assert.Contains(t, out, "added Ghế X1")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Ghế X1")
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)

	require.True(t, p.JSON())
	require.NoError(t, p.Encode(map[string]int{"count": 2}))
	assert.JSONEq(t, `{"count":2}`, buf.String())
}
