package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"Int", 5, 5},
		{"Int64", int64(7), 7},
		{"Float", 3.9, 3},
		{"String", " 42 ", 42},
		{"Bytes", []byte("12"), 12},
		{"Junk", "abc", 0},
		{"Nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool("yes"))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool([]byte("1")))
	assert.False(t, ToBool("false"))
	assert.False(t, ToBool(""))
	assert.False(t, ToBool(2))
	assert.False(t, ToBool(3.0))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("238")
	assert.NoError(t, err)
	assert.Equal(t, 238, id)

	_, err = ParseID("")
	assert.Error(t, err)

	_, err = ParseID("-1")
	assert.Error(t, err)

	assert.Equal(t, "238", FormatID(238))
}
