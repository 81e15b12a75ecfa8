package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(3, 20, 41)
	require.Equal(t, 3, p.TotalPages)
	require.Equal(t, 40, p.Offset())

	empty := NewPagination(0, 20, 0)
	require.Equal(t, 1, empty.Page)
	require.Zero(t, empty.TotalPages)
	require.Zero(t, empty.Offset())
}
