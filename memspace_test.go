package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemSpaceCreate(t *testing.T) {
	var m memSpace
	x := m.create("X")
	y := m.create("Y")
	assert.Equal(t, Cell(0), x)
	assert.Equal(t, Cell(1), y)

	got, err := m.load(x)
	require.NoError(t, err)
	assert.Equal(t, Cell(0), got, "variables start zeroed")

	require.NoError(t, m.stor(x, 42))
	got, err = m.load(x)
	require.NoError(t, err)
	assert.Equal(t, Cell(42), got)

	got, err = m.load(y)
	require.NoError(t, err)
	assert.Equal(t, Cell(0), got, "store stays within its cell")
}

func TestMemSpaceBounds(t *testing.T) {
	var m memSpace

	_, err := m.load(0)
	assert.Equal(t, InvalidAddressError{Addr: 0}, err)

	m.create("X")
	_, err = m.load(1)
	assert.Equal(t, InvalidAddressError{Addr: 1}, err)
	assert.Equal(t, InvalidAddressError{Addr: -1}, m.stor(-1, 9))
}

func TestMemSpaceAllot(t *testing.T) {
	var m memSpace
	assert.Equal(t, errAllotNothing, m.allot(2))

	a := m.create("A")
	require.NoError(t, m.allot(2))
	require.NoError(t, m.stor(a+2, 7))
	got, err := m.load(a + 2)
	require.NoError(t, err)
	assert.Equal(t, Cell(7), got)

	_, err = m.load(a + 3)
	assert.Equal(t, InvalidAddressError{Addr: 3}, err)

	assert.Equal(t, errAllotShrink, m.allot(-1))
}
