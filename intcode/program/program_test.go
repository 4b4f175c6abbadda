package program

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/colorfulnotion/intcode/vmerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	img, err := Parse("1,9,10,3,\n2,3,11,0,99,30,40,50\n")
	require.NoError(t, err)
	assert.Equal(t, Image{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, img)

	img, err = Parse(" 1101, 100, -1, 4, 0 ,")
	require.NoError(t, err)
	assert.Equal(t, Image{1101, 100, -1, 4, 0}, img)

	img, err = Parse("104,1125899906842624,99")
	require.NoError(t, err)
	assert.Equal(t, int64(1125899906842624), img[1])
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(" \n")
	assert.ErrorIs(t, err, vmerrors.ErrEmptyProgram)

	_, err = Parse("1,2,x,4")
	require.ErrorIs(t, err, vmerrors.ErrBadProgramText)
	assert.Contains(t, err.Error(), "index=2")

	_, err = Parse("1,,2")
	assert.ErrorIs(t, err, vmerrors.ErrBadProgramText)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.txt")
	require.NoError(t, os.WriteFile(path, []byte("3,0,4,0,99\n"), 0o644))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "3,0,4,0,99", img.String())

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestPatchLeavesOriginal(t *testing.T) {
	img := MustParse("1,0,0,0,99")
	patched, err := img.Patch(1, 12)
	require.NoError(t, err)
	patched, err = patched.Patch(2, 2)
	require.NoError(t, err)
	assert.Equal(t, Image{1, 12, 2, 0, 99}, patched)
	assert.Equal(t, Image{1, 0, 0, 0, 99}, img)

	grown, err := img.Patch(7, 5)
	require.NoError(t, err)
	assert.Equal(t, Image{1, 0, 0, 0, 99, 0, 0, 5}, grown)
}

func TestPatchNegativeAddress(t *testing.T) {
	img := MustParse("1,0,0,0,99")
	_, err := img.Patch(-1, 7)
	assert.ErrorIs(t, err, vmerrors.ErrNegativeAddress)
	assert.Equal(t, Image{1, 0, 0, 0, 99}, img)
}
