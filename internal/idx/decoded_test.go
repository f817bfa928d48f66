package idx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeTestImages(t *testing.T) *DecodedSet {
	t.Helper()
	// Two 2x3 images.
	set, err := DecodeImageSet(bytes.NewReader(imageFile(MagicImages, 2, 2, 3, []byte{
		1, 2, 3,
		4, 5, 6,

		7, 8, 9,
		10, 11, 12,
	})))
	require.NoError(t, err)
	return set
}

func TestDecodedSet_Image(t *testing.T) {
	set := decodeTestImages(t)

	img, err := set.Image(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 8, 9, 10, 11, 12}, img)
	assert.Equal(t, 6, set.ImageSize())

	// Copies never alias the owned buffer.
	img[0] = 99
	again, err := set.Image(1)
	require.NoError(t, err)
	assert.Equal(t, byte(7), again[0])

	_, err = set.Image(2)
	assert.Error(t, err)
	_, err = set.Image(-1)
	assert.Error(t, err)
	_, err = set.Label(0)
	assert.Error(t, err)
}

func TestDecodedSet_Pixel(t *testing.T) {
	set := decodeTestImages(t)

	p, err := set.Pixel(0, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), p)

	p, err = set.Pixel(1, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(8), p)

	_, err = set.Pixel(0, 2, 0)
	assert.Error(t, err)
	_, err = set.Pixel(0, 0, 3)
	assert.Error(t, err)
}

func TestDecodedSet_Label(t *testing.T) {
	set, err := DecodeLabelSet(bytes.NewReader(labelFile(MagicLabels, 3, []byte{5, 7, 9})))
	require.NoError(t, err)

	l, err := set.Label(2)
	require.NoError(t, err)
	assert.Equal(t, uint8(9), l)

	_, err = set.Label(3)
	assert.Error(t, err)
	_, err = set.Image(0)
	assert.Error(t, err)
}

func TestDecodedSet_TakeBuffer(t *testing.T) {
	set := decodeTestImages(t)
	require.False(t, set.Released())
	require.Equal(t, 12, set.Len())

	buf := set.TakeBuffer()
	assert.Len(t, buf, 12)
	assert.True(t, set.Released())
	assert.Equal(t, 0, set.Len())
	assert.Nil(t, set.Bytes())
	assert.Nil(t, set.TakeBuffer())

	// Shape metadata survives the hand-off.
	assert.Equal(t, []int{2, 2, 3}, set.Shape())

	_, err := set.Image(0)
	assert.Error(t, err)
}

func TestDecodedSet_String(t *testing.T) {
	set := decodeTestImages(t)
	assert.Equal(t, "idx.DecodedSet{kind: images, shape: [2 2 3], bytes: 12}", set.String())
}
