package qrcode_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scythe/internal/qrcode"
)

func TestGenerate(t *testing.T) {
	data, err := qrcode.Generate("http://localhost:8080/table.html?table=abc", 128)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())

	data, err = qrcode.Generate("http://x", 0)
	require.NoError(t, err)
	img, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, qrcode.DefaultSize, img.Bounds().Dx())
}

func TestGenerateRejectsEmpty(t *testing.T) {
	_, err := qrcode.Generate("", 128)
	require.Error(t, err)
}
