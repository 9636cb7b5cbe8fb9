package util

import (
	"bytes"
	"encoding/hex"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"document-management-server/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a, b ,c", []string{"a", "b", "c"}},
		{"q1,finance", []string{"q1", "finance"}},
		{"x,,x, ,Y", []string{"x", "x", "Y"}},
		{"", []string{}},
		{" , ", []string{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTags(tt.in), "input %q", tt.in)
	}
}

func TestGenerateSecret_IsHex(t *testing.T) {
	secret, err := GenerateSecret(32)
	require.NoError(t, err)
	assert.Len(t, secret, 64)

	_, err = hex.DecodeString(secret)
	assert.NoError(t, err)
}

func TestHashSecret_IsSHA256Hex(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", HashSecret("abc"))
}

func TestWriteError_MapsKinds(t *testing.T) {
	tests := []struct {
		err  error
		code int
		body string
	}{
		{common.Validation("Title is required"), http.StatusBadRequest, "Title is required"},
		{common.Unauthorized("Unauthorized"), http.StatusUnauthorized, "Unauthorized"},
		{common.Forbidden("Only administrators can delete documents"), http.StatusForbidden, "Only administrators"},
		{common.NotFound("Document not found"), http.StatusNotFound, "Document not found"},
		{common.Conflict("Category already exists"), http.StatusConflict, "Category already exists"},
		{errors.New("pq: password authentication failed"), http.StatusInternalServerError, "Something went wrong"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)

		WriteError(rec, req, tt.err)

		assert.Equal(t, tt.code, rec.Code)
		assert.Contains(t, rec.Body.String(), tt.body)
		assert.NotContains(t, rec.Body.String(), "pq:")
	}
}

func TestNormalizeAvatar(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for x := 0; x < 400; x++ {
		src.Set(x, 150, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, err := NormalizeAvatar(buf.Bytes())
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, AvatarSize, img.Bounds().Dx())
	assert.Equal(t, AvatarSize, img.Bounds().Dy())
}

func TestNormalizeAvatar_RejectsGarbage(t *testing.T) {
	_, err := NormalizeAvatar([]byte("not an image"))
	assert.Error(t, err)
}
