package validation

import (
	"archive/zip"
	"bytes"
	"image"
	"image/png"
	"testing"

	"document-management-server/internal/common"
	"document-management-server/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allowedTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"image/png",
	"image/jpeg",
	"image/gif",
}

const maxSize = 10 << 20

func pdfFile(size int64) model.UploadedFile {
	return model.UploadedFile{
		Name:     "report.pdf",
		Size:     size,
		MimeType: "application/pdf",
		Data:     []byte("%PDF-1.4\n%test"),
	}
}

func TestValidate_AcceptsAllowedTypes(t *testing.T) {
	v := NewFileValidator(maxSize, allowedTypes, false)

	for _, mt := range allowedTypes {
		f := pdfFile(2 << 20)
		f.MimeType = mt
		assert.NoError(t, v.Validate(f), mt)
	}
}

func TestValidate_SizeBoundary(t *testing.T) {
	v := NewFileValidator(maxSize, allowedTypes, false)

	assert.NoError(t, v.Validate(pdfFile(maxSize)))

	err := v.Validate(pdfFile(maxSize + 1))
	require.Error(t, err)
	assert.Equal(t, common.KindValidation, common.KindOf(err))
	assert.Contains(t, err.Error(), "10MB")
}

func TestValidate_RejectsDisallowedType(t *testing.T) {
	v := NewFileValidator(maxSize, allowedTypes, false)

	f := pdfFile(100)
	f.MimeType = "application/x-msdownload"

	err := v.Validate(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "File type not allowed")
}

func TestValidate_IgnoresMimeParameters(t *testing.T) {
	v := NewFileValidator(maxSize, allowedTypes, false)

	f := pdfFile(100)
	f.MimeType = "Application/PDF; charset=binary"
	assert.NoError(t, v.Validate(f))
}

func TestValidate_RejectsEmptyFile(t *testing.T) {
	v := NewFileValidator(maxSize, allowedTypes, false)

	err := v.Validate(model.UploadedFile{Name: "empty.pdf", MimeType: "application/pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No file provided")
}

func TestValidate_DeclaredTypeIsTrustedByDefault(t *testing.T) {
	v := NewFileValidator(maxSize, allowedTypes, false)

	f := model.UploadedFile{Name: "x.pdf", Size: 4, MimeType: "application/pdf", Data: []byte("MZ\x90\x00")}
	assert.NoError(t, v.Validate(f))
}

func TestValidate_VerifyContent(t *testing.T) {
	v := NewFileValidator(maxSize, allowedTypes, true)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	img := model.UploadedFile{Name: "a.png", Size: int64(buf.Len()), MimeType: "image/png", Data: buf.Bytes()}
	assert.NoError(t, v.Validate(img))

	fake := model.UploadedFile{Name: "a.pdf", Size: 4, MimeType: "application/pdf", Data: []byte("MZ\x90\x00")}
	err := v.Validate(fake)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func zipPayload(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("<xml/>"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestValidate_VerifyContent_OfficeContainer(t *testing.T) {
	v := NewFileValidator(maxSize, allowedTypes, true)
	docxType := "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	docx := zipPayload(t, "[Content_Types].xml", "word/document.xml")
	f := model.UploadedFile{Name: "contract.docx", Size: int64(len(docx)), MimeType: docxType, Data: docx}
	assert.NoError(t, v.Validate(f))

	plain := zipPayload(t, "notes.txt")
	f = model.UploadedFile{Name: "contract.docx", Size: int64(len(plain)), MimeType: docxType, Data: plain}
	err := v.Validate(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestValidate_SizeMessageBelowOneMegabyte(t *testing.T) {
	tests := []struct {
		name  string
		limit int64
		want  string
	}{
		{name: "kilobytes", limit: 512 << 10, want: "512KB"},
		{name: "bytes", limit: 1000, want: "1000 bytes"},
		{name: "fractional megabytes", limit: 1536 << 10, want: "1536KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewFileValidator(tt.limit, allowedTypes, false)
			err := v.Validate(pdfFile(tt.limit + 1))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "exceeds the "+tt.want+" limit")
		})
	}
}
