// Package validation checks uploads before anything is persisted.
package validation

import (
	"fmt"
	"strings"

	"document-management-server/internal/common"
	"document-management-server/internal/model"

	"github.com/gabriel-vasile/mimetype"
)

// FileValidator enforces the upload size limit and the MIME allow-list.
// The declared MIME type is trusted unless VerifyContent is set, in which
// case the payload is sniffed and must also land in the allow-list.
type FileValidator struct {
	maxSize       int64
	allowed       map[string]struct{}
	verifyContent bool
}

func NewFileValidator(maxSize int64, allowedTypes []string, verifyContent bool) *FileValidator {
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(t)] = struct{}{}
	}
	return &FileValidator{maxSize: maxSize, allowed: allowed, verifyContent: verifyContent}
}

func (v *FileValidator) Validate(file model.UploadedFile) error {
	if file.Size == 0 || len(file.Data) == 0 {
		return common.Validation("No file provided")
	}

	if file.Size > v.maxSize {
		return common.Validation(fmt.Sprintf("File size exceeds the %s limit", sizeLabel(v.maxSize)))
	}

	if !v.isAllowed(file.MimeType) {
		return common.Validation("File type not allowed. Allowed types: PDF, DOC, DOCX, XLS, XLSX, PNG, JPEG, GIF")
	}

	if v.verifyContent {
		detected := mimetype.Detect(file.Data)
		if !v.matchesAllowed(detected) {
			return common.Validation("File content does not match an allowed file type")
		}
	}

	return nil
}

func (v *FileValidator) isAllowed(mimeType string) bool {
	base := strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0]))
	_, ok := v.allowed[base]
	return ok
}

// matchesAllowed walks up the detected type's parents. MIME.Is also matches
// the aliases of each type.
func (v *FileValidator) matchesAllowed(detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		for allowed := range v.allowed {
			if m.Is(allowed) {
				return true
			}
		}
	}
	return false
}

// sizeLabel : whole MB or KB when the limit divides evenly, bytes otherwise
func sizeLabel(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
