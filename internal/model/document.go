package model

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

type AccessLevel string

const (
	AccessPublic       AccessLevel = "public"
	AccessInternal     AccessLevel = "internal"
	AccessConfidential AccessLevel = "confidential"
)

func ParseAccessLevel(s string) (AccessLevel, error) {
	switch AccessLevel(s) {
	case AccessPublic:
		return AccessPublic, nil
	case AccessInternal:
		return AccessInternal, nil
	case AccessConfidential:
		return AccessConfidential, nil
	default:
		return "", fmt.Errorf("unknown access level %q", s)
	}
}

// Document is the stored record. The payload lives either inline in FileData
// or in the blob store under StorageKey.
type Document struct {
	ID           int64          `db:"id" json:"id"`
	Title        string         `db:"title" json:"title"`
	Description  string         `db:"description" json:"description"`
	FileData     []byte         `db:"file_data" json:"-"`
	StorageKey   *string        `db:"storage_key" json:"-"`
	FileName     string         `db:"file_name" json:"file_name"`
	FileSize     int64          `db:"file_size" json:"file_size"`
	FileType     string         `db:"file_type" json:"file_type"`
	CategoryID   *int64         `db:"category_id" json:"category_id,omitempty"`
	Type         string         `db:"type" json:"type"`
	AccessLevel  AccessLevel    `db:"access_level" json:"access_level"`
	Tags         pq.StringArray `db:"tags" json:"tags"`
	UploadedBy   int64          `db:"uploaded_by" json:"uploaded_by"`
	Downloads    int64          `db:"downloads" json:"downloads"`
	Views        int64          `db:"views" json:"views"`
	Status       Status         `db:"status" json:"status"`
	ApprovedBy   *int64         `db:"approved_by" json:"approved_by,omitempty"`
	ApprovalDate *time.Time     `db:"approval_date" json:"approval_date,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// DocumentDetails is a document joined with its uploader and category.
type DocumentDetails struct {
	Document
	UploaderName  string  `db:"uploader_name" json:"uploader_name"`
	UploaderEmail string  `db:"uploader_email" json:"uploader_email"`
	CategoryName  *string `db:"category_name" json:"category_name,omitempty"`
}

// DocumentPayload is what a download needs.
type DocumentPayload struct {
	ID         int64   `db:"id"`
	Title      string  `db:"title"`
	FileData   []byte  `db:"file_data"`
	StorageKey *string `db:"storage_key"`
	FileName   string  `db:"file_name"`
	FileType   string  `db:"file_type"`
	FileSize   int64   `db:"file_size"`
	UploadedBy int64   `db:"uploaded_by"`
	Status     Status  `db:"status"`
}

// DocumentFilter narrows a listing. Status is honoured for admins only;
// non-admin listings are always restricted to approved documents.
type DocumentFilter struct {
	Search      string `json:"search,omitempty"`
	Type        string `json:"type,omitempty"`
	AccessLevel string `json:"access_level,omitempty"`
	Category    string `json:"category,omitempty"`
	Status      string `json:"status,omitempty"`
	Limit       int    `json:"limit"`
	Offset      int    `json:"offset"`
}

type DocumentPage struct {
	Documents []DocumentDetails `json:"documents"`
	Total     int               `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

// DocumentChanges holds a partial update; nil fields are left untouched.
// Category is a free-text name resolved through get-or-create; an empty
// string clears the category.
type DocumentChanges struct {
	Title       *string
	Description *string
	Category    *string
	Type        *string
	AccessLevel *string
	Tags        *string
}

func (c DocumentChanges) Empty() bool {
	return c.Title == nil && c.Description == nil && c.Category == nil &&
		c.Type == nil && c.AccessLevel == nil && c.Tags == nil
}

// DocumentUpdate is the resolved form of DocumentChanges written by the repository.
type DocumentUpdate struct {
	Title       *string
	Description *string
	SetCategory bool
	CategoryID  *int64
	Type        *string
	AccessLevel *AccessLevel
	Tags        []string
	SetTags     bool
}

// UploadedFile is a file as received from the client.
type UploadedFile struct {
	Name     string
	Size     int64
	MimeType string
	Data     []byte
}

type UploadDocumentInput struct {
	Title       string
	Description string
	Category    string
	Type        string
	AccessLevel string
	Tags        string
	File        UploadedFile
}

type DocumentPermission struct {
	HasPermission bool `json:"has_permission"`
	IsOwner       bool `json:"is_owner"`
	IsAdmin       bool `json:"is_admin"`
}

type Disposition string

const (
	DispositionAttachment Disposition = "attachment"
	DispositionInline     Disposition = "inline"
)

type DownloadResult struct {
	FileName    string
	ContentType string
	Data        []byte
	Disposition Disposition
}
