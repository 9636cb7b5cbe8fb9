package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"document-management-server/internal/common"
	"document-management-server/internal/model"
	"document-management-server/internal/model/requestresponse"
	"document-management-server/internal/ports"
	"document-management-server/internal/util"
)

// multipartOverhead is allowed on top of the file limit for the other form fields.
const multipartOverhead = 1 << 20

type DocumentHandler struct {
	ports.DocumentService
	maxUploadBytes int64
}

func NewDocumentHandler(documentService ports.DocumentService, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{documentService, maxUploadBytes}
}

// UploadDocument godoc
// @Summary Upload a document
// @Description Stores the file with its metadata. Uploads by staff wait for review, uploads by admins are approved at once.
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param category formData string false "Category name, created when missing"
// @Param type formData string false "Document kind"
// @Param access_level formData string false "public, internal or confidential"
// @Param tags formData string false "Comma separated tags"
// @Success 201 {object} model.DocumentDetails
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/documents [post]
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			util.WriteError(w, r, common.Validation("File size exceeds the allowed limit"))
			return
		}
		util.WriteError(w, r, common.Validation("Invalid multipart form"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, err := readFormFile(r, "file")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	document, err := h.DocumentService.Upload(r.Context(), model.UploadDocumentInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Type:        r.FormValue("type"),
		AccessLevel: r.FormValue("access_level"),
		Tags:        r.FormValue("tags"),
		File:        *file,
	})
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, document)
}

// ListDocuments godoc
// @Summary List documents
// @Description Newest first. Staff only ever see approved documents; the status filter is honoured for admins.
// @Tags Documents
// @Produce json
// @Param search query string false "Matches title or description"
// @Param type query string false "Document kind"
// @Param access_level query string false "Access level"
// @Param category query string false "Category name"
// @Param status query string false "pending, approved or rejected (admins only)"
// @Param limit query int false "Page size, default 20, max 100"
// @Param offset query int false "Page offset"
// @Success 200 {object} requestresponse.DocumentListResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/documents [get]
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := h.DocumentService.List(r.Context(), model.DocumentFilter{
		Search:      strings.TrimSpace(query.Get("search")),
		Type:        query.Get("type"),
		AccessLevel: query.Get("access_level"),
		Category:    query.Get("category"),
		Status:      query.Get("status"),
		Limit:       queryInt(r, "limit"),
		Offset:      queryInt(r, "offset"),
	})
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.DocumentListResponseFromModel(page))
}

// ListPendingDocuments godoc
// @Summary Documents waiting for review
// @Tags Documents
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} requestresponse.DocumentListResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/documents/pending [get]
func (h *DocumentHandler) ListPendingDocuments(w http.ResponseWriter, r *http.Request) {
	page, err := h.DocumentService.ListPending(r.Context(), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.DocumentListResponseFromModel(page))
}

// GetDocument godoc
// @Summary Document metadata
// @Description Counts a view.
// @Tags Documents
// @Produce json
// @Param id path int true "Document id"
// @Success 200 {object} model.DocumentDetails
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/documents/{id} [get]
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	document, err := h.DocumentService.Get(r.Context(), id)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, document)
}

// UpdateDocument godoc
// @Summary Update document metadata
// @Description Owner or admin. Only supplied fields change; tags replace the previous list.
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path int true "Document id"
// @Param body body requestresponse.UpdateDocumentRequest true "Fields to change"
// @Success 200 {object} model.DocumentDetails
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/documents/{id} [put]
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	var req requestresponse.UpdateDocumentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}

	document, err := h.DocumentService.Update(r.Context(), id, req.Changes())
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, document)
}

// DeleteDocument godoc
// @Summary Delete a document
// @Tags Documents
// @Produce json
// @Param id path int true "Document id"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if err := h.DocumentService.Delete(r.Context(), id); err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Document deleted successfully"})
}

// DownloadDocument godoc
// @Summary Download the file
// @Description Served as an attachment and counted as a download.
// @Tags Documents
// @Produce octet-stream
// @Param id path int true "Document id"
// @Success 200 {file} file
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/documents/{id}/download [get]
func (h *DocumentHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, model.DispositionAttachment)
}

// ViewDocument godoc
// @Summary View the file inline
// @Tags Documents
// @Produce octet-stream
// @Param id path int true "Document id"
// @Success 200 {file} file
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/documents/{id}/view [get]
func (h *DocumentHandler) ViewDocument(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, model.DispositionInline)
}

func (h *DocumentHandler) serveFile(w http.ResponseWriter, r *http.Request, disposition model.Disposition) {
	id, err := idParam(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	result, err := h.DocumentService.Download(r.Context(), id, disposition)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", contentDisposition(result.Disposition, result.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		slog.WarnContext(r.Context(), "[DocumentHandler] failed to write file", "document_id", id, "error", err)
	}
}

// ApproveDocument godoc
// @Summary Approve a pending document
// @Tags Documents
// @Produce json
// @Param id path int true "Document id"
// @Success 200 {object} model.DocumentDetails
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse "Already reviewed"
// @Router /api/documents/{id}/approve [post]
func (h *DocumentHandler) ApproveDocument(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.DocumentService.Approve)
}

// RejectDocument godoc
// @Summary Reject a pending document
// @Tags Documents
// @Produce json
// @Param id path int true "Document id"
// @Success 200 {object} model.DocumentDetails
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse "Already reviewed"
// @Router /api/documents/{id}/reject [post]
func (h *DocumentHandler) RejectDocument(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.DocumentService.Reject)
}

func (h *DocumentHandler) review(w http.ResponseWriter, r *http.Request, decide func(ctx context.Context, id int64) (*model.DocumentDetails, error)) {
	id, err := idParam(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	document, err := decide(r.Context(), id)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, document)
}

// readFormFile : the named multipart file with its declared content type
func readFormFile(r *http.Request, field string) (*model.UploadedFile, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, common.Validation("No file provided")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, common.Internal("[DocumentHandler] failed to read uploaded file", err)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return &model.UploadedFile{
		Name:     header.Filename,
		Size:     int64(len(data)),
		MimeType: mimeType,
		Data:     data,
	}, nil
}

// contentDisposition : quoted ASCII filename plus an RFC 5987 form when the
// name carries anything else
func contentDisposition(disposition model.Disposition, fileName string) string {
	ascii := strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '\\':
			return '_'
		case r < 0x20 || r == 0x7f:
			return -1
		case r > 0x7e:
			return '_'
		default:
			return r
		}
	}, fileName)

	value := fmt.Sprintf("%s; filename=\"%s\"", disposition, ascii)
	if ascii != fileName {
		value += "; filename*=UTF-8''" + url.PathEscape(fileName)
	}
	return value
}
