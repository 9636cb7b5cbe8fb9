package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"document-management-server/internal/common"
	"document-management-server/internal/model"
	"document-management-server/internal/ports"
	"document-management-server/internal/security"
	"document-management-server/internal/util"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type DocumentService struct {
	tx                 ports.Transactor
	documentRepository ports.DocumentRepository
	categories         ports.CategoryResolver
	permissions        ports.PermissionResolver
	validator          ports.FileValidator
	activity           ports.ActivityRecorder
	notifier           ports.Notifier
	cache              ports.ListCache
	storage            ports.BlobStorage
}

// DocumentServiceOption plugs in optional infrastructure.
type DocumentServiceOption func(*DocumentService)

// WithListCache caches listing pages; without it every listing hits the database.
func WithListCache(cache ports.ListCache) DocumentServiceOption {
	return func(s *DocumentService) { s.cache = cache }
}

// WithBlobStorage keeps payloads in external storage instead of file_data.
func WithBlobStorage(storage ports.BlobStorage) DocumentServiceOption {
	return func(s *DocumentService) { s.storage = storage }
}

func NewDocumentService(
	tx ports.Transactor,
	documentRepository ports.DocumentRepository,
	categories ports.CategoryResolver,
	permissions ports.PermissionResolver,
	validator ports.FileValidator,
	activity ports.ActivityRecorder,
	notifier ports.Notifier,
	opts ...DocumentServiceOption,
) *DocumentService {
	s := &DocumentService{
		tx:                 tx,
		documentRepository: documentRepository,
		categories:         categories,
		permissions:        permissions,
		validator:          validator,
		activity:           activity,
		notifier:           notifier,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload : validates the file, resolves the category and stores payload and
// metadata together. Admin uploads skip review.
func (s *DocumentService) Upload(ctx context.Context, input model.UploadDocumentInput) (*model.DocumentDetails, error) {
	session, err := security.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input.File); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, common.Validation("Title is required")
	}
	accessLevel := model.AccessInternal
	if input.AccessLevel != "" {
		if accessLevel, err = model.ParseAccessLevel(input.AccessLevel); err != nil {
			return nil, common.Validation("Invalid access level")
		}
	}

	isAdmin, err := s.permissions.IsAdmin(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	document := &model.Document{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		FileName:    path.Base(input.File.Name),
		FileSize:    input.File.Size,
		FileType:    input.File.MimeType,
		Type:        strings.TrimSpace(input.Type),
		AccessLevel: accessLevel,
		Tags:        pq.StringArray(util.ParseTags(input.Tags)),
		UploadedBy:  session.UserID,
		Status:      model.StatusPending,
	}
	if isAdmin {
		now := time.Now()
		document.Status = model.StatusApproved
		document.ApprovedBy = &session.UserID
		document.ApprovalDate = &now
	}

	if s.storage != nil {
		key := fmt.Sprintf("documents/%s", uuid.NewString())
		if err := s.storage.PutObject(ctx, key, input.File.Data, input.File.MimeType); err != nil {
			return nil, common.Internal("[DocumentService] failed to store payload", err)
		}
		document.StorageKey = &key
	} else {
		document.FileData = input.File.Data
	}

	id, err := s.insert(ctx, document, input.Category, session.UserID)
	if err != nil {
		if document.StorageKey != nil {
			s.deleteObject(ctx, *document.StorageKey)
		}
		return nil, err
	}

	s.activity.Record(ctx, session.UserID, model.ActionDocumentUpload, fmt.Sprintf("Uploaded document: %s", title))
	s.invalidate(ctx)

	return s.details(ctx, id)
}

func (s *DocumentService) insert(ctx context.Context, document *model.Document, category string, userID int64) (int64, error) {
	exec, rollback, commit, err := s.tx.BeginTX(ctx)
	if err != nil {
		return 0, common.Internal("[DocumentService] failed to begin transaction", err)
	}
	defer func() { _ = rollback() }()

	if document.CategoryID, err = s.categories.GetOrCreate(ctx, exec, category, userID); err != nil {
		return 0, err
	}

	id, err := s.documentRepository.Create(ctx, exec, document)
	if err != nil {
		return 0, common.Internal("[DocumentService] failed to save document", err)
	}

	if err := commit(); err != nil {
		return 0, common.Internal("[DocumentService] failed to commit document", err)
	}
	return id, nil
}

// List : non-admin callers only ever see approved documents, whatever the filter says
func (s *DocumentService) List(ctx context.Context, filter model.DocumentFilter) (*model.DocumentPage, error) {
	session, err := security.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	isAdmin, err := s.permissions.IsAdmin(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	filter.Limit = pageLimit(filter.Limit)
	filter.Offset = pageOffset(filter.Offset)
	if !isAdmin {
		filter.Status = ""
	} else if filter.Status != "" {
		if _, err := model.ParseStatus(filter.Status); err != nil {
			return nil, common.Validation("Invalid status")
		}
	}
	if filter.AccessLevel != "" {
		if _, err := model.ParseAccessLevel(filter.AccessLevel); err != nil {
			return nil, common.Validation("Invalid access level")
		}
	}

	key := listCacheKey(filter, !isAdmin)
	if s.cache != nil {
		page, err := s.cache.GetPage(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "[DocumentService] listing cache read failed", "error", err)
		} else if page != nil {
			return page, nil
		}
	}

	documents, total, err := s.documentRepository.List(ctx, s.tx.DB(), filter, !isAdmin)
	if err != nil {
		return nil, common.Internal("[DocumentService] failed to list documents", err)
	}
	page := &model.DocumentPage{
		Documents: documents,
		Total:     total,
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	}

	if s.cache != nil {
		if err := s.cache.SetPage(ctx, key, page); err != nil {
			slog.WarnContext(ctx, "[DocumentService] listing cache write failed", "error", err)
		}
	}
	return page, nil
}

// ListPending : the review queue, admin only
func (s *DocumentService) ListPending(ctx context.Context, limit, offset int) (*model.DocumentPage, error) {
	if _, err := requireAdmin(ctx, s.permissions, "Only administrators can view pending documents"); err != nil {
		return nil, err
	}

	limit, offset = pageLimit(limit), pageOffset(offset)
	documents, total, err := s.documentRepository.ListPending(ctx, s.tx.DB(), limit, offset)
	if err != nil {
		return nil, common.Internal("[DocumentService] failed to list pending documents", err)
	}
	return &model.DocumentPage{Documents: documents, Total: total, Limit: limit, Offset: offset}, nil
}

// Get : every successful fetch counts as a view
func (s *DocumentService) Get(ctx context.Context, id int64) (*model.DocumentDetails, error) {
	session, err := security.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}

	document, err := s.details(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureVisible(ctx, session, document.UploadedBy, document.Status); err != nil {
		return nil, err
	}

	views, err := s.documentRepository.IncrementViews(ctx, s.tx.DB(), id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NotFound("Document not found")
	} else if err != nil {
		return nil, common.Internal("[DocumentService] failed to count view", err)
	}
	document.Views = views
	return document, nil
}

// Update : owner or admin; only supplied fields change and tags are replaced
func (s *DocumentService) Update(ctx context.Context, id int64, changes model.DocumentChanges) (*model.DocumentDetails, error) {
	session, err := security.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if changes.Empty() {
		return nil, common.Validation("No fields to update")
	}

	permission, err := s.permissions.CheckDocumentPermission(ctx, id, session.UserID)
	if err != nil {
		return nil, err
	}
	if !permission.HasPermission {
		return nil, common.Forbidden("You do not have permission to update this document")
	}

	update, err := resolveChanges(changes)
	if err != nil {
		return nil, err
	}

	exec, rollback, commit, err := s.tx.BeginTX(ctx)
	if err != nil {
		return nil, common.Internal("[DocumentService] failed to begin transaction", err)
	}
	defer func() { _ = rollback() }()

	if changes.Category != nil {
		update.SetCategory = true
		if update.CategoryID, err = s.categories.GetOrCreate(ctx, exec, *changes.Category, session.UserID); err != nil {
			return nil, err
		}
	}

	err = s.documentRepository.Update(ctx, exec, id, update)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NotFound("Document not found")
	} else if err != nil {
		return nil, common.Internal("[DocumentService] failed to update document", err)
	}
	if err := commit(); err != nil {
		return nil, common.Internal("[DocumentService] failed to commit document", err)
	}

	document, err := s.details(ctx, id)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, session.UserID, model.ActionDocumentUpdate, fmt.Sprintf("Updated document: %s", document.Title))
	s.invalidate(ctx)
	return document, nil
}

func resolveChanges(changes model.DocumentChanges) (model.DocumentUpdate, error) {
	var update model.DocumentUpdate
	if changes.Title != nil {
		title := strings.TrimSpace(*changes.Title)
		if title == "" {
			return update, common.Validation("Title cannot be empty")
		}
		update.Title = &title
	}
	if changes.Description != nil {
		description := strings.TrimSpace(*changes.Description)
		update.Description = &description
	}
	if changes.Type != nil {
		kind := strings.TrimSpace(*changes.Type)
		update.Type = &kind
	}
	if changes.AccessLevel != nil {
		level, err := model.ParseAccessLevel(*changes.AccessLevel)
		if err != nil {
			return update, common.Validation("Invalid access level")
		}
		update.AccessLevel = &level
	}
	if changes.Tags != nil {
		update.SetTags = true
		update.Tags = util.ParseTags(*changes.Tags)
	}
	return update, nil
}

// Delete : admin only, even for the owner
func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	session, err := requireAdmin(ctx, s.permissions, "Only administrators can delete documents")
	if err != nil {
		return err
	}

	deleted, err := s.documentRepository.Delete(ctx, s.tx.DB(), id)
	if errors.Is(err, common.ErrNotFound) {
		return common.NotFound("Document not found")
	} else if err != nil {
		return common.Internal("[DocumentService] failed to delete document", err)
	}

	s.activity.Record(ctx, session.UserID, model.ActionDocumentDelete, fmt.Sprintf("Deleted document: %s", deleted.Title))
	if deleted.StorageKey != nil {
		s.deleteObject(ctx, *deleted.StorageKey)
	}
	s.invalidate(ctx)
	return nil
}

// Download : attachment downloads are counted and logged; inline views are not
func (s *DocumentService) Download(ctx context.Context, id int64, disposition model.Disposition) (*model.DownloadResult, error) {
	session, err := security.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := s.documentRepository.GetPayload(ctx, s.tx.DB(), id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NotFound("Document not found")
	} else if err != nil {
		return nil, common.Internal("[DocumentService] failed to load document", err)
	}
	if err := s.ensureVisible(ctx, session, payload.UploadedBy, payload.Status); err != nil {
		return nil, err
	}

	data := payload.FileData
	if payload.StorageKey != nil {
		if s.storage == nil {
			return nil, common.Internal("[DocumentService] document stored externally but no blob storage configured", nil)
		}
		if data, err = s.storage.GetObject(ctx, *payload.StorageKey); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.NotFound("Document file not found")
			}
			return nil, common.Internal("[DocumentService] failed to fetch payload", err)
		}
	}

	switch disposition {
	case model.DispositionInline:
	case model.DispositionAttachment:
		if _, err := s.documentRepository.IncrementDownloads(ctx, s.tx.DB(), id); err != nil {
			return nil, common.Internal("[DocumentService] failed to count download", err)
		}
		s.activity.Record(ctx, session.UserID, model.ActionDocumentDownload, fmt.Sprintf("Downloaded document: %s", payload.Title))
	default:
		return nil, common.Validation("Invalid disposition")
	}

	return &model.DownloadResult{
		FileName:    payload.FileName,
		ContentType: payload.FileType,
		Data:        data,
		Disposition: disposition,
	}, nil
}

func (s *DocumentService) Approve(ctx context.Context, id int64) (*model.DocumentDetails, error) {
	return s.review(ctx, id, model.StatusApproved)
}

func (s *DocumentService) Reject(ctx context.Context, id int64) (*model.DocumentDetails, error) {
	return s.review(ctx, id, model.StatusRejected)
}

// review : pending (or legacy null) to a terminal status, admin only
func (s *DocumentService) review(ctx context.Context, id int64, status model.Status) (*model.DocumentDetails, error) {
	var action, verb, past, kind string
	switch status {
	case model.StatusApproved:
		action, verb, past, kind = model.ActionDocumentApprove, "approve", "Approved", NotificationSuccess
	case model.StatusRejected:
		action, verb, past, kind = model.ActionDocumentReject, "reject", "Rejected", NotificationWarning
	default:
		return nil, common.Validation("Invalid status")
	}

	session, err := requireAdmin(ctx, s.permissions, fmt.Sprintf("Only administrators can %s documents", verb))
	if err != nil {
		return nil, err
	}

	document, err := s.details(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.documentRepository.SetStatus(ctx, s.tx.DB(), id, status, session.UserID)
	if err != nil {
		return nil, common.Internal("[DocumentService] failed to update status", err)
	}
	if !ok {
		return nil, common.Conflict("Document has already been reviewed")
	}

	s.activity.Record(ctx, session.UserID, action, fmt.Sprintf("%s document: %s", past, document.Title))
	link := fmt.Sprintf("/documents/%d", id)
	s.notifier.Notify(ctx, document.UploadedBy,
		fmt.Sprintf("Document %s", status),
		fmt.Sprintf("Your document %q has been %s", document.Title, status),
		kind, &link)
	s.invalidate(ctx)

	return s.details(ctx, id)
}

// ensureVisible hides unreviewed or rejected documents from everyone but
// their uploader and admins.
func (s *DocumentService) ensureVisible(ctx context.Context, session *model.Session, uploadedBy int64, status model.Status) error {
	if status == model.StatusApproved || uploadedBy == session.UserID {
		return nil
	}
	isAdmin, err := s.permissions.IsAdmin(ctx, session.UserID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return common.NotFound("Document not found")
	}
	return nil
}

func (s *DocumentService) details(ctx context.Context, id int64) (*model.DocumentDetails, error) {
	document, err := s.documentRepository.GetByID(ctx, s.tx.DB(), id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NotFound("Document not found")
	} else if err != nil {
		return nil, common.Internal("[DocumentService] failed to load document", err)
	}
	return document, nil
}

func (s *DocumentService) invalidate(ctx context.Context) {
	invalidateListings(ctx, s.cache, "[DocumentService]")
}

// invalidateListings : best-effort, cached pages expire on their own TTL
func invalidateListings(ctx context.Context, cache ports.ListCache, source string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, source+" listing cache invalidation failed", "error", err)
	}
}

func (s *DocumentService) deleteObject(ctx context.Context, key string) {
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		slog.WarnContext(ctx, "[DocumentService] failed to remove stored payload", "key", key, "error", err)
	}
}

func listCacheKey(filter model.DocumentFilter, approvedOnly bool) string {
	raw := fmt.Sprintf("%t|%s|%s|%s|%s|%s|%d|%d", approvedOnly,
		filter.Search, filter.Type, filter.AccessLevel, filter.Category, filter.Status, filter.Limit, filter.Offset)
	return util.HashSecret(raw)
}
