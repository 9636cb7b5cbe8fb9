package repository

import (
	"context"
	"fmt"
	"strings"

	"document-management-server/config"
	"document-management-server/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// documentColumns never includes file_data: listings and metadata reads stay light.
const documentColumns = `
	d.id, d.title, d.description, d.storage_key, d.file_name, d.file_size, d.file_type,
	d.category_id, d.type, d.access_level, d.tags, d.uploaded_by, d.downloads, d.views,
	COALESCE(d.status, 'pending') AS status, d.approved_by, d.approval_date,
	d.created_at, d.updated_at,
	u.name AS uploader_name, u.email AS uploader_email, c.name AS category_name`

const documentFrom = `
	FROM documents AS d
	JOIN users AS u ON u.id = d.uploaded_by
	LEFT JOIN categories AS c ON c.id = d.category_id`

type DocumentRepository struct {
	*config.Database
}

func NewDocumentRepository(database *config.Database) *DocumentRepository {
	return &DocumentRepository{database}
}

// Create : stores metadata and payload (or its storage key) in a single insert
func (r *DocumentRepository) Create(ctx context.Context, exec sqlx.ExtContext, document *model.Document) (int64, error) {
	query := `
		INSERT INTO documents (title, description, file_data, storage_key, file_name, file_size, file_type,
		                       category_id, type, access_level, tags, uploaded_by, status, approved_by, approval_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	tags := document.Tags
	if tags == nil {
		tags = pq.StringArray{}
	}
	var id int64
	err := sqlx.GetContext(ctx, exec, &id, query,
		document.Title,
		document.Description,
		document.FileData,
		document.StorageKey,
		document.FileName,
		document.FileSize,
		document.FileType,
		document.CategoryID,
		document.Type,
		document.AccessLevel,
		tags,
		document.UploadedBy,
		document.Status,
		document.ApprovedBy,
		document.ApprovalDate,
	)
	if err != nil {
		return 0, translate("[DocumentRepo] insert document", err)
	}
	return id, nil
}

// GetByID : document joined with uploader and category
func (r *DocumentRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.DocumentDetails, error) {
	var document model.DocumentDetails
	query := `SELECT ` + documentColumns + documentFrom + ` WHERE d.id = $1`
	if err := sqlx.GetContext(ctx, exec, &document, query, id); err != nil {
		return nil, translate("[DocumentRepo] get document", err)
	}
	return &document, nil
}

// GetPayload : what a download needs, including the inline bytes
func (r *DocumentRepository) GetPayload(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.DocumentPayload, error) {
	query := `
		SELECT id, title, file_data, storage_key, file_name, file_type, file_size, uploaded_by,
		       COALESCE(status, 'pending') AS status
		FROM documents
		WHERE id = $1
	`
	var payload model.DocumentPayload
	if err := sqlx.GetContext(ctx, exec, &payload, query, id); err != nil {
		return nil, translate("[DocumentRepo] get payload", err)
	}
	return &payload, nil
}

// List : filtered page plus the total matching count. approvedOnly is always
// ANDed in and cannot be widened by the filter.
func (r *DocumentRepository) List(ctx context.Context, exec sqlx.ExtContext, filter model.DocumentFilter, approvedOnly bool) ([]model.DocumentDetails, int, error) {
	where := &whereBuilder{}
	if search := strings.TrimSpace(filter.Search); search != "" {
		p := where.arg("%" + escapeLike(search) + "%")
		where.add(fmt.Sprintf("(d.title ILIKE %s OR d.description ILIKE %s)", p, p))
	}
	if filter.Type != "" {
		where.add("d.type = " + where.arg(filter.Type))
	}
	if filter.AccessLevel != "" {
		where.add("d.access_level = " + where.arg(filter.AccessLevel))
	}
	if filter.Category != "" {
		where.add("c.name = " + where.arg(filter.Category))
	}
	if approvedOnly {
		where.add("d.status = 'approved'")
	} else if filter.Status != "" {
		if filter.Status == string(model.StatusPending) {
			where.add("(d.status = 'pending' OR d.status IS NULL)")
		} else {
			where.add("d.status = " + where.arg(filter.Status))
		}
	}
	return r.page(ctx, exec, where, filter.Limit, filter.Offset, "[DocumentRepo] list documents")
}

// ListPending : the review queue, including legacy rows without a status
func (r *DocumentRepository) ListPending(ctx context.Context, exec sqlx.ExtContext, limit, offset int) ([]model.DocumentDetails, int, error) {
	where := &whereBuilder{}
	where.add("(d.status = 'pending' OR d.status IS NULL)")
	return r.page(ctx, exec, where, limit, offset, "[DocumentRepo] list pending documents")
}

func (r *DocumentRepository) page(ctx context.Context, exec sqlx.ExtContext, where *whereBuilder, limit, offset int, message string) ([]model.DocumentDetails, int, error) {
	var total int
	countQuery := `SELECT COUNT(*)` + documentFrom + where.String()
	if err := sqlx.GetContext(ctx, exec, &total, countQuery, where.args...); err != nil {
		return nil, 0, translate(message, err)
	}

	documents := []model.DocumentDetails{}
	if total == 0 {
		return documents, 0, nil
	}

	limitArg := where.arg(limit)
	offsetArg := where.arg(offset)
	query := `SELECT ` + documentColumns + documentFrom + where.String() +
		` ORDER BY d.created_at DESC, d.id DESC LIMIT ` + limitArg + ` OFFSET ` + offsetArg
	if err := sqlx.SelectContext(ctx, exec, &documents, query, where.args...); err != nil {
		return nil, 0, translate(message, err)
	}
	return documents, total, nil
}

// Update : writes only the supplied fields; tags replace the previous list
func (r *DocumentRepository) Update(ctx context.Context, exec sqlx.ExtContext, id int64, update model.DocumentUpdate) error {
	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		set("title", *update.Title)
	}
	if update.Description != nil {
		set("description", *update.Description)
	}
	if update.SetCategory {
		set("category_id", update.CategoryID)
	}
	if update.Type != nil {
		set("type", *update.Type)
	}
	if update.AccessLevel != nil {
		set("access_level", *update.AccessLevel)
	}
	if update.SetTags {
		tags := update.Tags
		if tags == nil {
			tags = []string{}
		}
		set("tags", pq.StringArray(tags))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE documents SET %s, updated_at = NOW() WHERE id = $%d", strings.Join(sets, ", "), len(args))
	res, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return translate("[DocumentRepo] update document", err)
	}
	return expectRow(res, "[DocumentRepo] update document")
}

// SetStatus : moves an unreviewed document to a terminal status. Reports
// false when the document had already been reviewed.
func (r *DocumentRepository) SetStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status model.Status, adminID int64) (bool, error) {
	query := `
		UPDATE documents
		SET status = $2, approved_by = $3, approval_date = NOW(), updated_at = NOW()
		WHERE id = $1 AND (status IS NULL OR status = 'pending')
	`
	res, err := exec.ExecContext(ctx, query, id, status, adminID)
	if err != nil {
		return false, translate("[DocumentRepo] set status", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, translate("[DocumentRepo] set status", err)
	}
	return n > 0, nil
}

// IncrementViews : relative update, safe under concurrent readers
func (r *DocumentRepository) IncrementViews(ctx context.Context, exec sqlx.ExtContext, id int64) (int64, error) {
	var views int64
	query := `UPDATE documents SET views = views + 1 WHERE id = $1 RETURNING views`
	if err := sqlx.GetContext(ctx, exec, &views, query, id); err != nil {
		return 0, translate("[DocumentRepo] increment views", err)
	}
	return views, nil
}

func (r *DocumentRepository) IncrementDownloads(ctx context.Context, exec sqlx.ExtContext, id int64) (int64, error) {
	var downloads int64
	query := `UPDATE documents SET downloads = downloads + 1 WHERE id = $1 RETURNING downloads`
	if err := sqlx.GetContext(ctx, exec, &downloads, query, id); err != nil {
		return 0, translate("[DocumentRepo] increment downloads", err)
	}
	return downloads, nil
}

// Delete : removes the row and returns what it pointed to
func (r *DocumentRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.DocumentPayload, error) {
	query := `
		DELETE FROM documents
		WHERE id = $1
		RETURNING id, title, storage_key, file_name, file_type, file_size, uploaded_by,
		          COALESCE(status, 'pending') AS status
	`
	var payload model.DocumentPayload
	if err := sqlx.GetContext(ctx, exec, &payload, query, id); err != nil {
		return nil, translate("[DocumentRepo] delete document", err)
	}
	return &payload, nil
}

type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) arg(value any) string {
	w.args = append(w.args, value)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) add(clause string) {
	w.clauses = append(w.clauses, clause)
}

func (w *whereBuilder) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
