package service_test

import (
	"context"
	"errors"
	"testing"

	"document-management-server/internal/common"
	"document-management-server/internal/model"
	"document-management-server/internal/ports/portsmock"
	"document-management-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type documentFixture struct {
	tx          *portsmock.Transactor
	txRec       *txRecorder
	documents   *portsmock.DocumentRepository
	categories  *portsmock.CategoryResolver
	permissions *portsmock.PermissionResolver
	validator   *portsmock.FileValidator
	activity    *portsmock.ActivityRecorder
	notifier    *portsmock.Notifier
	cache       *portsmock.ListCache
	storage     *portsmock.BlobStorage
}

func newDocumentFixture(t *testing.T) *documentFixture {
	tx, rec := newTransactor(t)
	return &documentFixture{
		tx:          tx,
		txRec:       rec,
		documents:   new(portsmock.DocumentRepository),
		categories:  new(portsmock.CategoryResolver),
		permissions: defaultPermissions(),
		validator:   new(portsmock.FileValidator),
		activity:    new(portsmock.ActivityRecorder),
		notifier:    new(portsmock.Notifier),
		cache:       new(portsmock.ListCache),
		storage:     new(portsmock.BlobStorage),
	}
}

func (f *documentFixture) service(opts ...service.DocumentServiceOption) *service.DocumentService {
	return service.NewDocumentService(f.tx, f.documents, f.categories, f.permissions, f.validator, f.activity, f.notifier, opts...)
}

func reportInput() model.UploadDocumentInput {
	return model.UploadDocumentInput{
		Title:    "Q1 Report",
		Category: "Finance",
		Tags:     "q1,finance",
		File: model.UploadedFile{
			Name:     "report.pdf",
			Size:     2 << 20,
			MimeType: "application/pdf",
			Data:     []byte("%PDF-1.7"),
		},
	}
}

func TestDocumentService_Upload_StaffStartsPending(t *testing.T) {
	f := newDocumentFixture(t)
	categoryID := int64(9)
	input := reportInput()
	input.Tags = "a, b ,c"

	var stored *model.Document
	f.validator.On("Validate", input.File).Return(nil)
	f.categories.On("GetOrCreate", mock.Anything, testExec, "Finance", staffID).Return(&categoryID, nil)
	f.documents.On("Create", mock.Anything, testExec, mock.AnythingOfType("*model.Document")).
		Run(func(args mock.Arguments) { stored = args.Get(2).(*model.Document) }).
		Return(int64(11), nil)
	f.documents.On("GetByID", mock.Anything, testExec, int64(11)).
		Return(&model.DocumentDetails{Document: model.Document{ID: 11, Status: model.StatusPending}}, nil)
	f.activity.On("Record", mock.Anything, staffID, model.ActionDocumentUpload, "Uploaded document: Q1 Report").Return()

	document, err := f.service().Upload(staffContext(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(11), document.ID)

	require.NotNil(t, stored)
	assert.Equal(t, model.StatusPending, stored.Status)
	assert.Nil(t, stored.ApprovedBy)
	assert.Equal(t, []string{"a", "b", "c"}, []string(stored.Tags))
	assert.Equal(t, &categoryID, stored.CategoryID)
	assert.Equal(t, model.AccessInternal, stored.AccessLevel)
	assert.Equal(t, input.File.Data, stored.FileData)
	assert.Nil(t, stored.StorageKey)
	assert.Equal(t, 1, f.txRec.commits)
	f.activity.AssertExpectations(t)
}

func TestDocumentService_Upload_AdminIsApproved(t *testing.T) {
	f := newDocumentFixture(t)
	categoryID := int64(9)
	input := reportInput()

	var stored *model.Document
	f.validator.On("Validate", input.File).Return(nil)
	f.categories.On("GetOrCreate", mock.Anything, testExec, "Finance", adminID).Return(&categoryID, nil)
	f.documents.On("Create", mock.Anything, testExec, mock.AnythingOfType("*model.Document")).
		Run(func(args mock.Arguments) { stored = args.Get(2).(*model.Document) }).
		Return(int64(12), nil)
	f.documents.On("GetByID", mock.Anything, testExec, int64(12)).
		Return(&model.DocumentDetails{Document: model.Document{ID: 12}}, nil)
	f.activity.On("Record", mock.Anything, adminID, model.ActionDocumentUpload, mock.Anything).Return()

	_, err := f.service().Upload(adminContext(), input)
	require.NoError(t, err)

	assert.Equal(t, model.StatusApproved, stored.Status)
	require.NotNil(t, stored.ApprovedBy)
	assert.Equal(t, adminID, *stored.ApprovedBy)
	assert.NotNil(t, stored.ApprovalDate)
	assert.Equal(t, []string{"q1", "finance"}, []string(stored.Tags))
}

func TestDocumentService_Upload_RejectsInvalidFile(t *testing.T) {
	f := newDocumentFixture(t)
	input := reportInput()
	input.File.MimeType = "application/x-msdownload"

	f.validator.On("Validate", input.File).Return(common.Validation("File type not allowed"))

	_, err := f.service().Upload(staffContext(), input)
	assert.Equal(t, common.KindValidation, common.KindOf(err))
	f.documents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_Upload_RequiresSession(t *testing.T) {
	f := newDocumentFixture(t)

	_, err := f.service().Upload(context.Background(), reportInput())
	assert.Equal(t, common.KindUnauthorized, common.KindOf(err))
	f.validator.AssertNotCalled(t, "Validate", mock.Anything)
}

func TestDocumentService_Upload_BlobStorageCleanupOnFailure(t *testing.T) {
	f := newDocumentFixture(t)
	input := reportInput()
	input.Category = ""

	var key string
	f.validator.On("Validate", input.File).Return(nil)
	f.storage.On("PutObject", mock.Anything, mock.AnythingOfType("string"), input.File.Data, "application/pdf").
		Run(func(args mock.Arguments) { key = args.String(1) }).
		Return(nil)
	f.categories.On("GetOrCreate", mock.Anything, testExec, "", staffID).Return(nil, nil)
	f.documents.On("Create", mock.Anything, testExec, mock.Anything).Return(int64(0), errors.New("connection reset"))
	f.storage.On("DeleteObject", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	_, err := f.service(service.WithBlobStorage(f.storage)).Upload(staffContext(), input)
	assert.Equal(t, common.KindInternal, common.KindOf(err))
	assert.Equal(t, 0, f.txRec.commits)
	assert.Contains(t, key, "documents/")
	f.storage.AssertCalled(t, "DeleteObject", mock.Anything, key)
}

func TestDocumentService_List_NonAdminAlwaysApprovedOnly(t *testing.T) {
	f := newDocumentFixture(t)
	filter := model.DocumentFilter{Search: "report", Status: "pending", Limit: 500}

	f.documents.On("List", mock.Anything, testExec, mock.MatchedBy(func(got model.DocumentFilter) bool {
		return got.Status == "" && got.Limit == 100 && got.Search == "report"
	}), true).Return([]model.DocumentDetails{
		{Document: model.Document{ID: 1, Status: model.StatusApproved}},
	}, 1, nil)

	page, err := f.service().List(staffContext(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	for _, d := range page.Documents {
		assert.Equal(t, model.StatusApproved, d.Status)
	}
	f.documents.AssertExpectations(t)
}

func TestDocumentService_List_AdminMaySeeAllStatuses(t *testing.T) {
	f := newDocumentFixture(t)

	f.documents.On("List", mock.Anything, testExec, mock.MatchedBy(func(got model.DocumentFilter) bool {
		return got.Status == "rejected" && got.Limit == 20
	}), false).Return([]model.DocumentDetails{}, 0, nil)

	_, err := f.service().List(adminContext(), model.DocumentFilter{Status: "rejected"})
	require.NoError(t, err)

	_, err = f.service().List(adminContext(), model.DocumentFilter{Status: "archived"})
	assert.Equal(t, common.KindValidation, common.KindOf(err))
}

func TestDocumentService_List_UsesCache(t *testing.T) {
	f := newDocumentFixture(t)
	cached := &model.DocumentPage{Total: 3, Limit: 20}

	f.cache.On("GetPage", mock.Anything, mock.AnythingOfType("string")).Return(cached, nil).Once()

	page, err := f.service(service.WithListCache(f.cache)).List(staffContext(), model.DocumentFilter{})
	require.NoError(t, err)
	assert.Same(t, cached, page)
	f.documents.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_List_CacheFailureFallsBackToDatabase(t *testing.T) {
	f := newDocumentFixture(t)

	f.cache.On("GetPage", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))
	f.cache.On("SetPage", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))
	f.documents.On("List", mock.Anything, testExec, mock.Anything, true).Return([]model.DocumentDetails{}, 0, nil)

	page, err := f.service(service.WithListCache(f.cache)).List(staffContext(), model.DocumentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
}

func TestDocumentService_Get_CountsEveryView(t *testing.T) {
	f := newDocumentFixture(t)
	document := func() *model.DocumentDetails {
		return &model.DocumentDetails{Document: model.Document{ID: 5, UploadedBy: otherID, Status: model.StatusApproved}}
	}

	f.documents.On("GetByID", mock.Anything, testExec, int64(5)).Return(document(), nil).Once()
	f.documents.On("GetByID", mock.Anything, testExec, int64(5)).Return(document(), nil).Once()
	f.documents.On("IncrementViews", mock.Anything, testExec, int64(5)).Return(int64(1), nil).Once()
	f.documents.On("IncrementViews", mock.Anything, testExec, int64(5)).Return(int64(2), nil).Once()

	svc := f.service()
	first, err := svc.Get(staffContext(), 5)
	require.NoError(t, err)
	second, err := svc.Get(staffContext(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Views)
	assert.Equal(t, int64(2), second.Views)
	f.documents.AssertNumberOfCalls(t, "IncrementViews", 2)
}

func TestDocumentService_Get_HidesUnapprovedFromOtherStaff(t *testing.T) {
	f := newDocumentFixture(t)

	f.documents.On("GetByID", mock.Anything, testExec, int64(5)).
		Return(&model.DocumentDetails{Document: model.Document{ID: 5, UploadedBy: otherID, Status: model.StatusPending}}, nil)

	_, err := f.service().Get(staffContext(), 5)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
	f.documents.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_Get_Missing(t *testing.T) {
	f := newDocumentFixture(t)
	f.documents.On("GetByID", mock.Anything, testExec, int64(404)).Return(nil, common.ErrNotFound)

	_, err := f.service().Get(staffContext(), 404)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
	assert.Equal(t, "Document not found", common.PublicMessage(err))
}

func TestDocumentService_Update(t *testing.T) {
	title := "Q1 Report (final)"
	tags := "q1, final"
	category := "Finance"

	t.Run("no fields", func(t *testing.T) {
		f := newDocumentFixture(t)
		_, err := f.service().Update(staffContext(), 5, model.DocumentChanges{})
		assert.Equal(t, common.KindValidation, common.KindOf(err))
		assert.Equal(t, "No fields to update", common.PublicMessage(err))
	})

	t.Run("not owner nor admin", func(t *testing.T) {
		f := newDocumentFixture(t)
		f.permissions.On("CheckDocumentPermission", mock.Anything, int64(5), staffID).
			Return(&model.DocumentPermission{}, nil)

		_, err := f.service().Update(staffContext(), 5, model.DocumentChanges{Title: &title})
		assert.Equal(t, common.KindForbidden, common.KindOf(err))
		f.documents.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing document", func(t *testing.T) {
		f := newDocumentFixture(t)
		f.permissions.On("CheckDocumentPermission", mock.Anything, int64(5), staffID).
			Return(nil, common.NotFound("Document not found"))

		_, err := f.service().Update(staffContext(), 5, model.DocumentChanges{Title: &title})
		assert.Equal(t, common.KindNotFound, common.KindOf(err))
	})

	t.Run("owner updates supplied fields", func(t *testing.T) {
		f := newDocumentFixture(t)
		categoryID := int64(4)
		f.permissions.On("CheckDocumentPermission", mock.Anything, int64(5), staffID).
			Return(&model.DocumentPermission{HasPermission: true, IsOwner: true}, nil)
		f.categories.On("GetOrCreate", mock.Anything, testExec, category, staffID).Return(&categoryID, nil)
		f.documents.On("Update", mock.Anything, testExec, int64(5), mock.MatchedBy(func(u model.DocumentUpdate) bool {
			return *u.Title == title && u.Description == nil && u.SetCategory && *u.CategoryID == 4 &&
				u.SetTags && assert.ObjectsAreEqual([]string{"q1", "final"}, u.Tags)
		})).Return(nil)
		f.documents.On("GetByID", mock.Anything, testExec, int64(5)).
			Return(&model.DocumentDetails{Document: model.Document{ID: 5, Title: title}}, nil)
		f.activity.On("Record", mock.Anything, staffID, model.ActionDocumentUpdate, "Updated document: "+title).Return()

		document, err := f.service().Update(staffContext(), 5, model.DocumentChanges{Title: &title, Tags: &tags, Category: &category})
		require.NoError(t, err)
		assert.Equal(t, title, document.Title)
		assert.Equal(t, 1, f.txRec.commits)
		f.documents.AssertExpectations(t)
		f.activity.AssertExpectations(t)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	t.Run("owner who is staff is refused", func(t *testing.T) {
		f := newDocumentFixture(t)
		err := f.service().Delete(staffContext(), 5)
		assert.Equal(t, common.KindForbidden, common.KindOf(err))
		assert.Equal(t, "Only administrators can delete documents", common.PublicMessage(err))
	})

	t.Run("admin deletes and logs the title", func(t *testing.T) {
		f := newDocumentFixture(t)
		f.documents.On("Delete", mock.Anything, testExec, int64(5)).
			Return(&model.DocumentPayload{ID: 5, Title: "Q1 Report"}, nil)
		f.activity.On("Record", mock.Anything, adminID, model.ActionDocumentDelete, "Deleted document: Q1 Report").Return()

		require.NoError(t, f.service().Delete(adminContext(), 5))
		f.activity.AssertExpectations(t)
	})

	t.Run("missing document", func(t *testing.T) {
		f := newDocumentFixture(t)
		f.documents.On("Delete", mock.Anything, testExec, int64(5)).Return(nil, common.ErrNotFound)

		err := f.service().Delete(adminContext(), 5)
		assert.Equal(t, common.KindNotFound, common.KindOf(err))
	})
}

func TestDocumentService_Download(t *testing.T) {
	payload := func() *model.DocumentPayload {
		return &model.DocumentPayload{
			ID: 5, Title: "Q1 Report", FileData: []byte("%PDF"), FileName: "report.pdf",
			FileType: "application/pdf", UploadedBy: otherID, Status: model.StatusApproved,
		}
	}

	t.Run("attachment counts the download", func(t *testing.T) {
		f := newDocumentFixture(t)
		f.documents.On("GetPayload", mock.Anything, testExec, int64(5)).Return(payload(), nil)
		f.documents.On("IncrementDownloads", mock.Anything, testExec, int64(5)).Return(int64(1), nil)
		f.activity.On("Record", mock.Anything, staffID, model.ActionDocumentDownload, "Downloaded document: Q1 Report").Return()

		result, err := f.service().Download(staffContext(), 5, model.DispositionAttachment)
		require.NoError(t, err)
		assert.Equal(t, "report.pdf", result.FileName)
		assert.Equal(t, "application/pdf", result.ContentType)
		assert.Equal(t, []byte("%PDF"), result.Data)
		f.documents.AssertNumberOfCalls(t, "IncrementDownloads", 1)
	})

	t.Run("inline view leaves counters alone", func(t *testing.T) {
		f := newDocumentFixture(t)
		f.documents.On("GetPayload", mock.Anything, testExec, int64(5)).Return(payload(), nil)

		result, err := f.service().Download(staffContext(), 5, model.DispositionInline)
		require.NoError(t, err)
		assert.Equal(t, model.DispositionInline, result.Disposition)
		f.documents.AssertNotCalled(t, "IncrementDownloads", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("payload from blob storage", func(t *testing.T) {
		f := newDocumentFixture(t)
		key := "documents/abc"
		p := payload()
		p.FileData = nil
		p.StorageKey = &key
		f.documents.On("GetPayload", mock.Anything, testExec, int64(5)).Return(p, nil)
		f.storage.On("GetObject", mock.Anything, key).Return([]byte("remote"), nil)

		result, err := f.service(service.WithBlobStorage(f.storage)).Download(staffContext(), 5, model.DispositionInline)
		require.NoError(t, err)
		assert.Equal(t, []byte("remote"), result.Data)
	})
}

func TestDocumentService_Approval(t *testing.T) {
	pending := func() *model.DocumentDetails {
		return &model.DocumentDetails{Document: model.Document{ID: 5, Title: "Q1 Report", UploadedBy: staffID, Status: model.StatusPending}}
	}

	t.Run("staff owner cannot approve", func(t *testing.T) {
		f := newDocumentFixture(t)
		_, err := f.service().Approve(staffContext(), 5)
		assert.Equal(t, common.KindForbidden, common.KindOf(err))
		assert.Equal(t, "Only administrators can approve documents", common.PublicMessage(err))
		f.documents.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("staff owner cannot reject", func(t *testing.T) {
		f := newDocumentFixture(t)
		_, err := f.service().Reject(staffContext(), 5)
		assert.Equal(t, "Only administrators can reject documents", common.PublicMessage(err))
	})

	t.Run("admin approves and the uploader is notified", func(t *testing.T) {
		f := newDocumentFixture(t)
		approved := pending()
		approved.Status = model.StatusApproved
		approved.ApprovedBy = new(int64)
		*approved.ApprovedBy = adminID

		f.documents.On("GetByID", mock.Anything, testExec, int64(5)).Return(pending(), nil).Once()
		f.documents.On("SetStatus", mock.Anything, testExec, int64(5), model.StatusApproved, adminID).Return(true, nil)
		f.documents.On("GetByID", mock.Anything, testExec, int64(5)).Return(approved, nil).Once()
		f.activity.On("Record", mock.Anything, adminID, model.ActionDocumentApprove, "Approved document: Q1 Report").Return()
		f.notifier.On("Notify", mock.Anything, staffID, "Document approved", mock.Anything, service.NotificationSuccess, mock.Anything).Return()

		document, err := f.service().Approve(adminContext(), 5)
		require.NoError(t, err)
		assert.Equal(t, model.StatusApproved, document.Status)
		assert.Equal(t, adminID, *document.ApprovedBy)
		f.activity.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("already reviewed", func(t *testing.T) {
		f := newDocumentFixture(t)
		f.documents.On("GetByID", mock.Anything, testExec, int64(5)).Return(pending(), nil)
		f.documents.On("SetStatus", mock.Anything, testExec, int64(5), model.StatusRejected, adminID).Return(false, nil)

		_, err := f.service().Reject(adminContext(), 5)
		assert.Equal(t, common.KindConflict, common.KindOf(err))
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
