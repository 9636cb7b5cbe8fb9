package requestresponse

import (
	"document-management-server/internal/model"
)

// UpdateDocumentRequest : omitted fields are left unchanged; an empty
// category clears it
type UpdateDocumentRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=255" example:"Q3 report"`
	Description *string `json:"description,omitempty" example:"Quarterly figures"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=255" example:"Finance"`
	Type        *string `json:"type,omitempty" validate:"omitempty,max=100" example:"report"`
	AccessLevel *string `json:"access_level,omitempty" validate:"omitempty,oneof=public internal confidential" example:"internal"`
	Tags        *string `json:"tags,omitempty" example:"q3, finance"`
}

func (r UpdateDocumentRequest) Changes() model.DocumentChanges {
	return model.DocumentChanges{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Type:        r.Type,
		AccessLevel: r.AccessLevel,
		Tags:        r.Tags,
	}
}

// DocumentListResponse : one page of a listing
type DocumentListResponse struct {
	Documents []model.DocumentDetails `json:"documents"`
	Total     int                     `json:"total" example:"42"`
	Limit     int                     `json:"limit" example:"20"`
	Offset    int                     `json:"offset" example:"0"`
}

func DocumentListResponseFromModel(page *model.DocumentPage) DocumentListResponse {
	documents := page.Documents
	if documents == nil {
		documents = []model.DocumentDetails{}
	}
	return DocumentListResponse{
		Documents: documents,
		Total:     page.Total,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
}

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=255" example:"Finance"`
	Description *string `json:"description,omitempty" example:"Budgets and reports"`
}

// UpdateCategoryRequest : omitted fields are left unchanged
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255" example:"Finance"`
	Description *string `json:"description,omitempty" example:"Budgets and reports"`
}
