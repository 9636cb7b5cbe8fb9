package handler

import (
	"net/http"

	"document-management-server/internal/model"
	"document-management-server/internal/model/requestresponse"
	"document-management-server/internal/ports"
	"document-management-server/internal/util"
)

type CategoryHandler struct {
	ports.CategoryService
	departments ports.DepartmentService
}

func NewCategoryHandler(categoryService ports.CategoryService, departmentService ports.DepartmentService) *CategoryHandler {
	return &CategoryHandler{categoryService, departmentService}
}

// ListCategories godoc
// @Summary List categories
// @Description Alphabetical, with the number of documents in each.
// @Tags Categories
// @Produce json
// @Success 200 {array} model.Category
// @Router /api/categories [get]
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CategoryService.List(r.Context())
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	util.WriteJSON(w, http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param body body requestresponse.CategoryRequest true "Category"
// @Success 201 {object} model.Category
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Router /api/categories [post]
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}
	category, err := h.CategoryService.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Rename or describe a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category id"
// @Param body body requestresponse.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} model.Category
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Router /api/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	var req requestresponse.UpdateCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}
	category, err := h.CategoryService.Update(r.Context(), id, req.Name, req.Description)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete an unused category
// @Tags Categories
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse "Category still has documents"
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if err := h.CategoryService.Delete(r.Context(), id); err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Category deleted successfully"})
}

// ListDepartments godoc
// @Summary List departments
// @Tags Departments
// @Produce json
// @Success 200 {array} model.Department
// @Router /api/departments [get]
func (h *CategoryHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departments.List(r.Context())
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if departments == nil {
		departments = []model.Department{}
	}
	util.WriteJSON(w, http.StatusOK, departments)
}

// CreateDepartment godoc
// @Summary Create a department
// @Tags Departments
// @Accept json
// @Produce json
// @Param body body requestresponse.DepartmentRequest true "Department"
// @Success 201 {object} model.Department
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Router /api/departments [post]
func (h *CategoryHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.DepartmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}
	department, err := h.departments.Create(r.Context(), req.Name)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, department)
}
