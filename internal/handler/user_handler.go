package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"document-management-server/internal/model"
	"document-management-server/internal/model/requestresponse"
	"document-management-server/internal/ports"
	"document-management-server/internal/security"
	"document-management-server/internal/util"
)

const maxAvatarUpload = 10<<20 + multipartOverhead

type UserHandler struct {
	ports.UserService
	activity ports.ActivityService
}

func NewUserHandler(userService ports.UserService, activity ports.ActivityService) *UserHandler {
	return &UserHandler{userService, activity}
}

// ListUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} requestresponse.UserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context(), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.UserResponsesFromModel(users))
}

// CreateUser godoc
// @Summary Create a user
// @Description Admin only. The role defaults to staff.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateUserRequest true "Account details"
// @Success 201 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Router /api/users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}

	user, err := h.UserService.Create(r.Context(), model.CreateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		Department: req.Department,
	})
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, requestresponse.UserResponseFromModel(user))
}

// GetUser godoc
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} requestresponse.UserResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	user, err := h.UserService.Get(r.Context(), id)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.UserResponseFromModel(user))
}

// UpdateUser godoc
// @Summary Update a user
// @Description Admin only. A role change signs the user out everywhere.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param body body requestresponse.UpdateUserRequest true "Fields to change"
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/users/{id} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	var req requestresponse.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}

	user, err := h.UserService.UpdateUser(r.Context(), id, req.Changes())
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.UserResponseFromModel(user))
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.UpdateUserRequest true "Fields to change, role excluded"
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/users/me [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), req.Changes())
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.UserResponseFromModel(user))
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Admin only; admins cannot delete themselves.
// @Tags Users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if err := h.UserService.Delete(r.Context(), id); err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "User deleted successfully"})
}

// UploadAvatar godoc
// @Summary Upload own profile image
// @Description PNG, JPEG or GIF up to 10MB, stored as a 256x256 JPEG.
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Image"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Router /api/users/me/avatar [post]
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarUpload)
	if err := r.ParseMultipartForm(maxAvatarUpload); err != nil {
		util.HandleError(w, "Invalid or oversized image upload", http.StatusBadRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, err := readFormFile(r, "avatar")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if err := h.UserService.SetProfileImage(r.Context(), file.Data, file.MimeType); err != nil {
		util.WriteError(w, r, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Profile image updated"})
}

// GetAvatar godoc
// @Summary Profile image of a user
// @Tags Users
// @Produce jpeg
// @Param id path int true "User id"
// @Success 200 {file} file
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/users/{id}/avatar [get]
func (h *UserHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	image, err := h.UserService.ProfileImage(r.Context(), id)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(image)))
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(image); err != nil {
		slog.WarnContext(r.Context(), "[UserHandler] failed to write profile image", "user_id", id, "error", err)
	}
}

// UserActivity godoc
// @Summary Recent activity of a user
// @Description Users read their own log, admins anyone's.
// @Tags Activity
// @Produce json
// @Param id path int true "User id"
// @Param limit query int false "Number of entries, default 20"
// @Success 200 {array} model.ActivityLog
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/users/{id}/activity [get]
func (h *UserHandler) UserActivity(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	h.writeActivity(w, r, id)
}

// MyActivity godoc
// @Summary Own recent activity
// @Tags Activity
// @Produce json
// @Param limit query int false "Number of entries, default 20"
// @Success 200 {array} model.ActivityLog
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/activity [get]
func (h *UserHandler) MyActivity(w http.ResponseWriter, r *http.Request) {
	session, err := security.CurrentSession(r.Context())
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	h.writeActivity(w, r, session.UserID)
}

func (h *UserHandler) writeActivity(w http.ResponseWriter, r *http.Request, userID int64) {
	entries, err := h.activity.Recent(r.Context(), userID, queryInt(r, "limit"))
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if entries == nil {
		entries = []model.ActivityLog{}
	}
	util.WriteJSON(w, http.StatusOK, entries)
}
