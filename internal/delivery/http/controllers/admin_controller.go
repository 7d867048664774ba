package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

// AdminController exposes admin-only user and group management.
type AdminController struct {
	Logger       *slog.Logger
	UserService  domain.UserService
	GroupService domain.GroupService
}

func NewAdminController(logger *slog.Logger, users domain.UserService, groups domain.GroupService) *AdminController {
	return &AdminController{
		Logger:       logger,
		UserService:  users,
		GroupService: groups,
	}
}

// ListUsers godoc
// @Summary List users with their resolved roles
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Router /admin/users [get]
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.UserService.ListUsers(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "list users failed", "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, users)
}

// UpdateUserRequest is the request body for PATCH /admin/users/{userID}.
// A non-nil empty group clears the user's group memberships.
type UpdateUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Group     *string `json:"group"`
}

// UpdateUser godoc
// @Summary Update a user and optionally reassign their group
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param body body controllers.UpdateUserRequest true "Fields to change"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/users/{userID} [patch]
func (c *AdminController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid userID")
		return
	}
	var req UpdateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.UserService.UpdateUser(r.Context(), userID, domain.AdminUserUpdate{
		ProfileUpdate: domain.ProfileUpdate{
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		},
		GroupName: req.Group,
	})
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Removes the user with their events and RSVPs.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/users/{userID} [delete]
func (c *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid userID")
		return
	}
	if err := c.UserService.DeleteUser(r.Context(), userID); err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GroupRequest is the request body for POST /admin/groups.
type GroupRequest struct {
	Name string `json:"name"`
}

// Validate implements helpers.Validator.
func (r *GroupRequest) Validate() []string {
	if strings.TrimSpace(r.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// CreateGroup godoc
// @Summary Create a group
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.GroupRequest true "Group name"
// @Success 201 {object} helpers.APIResponse
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name taken)"
// @Router /admin/groups [post]
func (c *AdminController) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req GroupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	group, err := c.GroupService.Create(r.Context(), req.Name)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, group)
}

// ListGroups godoc
// @Summary List groups with member counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Router /admin/groups [get]
func (c *AdminController) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := c.GroupService.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "list groups failed", "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, groups)
}

// DeleteGroup godoc
// @Summary Delete an empty group
// @Description Refuses with 409 when the group still has members; nothing is changed in that case.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (group has members)"
// @Router /admin/groups/{groupID} [delete]
func (c *AdminController) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupID")
	if !uuidRegex.MatchString(groupID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid groupID")
		return
	}
	if err := c.GroupService.Delete(r.Context(), groupID); err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
