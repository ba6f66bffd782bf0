package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/usersvc/internal/api/dto"
	"github.com/martijn/usersvc/internal/core/domain"
	"github.com/martijn/usersvc/internal/core/service"
	"github.com/martijn/usersvc/internal/logging"
)

const (
	MsgUserCreated  = "User created successfully"
	MsgUsersFetched = "Users fetched successfully"
	MsgUserFetched  = "User fetched successfully"
	MsgUserUpdated  = "User updated successfully"
	MsgUserDeleted  = "User deleted successfully"
	MsgUsersCleared = "All users cleared successfully"
)

type UserHandler struct {
	userService *service.UserService
	logger      logging.Logger
}

func NewUserHandler(userService *service.UserService, logger logging.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// AddUser handles POST /addUser
func (h *UserHandler) AddUser(c *gin.Context) {
	req, err := bindUserRequest(c)
	if err != nil {
		respondError(c, h.logger, "add_user", err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req.Input())
	if err != nil {
		respondError(c, h.logger, "add_user", err)
		return
	}

	respond(c, http.StatusCreated, dto.ToUserResponse(user), MsgUserCreated)
}

// GetUsers handles GET /getUsers
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "get_users", err)
		return
	}

	respond(c, http.StatusOK, dto.ToUserResponses(users), MsgUsersFetched)
}

// GetUser handles GET /getUser/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get_user", err)
		return
	}

	respond(c, http.StatusOK, dto.ToUserResponse(user), MsgUserFetched)
}

// UpdateUser handles PUT /updateUser/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	req, err := bindUserRequest(c)
	if err != nil {
		respondError(c, h.logger, "update_user", err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), req.Input())
	if err != nil {
		respondError(c, h.logger, "update_user", err)
		return
	}

	respond(c, http.StatusOK, dto.ToUserResponse(user), MsgUserUpdated)
}

// DeleteUser handles DELETE /deleteUser/:id. Unknown ids still succeed.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "delete_user", err)
		return
	}

	respond(c, http.StatusOK, nil, MsgUserDeleted)
}

// ClearUsers handles POST /clearUsers
func (h *UserHandler) ClearUsers(c *gin.Context) {
	n, err := h.userService.Clear(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "clear_users", err)
		return
	}

	h.logger.Info(c.Request.Context(), "users cleared", "count", n)
	respond(c, http.StatusOK, nil, MsgUsersCleared)
}

// bindUserRequest decodes the JSON body. An empty body decodes as an empty
// payload and fails validation later.
func bindUserRequest(c *gin.Context) (dto.UserRequest, error) {
	var req dto.UserRequest
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return req, nil
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return dto.UserRequest{}, domain.NewValidationError(MsgInvalidRequestBody)
	}
	return req, nil
}
