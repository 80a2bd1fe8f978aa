package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"churchthreads.app/api/internal/http/dto"
	"churchthreads.app/api/internal/http/middleware"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToUserResponse(currentUser(c)))
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), currentUser(c), req.Name, req.NotificationChannels)
	if err != nil {
		respondError(c, err, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// currentUser is the user RequireAuth put on the request.
func currentUser(c *gin.Context) *model.User {
	return middleware.GetUser(c.Request.Context())
}
