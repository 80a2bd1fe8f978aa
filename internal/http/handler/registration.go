package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"churchthreads.app/api/internal/http/dto"
	"churchthreads.app/api/internal/service"
)

type RegistrationHandler struct {
	registration service.RegistrationService
}

func NewRegistrationHandler(registration service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registration: registration}
}

func (h *RegistrationHandler) Register(c *gin.Context) {
	orgID, ok := paramID(c, "orgId")
	if !ok {
		return
	}
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInviteInvalid.Error(), "code": "invite_invalid"})
		return
	}

	result, err := h.registration.Register(c.Request.Context(), service.RegisterParams{
		OrgID: orgID,
		Token: req.Token,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respondError(c, err, "failed to register")
		return
	}
	c.JSON(http.StatusCreated, result)
}
