package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"churchthreads.app/api/internal/http/dto"
	"churchthreads.app/api/internal/service"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
}

func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

func (h *OrganizationHandler) GetBySubdomain(c *gin.Context) {
	org, err := h.orgService.GetBySubdomain(c.Request.Context(), c.Param("subdomain"))
	if err != nil {
		respondError(c, err, "failed to get organization")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}
