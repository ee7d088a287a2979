package handlers

import (
	"net/http"

	"studio_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary  Liveness probe
// @Tags     ops
// @Produce  json
// @Success  200  {object}  dto.OKResponse
// @Router   /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}
