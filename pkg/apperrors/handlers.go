package apperrors

import (
	"github.com/gin-gonic/gin"

	"studio_backend/internal/logger"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	OK    bool      `json:"ok"`
	Error *AppError `json:"error"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}
	if appErr.HTTPCode >= 500 && !h.Debug {
		// В продакшене скрываем детали
		appErr = &AppError{Code: appErr.Code, Domain: appErr.Domain, Message: appErr.Message, Err: appErr.Err, HTTPCode: appErr.HTTPCode}
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "Server error", appErr.Unwrap(), "code", appErr.Code, "path", c.FullPath())
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{OK: false, Error: appErr})
}

// HandleError - функция-помощник для Gin. Детали 5xx скрываются вне gin.DebugMode.
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() == gin.DebugMode}
	handler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HandleValidationError - обработчик ошибок биндинга Gin
func HandleValidationError(c *gin.Context, err error) {
	HandleError(c, ValidationError(gin.H{"details": err.Error()}))
}
