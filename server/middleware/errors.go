package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/sessionauth/errors"
	"github.com/kbukum/sessionauth/logger"
)

// ErrorHandler renders the last error attached with c.Error as the JSON
// error envelope. Errors that are not AppErrors become INTERNAL_ERROR.
// Server errors are logged at error level with their cause, client errors
// at warn.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		appErr := apperrors.Wrap(c.Errors.Last().Err)

		fields := map[string]interface{}{
			logger.FieldMethod:    c.Request.Method,
			logger.FieldPath:      c.Request.URL.Path,
			logger.FieldStatus:    appErr.HTTPStatus,
			logger.FieldErrorCode: string(appErr.Code),
		}
		l := log.WithContext(c.Request.Context())
		if appErr.HTTPStatus >= 500 {
			if appErr.Cause != nil {
				fields[logger.FieldError] = appErr.Cause.Error()
			}
			l.Error(appErr.Message, fields)
		} else {
			l.Warn(appErr.Message, fields)
		}

		if c.Writer.Written() {
			return
		}
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
	}
}
