package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/voice-dataset/errors"
	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/usecase/export"
	"github.com/johnquangdev/voice-dataset/internal/usecase/session"
)

// contributorKey is the echo context key holding the contributor a request names
const contributorKey = "contributor"

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			level := logger.Error
			if appErr.HTTPCode < http.StatusInternalServerError {
				level = logger.Warn
			}
			level("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Stringer("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// toAppError maps use-case errors onto application errors
func toAppError(c echo.Context, err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var confirmErr *session.ConfirmationError
	var saveErr *session.SaveError

	switch {
	case stdErrors.Is(err, session.ErrSessionNotFound):
		appErr = errors.ErrSessionNotFound(c.Param("id"))
	case stdErrors.Is(err, session.ErrInvalidContributor),
		stdErrors.Is(err, entities.ErrContributorNotFound):
		name, _ := c.Get(contributorKey).(string)
		appErr = errors.ErrInvalidContributor(name)
	case stdErrors.Is(err, entities.ErrContributorAlreadyExists):
		appErr = errors.ErrAlreadyExists("contributor")
	case stdErrors.Is(err, entities.ErrInvalidContributorName),
		stdErrors.Is(err, entities.ErrInvalidDisplayName):
		appErr = errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, session.ErrOutOfRange):
		appErr = errors.ErrOutOfRange(err)
	case stdErrors.As(err, &confirmErr):
		appErr = errors.ErrConfirmationRequired(string(confirmErr.Prompt))
	case stdErrors.Is(err, session.ErrIllegalState):
		appErr = errors.ErrIllegalState(err)
	case stdErrors.Is(err, session.ErrDeviceUnavailable):
		appErr = errors.ErrDeviceUnavailable(err)
	case stdErrors.Is(err, session.ErrEmptyCapture):
		appErr = errors.ErrEmptyCapture()
	case stdErrors.Is(err, session.ErrNotFound):
		appErr = errors.ErrRecordingNotFound(err)
	case stdErrors.Is(err, session.ErrStoreUnavailable):
		appErr = errors.ErrStoreUnavailable(err)
	case stdErrors.Is(err, session.ErrBlobWriteFailed):
		appErr = errors.ErrBlobWriteFailed(err)
	case stdErrors.Is(err, session.ErrMetadataWriteFailed):
		appErr = errors.ErrMetadataWriteFailed(err)
	case stdErrors.Is(err, session.ErrDeleteFailed):
		appErr = errors.ErrDeleteFailed(err)
	case stdErrors.Is(err, export.ErrNoRecordings):
		appErr = errors.ErrNotFound("recordings")
	case stdErrors.Is(err, entities.ErrBlobNotFound):
		appErr = errors.ErrNotFound("blob")
	default:
		return errors.ErrInternal(err)
	}

	if stdErrors.As(err, &saveErr) {
		appErr = appErr.WithDetail("step", string(saveErr.Step))
		if saveErr.Key != "" {
			appErr = appErr.WithDetail("key", saveErr.Key)
		}
		if saveErr.Orphaned {
			appErr = appErr.WithDetail("orphaned", "true")
		}
	}
	appErr.Raw = err
	return appErr
}
