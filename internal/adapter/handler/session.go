package handler

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/voice-dataset/errors"
	sessionDTO "github.com/johnquangdev/voice-dataset/internal/adapter/dto/session"
	"github.com/johnquangdev/voice-dataset/internal/adapter/presenter"
	"github.com/johnquangdev/voice-dataset/internal/infrastructure/audio"
	"github.com/johnquangdev/voice-dataset/internal/usecase/session"
)

const defaultAudioContentType = "audio/wav"

// SessionManager runs operations against recording sessions
type SessionManager interface {
	Create(ctx context.Context, contributor string) (session.Status, error)
	Do(ctx context.Context, id string, fn func(*session.Controller) error) error
	Status(ctx context.Context, id string) (session.Status, error)
	Close(ctx context.Context, id string) error
}

var _ SessionManager = (*session.Manager)(nil)

// Session handles recording session HTTP requests
type Session struct {
	manager        SessionManager
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(manager SessionManager, maxUploadBytes int64, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		manager:        manager,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// CreateSession handles POST /sessions
// @Summary      Open a recording session
// @Description  Opens a session for a contributor, or for the first contributor when none is given
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        request  body      session.CreateSessionRequest  false  "Contributor"
// @Param        owner    query     string  false  "Contributor (alternative to the body)"
// @Success      200      {object}  common.SuccessResponse{data=session.SessionResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Router       /sessions [post]
func (h *Session) CreateSession(c echo.Context) error {
	var req sessionDTO.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if req.Contributor == "" {
		req.Contributor = c.QueryParam("owner")
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	c.Set(contributorKey, req.Contributor)

	st, err := h.manager.Create(c.Request().Context(), req.Contributor)
	if err != nil {
		return h.fail(c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(st))
}

// GetSession handles GET /sessions/:id
// @Summary      Get session state
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  common.SuccessResponse{data=session.SessionResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /sessions/{id} [get]
func (h *Session) GetSession(c echo.Context) error {
	st, err := h.manager.Status(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(st))
}

// CloseSession handles DELETE /sessions/:id
// @Summary      Close a session
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  common.SuccessResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /sessions/{id} [delete]
func (h *Session) CloseSession(c echo.Context) error {
	if err := h.manager.Close(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return HandleSuccess(h.logger, c, nil)
}

// SelectContributor handles PUT /sessions/:id/contributor
// @Summary      Switch contributor
// @Description  Reloads the completed set for the contributor. A capture in flight needs confirm_discard.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Session ID"
// @Param        request  body      session.SelectContributorRequest  true  "Contributor"
// @Success      200      {object}  common.SuccessResponse{data=session.SessionResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      409      {object}  common.ErrorResponse  "Confirmation required"
// @Router       /sessions/{id}/contributor [put]
func (h *Session) SelectContributor(c echo.Context) error {
	var req sessionDTO.SelectContributorRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	c.Set(contributorKey, req.Contributor)

	ctx := c.Request().Context()
	if req.ConfirmDiscard {
		ctx = audio.WithConfirmations(ctx, session.PromptDiscard)
	}
	return h.run(c, ctx, func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.SelectContributor(ctx, req.Contributor)
	})
}

// StartCapture handles POST /sessions/:id/capture/start
// @Summary      Start recording
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Session ID"
// @Param        request  body      session.StartCaptureRequest  true  "Microphone grant"
// @Success      200      {object}  common.SuccessResponse{data=session.SessionResponse}
// @Failure      409      {object}  common.ErrorResponse
// @Router       /sessions/{id}/capture/start [post]
func (h *Session) StartCapture(c echo.Context) error {
	var req sessionDTO.StartCaptureRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	ctx := audio.WithDeviceGrant(c.Request().Context(), req.DeviceGranted)
	return h.run(c, ctx, func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.StartCapture(ctx)
	})
}

// StopCapture handles POST /sessions/:id/capture/stop
// @Summary      Stop recording
// @Description  Uploads the captured audio as multipart field "audio" or as the raw request body
// @Tags         Sessions
// @Accept       multipart/form-data
// @Accept       audio/wav
// @Produce      json
// @Param        id     path      string  true   "Session ID"
// @Param        audio  formData  file    false  "Captured audio"
// @Success      200    {object}  common.SuccessResponse{data=session.SessionResponse}
// @Failure      409    {object}  common.ErrorResponse
// @Failure      413    {object}  common.ErrorResponse
// @Failure      422    {object}  common.ErrorResponse  "Empty capture"
// @Router       /sessions/{id}/capture/stop [post]
func (h *Session) StopCapture(c echo.Context) error {
	ctx := c.Request().Context()
	blob, ok, err := h.readUpload(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if ok {
		ctx = audio.WithUpload(ctx, blob)
	}

	return h.run(c, ctx, func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.StopCapture(ctx)
	})
}

// Discard handles POST /sessions/:id/discard
// @Summary      Discard the current take
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Session ID"
// @Param        request  body      session.DiscardRequest  true  "Confirmation"
// @Success      200      {object}  common.SuccessResponse{data=session.SessionResponse}
// @Failure      409      {object}  common.ErrorResponse
// @Router       /sessions/{id}/discard [post]
func (h *Session) Discard(c echo.Context) error {
	var req sessionDTO.DiscardRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	ctx := c.Request().Context()
	if req.Confirm {
		ctx = audio.WithConfirmations(ctx, session.PromptDiscard)
	}
	return h.run(c, ctx, func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.Discard(ctx)
	})
}

// PlayPending handles GET /sessions/:id/pending
// @Summary      Play the unsaved take
// @Tags         Sessions
// @Produce      octet-stream
// @Param        id   path      string  true  "Session ID"
// @Success      200  {file}    binary
// @Failure      409  {object}  common.ErrorResponse
// @Router       /sessions/{id}/pending [get]
func (h *Session) PlayPending(c echo.Context) error {
	sink := &audio.Sink{}
	ctx := audio.WithSink(c.Request().Context(), sink)

	err := h.manager.Do(ctx, c.Param("id"), func(ctrl *session.Controller) error {
		return ctrl.PlayPending(ctx)
	})
	if err != nil {
		return h.fail(c, err)
	}

	p, ok := sink.Playback()
	if !ok {
		return HandleError(h.logger, c, errors.ErrInternal(audio.ErrNoSink))
	}
	contentType := p.ContentType
	if contentType == "" {
		contentType = defaultAudioContentType
	}
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, contentType, p.Data)
}

// PlayCommitted handles GET /sessions/:id/committed
// @Summary      Locate the saved recording of the current sentence
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  common.SuccessResponse{data=session.PlaybackResponse}
// @Failure      404  {object}  common.ErrorResponse  "Recording missing from storage"
// @Failure      409  {object}  common.ErrorResponse
// @Router       /sessions/{id}/committed [get]
func (h *Session) PlayCommitted(c echo.Context) error {
	sink := &audio.Sink{}
	ctx := audio.WithSink(c.Request().Context(), sink)

	var st session.Status
	err := h.manager.Do(ctx, c.Param("id"), func(ctrl *session.Controller) error {
		playErr := ctrl.PlayCommitted(ctx)
		st = ctrl.Status()
		return playErr
	})
	if err != nil {
		return h.fail(c, err)
	}

	p, ok := sink.Playback()
	if !ok {
		return HandleError(h.logger, c, errors.ErrInternal(audio.ErrNoSink))
	}
	return HandleSuccess(h.logger, c, &sessionDTO.PlaybackResponse{
		URL:     p.URL,
		Session: presenter.ToSessionResponse(st),
	})
}

// Save handles POST /sessions/:id/save
// @Summary      Save the pending take
// @Description  Replacing an existing recording needs confirm_replace. advance moves to the next sentence on success.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Session ID"
// @Param        request  body      session.SaveRequest  true  "Save options"
// @Success      200      {object}  common.SuccessResponse{data=session.SessionResponse}
// @Failure      409      {object}  common.ErrorResponse
// @Failure      502      {object}  common.ErrorResponse  "Store write failed"
// @Failure      503      {object}  common.ErrorResponse  "Store unavailable"
// @Router       /sessions/{id}/save [post]
func (h *Session) Save(c echo.Context) error {
	var req sessionDTO.SaveRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	ctx := c.Request().Context()
	if req.ConfirmReplace {
		ctx = audio.WithConfirmations(ctx, session.PromptReplace)
	}
	return h.run(c, ctx, func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.Save(ctx, req.Advance)
	})
}

// Advance handles POST /sessions/:id/advance
// @Summary      Move to the next or previous sentence
// @Description  A blocked move leaves the session where it is and reports a notice
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Session ID"
// @Param        request  body      session.AdvanceRequest  true  "Direction"
// @Success      200      {object}  common.SuccessResponse{data=session.SessionResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Router       /sessions/{id}/advance [post]
func (h *Session) Advance(c echo.Context) error {
	var req sessionDTO.AdvanceRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	dir, ok := session.ParseDirection(req.Direction)
	if !ok {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("direction must be next or prev"))
	}

	return h.run(c, c.Request().Context(), func(_ context.Context, ctrl *session.Controller) error {
		_, err := ctrl.Advance(dir)
		return err
	})
}

// JumpTo handles POST /sessions/:id/jump
// @Summary      Jump to a sentence
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Session ID"
// @Param        request  body      session.JumpRequest  true  "1-based ordinal"
// @Success      200      {object}  common.SuccessResponse{data=session.SessionResponse}
// @Failure      400      {object}  common.ErrorResponse  "Ordinal out of range"
// @Router       /sessions/{id}/jump [post]
func (h *Session) JumpTo(c echo.Context) error {
	var req sessionDTO.JumpRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	return h.run(c, c.Request().Context(), func(_ context.Context, ctrl *session.Controller) error {
		_, err := ctrl.JumpTo(req.Ordinal)
		return err
	})
}

// RefreshCatalog handles POST /sessions/:id/catalog/refresh
// @Summary      Reload the sentence list
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  common.SuccessResponse{data=session.SessionResponse}
// @Failure      409  {object}  common.ErrorResponse
// @Router       /sessions/{id}/catalog/refresh [post]
func (h *Session) RefreshCatalog(c echo.Context) error {
	return h.run(c, c.Request().Context(), func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.RefreshCatalog(ctx)
	})
}

// run applies op to the session named in the path and responds with its state
func (h *Session) run(c echo.Context, ctx context.Context, op func(context.Context, *session.Controller) error) error {
	var st session.Status
	err := h.manager.Do(ctx, c.Param("id"), func(ctrl *session.Controller) error {
		opErr := op(ctx, ctrl)
		st = ctrl.Status()
		return opErr
	})
	if err != nil {
		return h.fail(c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(st))
}

func (h *Session) unknownSession(c echo.Context) error {
	return HandleError(h.logger, c, errors.ErrSessionNotFound(c.Param("id")))
}

func (h *Session) fail(c echo.Context, err error) error {
	return HandleError(h.logger, c, toAppError(c, err))
}

// readUpload reads the captured audio from a multipart "audio" field or the raw body.
// ok is false when a multipart request carries no audio field.
func (h *Session) readUpload(c echo.Context) (session.Blob, bool, error) {
	req := c.Request()
	mediaType, _, _ := mime.ParseMediaType(req.Header.Get(echo.HeaderContentType))

	var (
		body        io.Reader
		contentType = defaultAudioContentType
	)
	switch {
	case mediaType == echo.MIMEMultipartForm:
		fh, err := c.FormFile("audio")
		if err != nil {
			if stdErrors.Is(err, http.ErrMissingFile) {
				return session.Blob{}, false, nil
			}
			return session.Blob{}, false, errors.ErrInvalidPayload()
		}
		if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
			return session.Blob{}, false, errUploadTooLarge(h.maxUploadBytes)
		}
		f, err := fh.Open()
		if err != nil {
			return session.Blob{}, false, errors.ErrInternal(err)
		}
		defer f.Close()
		body = f
		if ct := fh.Header.Get(echo.HeaderContentType); ct != "" {
			contentType = ct
		}
	default:
		if req.Body == nil {
			return session.Blob{Data: nil, ContentType: contentType}, true, nil
		}
		body = req.Body
		if strings.HasPrefix(mediaType, "audio/") {
			contentType = mediaType
		}
	}

	if h.maxUploadBytes > 0 {
		body = io.LimitReader(body, h.maxUploadBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return session.Blob{}, false, errors.ErrInvalidPayload()
	}
	if h.maxUploadBytes > 0 && int64(len(data)) > h.maxUploadBytes {
		return session.Blob{}, false, errUploadTooLarge(h.maxUploadBytes)
	}
	return session.Blob{Data: data, ContentType: contentType}, true, nil
}

func errUploadTooLarge(limit int64) errors.AppError {
	appErr := errors.ErrInvalidArgument(fmt.Sprintf("audio exceeds the %d byte upload limit", limit))
	appErr.HTTPCode = http.StatusRequestEntityTooLarge
	return appErr
}
