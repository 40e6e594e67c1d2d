package handler

import (
	"bytes"
	"context"
	stdErrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/voice-dataset/errors"
	adminDTO "github.com/johnquangdev/voice-dataset/internal/adapter/dto/admin"
	"github.com/johnquangdev/voice-dataset/internal/adapter/presenter"
	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	adminUsecase "github.com/johnquangdev/voice-dataset/internal/usecase/admin"
	"github.com/johnquangdev/voice-dataset/internal/usecase/export"
	"github.com/johnquangdev/voice-dataset/internal/usecase/training"
)

// Exporter builds dataset archives
type Exporter interface {
	Prepare(ctx context.Context, ids []uint) ([]*entities.Recording, error)
	Write(ctx context.Context, w io.Writer, recordings []*entities.Recording) (*export.Result, error)
}

// TrainingStarter submits training jobs
type TrainingStarter interface {
	Start(ctx context.Context, contributor string) ([]string, error)
}

// Admin handles contributor administration, reporting and dataset export
type Admin struct {
	adminService adminUsecase.Service
	exporter     Exporter
	trainer      TrainingStarter
	logger       *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService adminUsecase.Service, exporter Exporter, trainer TrainingStarter, logger *zap.Logger) *Admin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Admin{
		adminService: adminService,
		exporter:     exporter,
		trainer:      trainer,
		logger:       logger,
	}
}

// ListContributors handles GET /admin/contributors
// @Summary      List contributors
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  common.SuccessResponse{data=[]admin.ContributorResponse}
// @Router       /admin/contributors [get]
func (h *Admin) ListContributors(c echo.Context) error {
	list, err := h.adminService.ListContributors(c.Request().Context())
	if err != nil {
		return h.failQuery(c, "list_contributors", err)
	}
	return HandleSuccess(h.logger, c, presenter.ToContributorListResponse(list))
}

// AddContributor handles POST /admin/contributors
// @Summary      Register a contributor
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request  body      admin.AddContributorRequest  true  "Contributor"
// @Success      200      {object}  common.SuccessResponse{data=admin.ContributorResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      409      {object}  common.ErrorResponse  "Contributor already exists"
// @Router       /admin/contributors [post]
func (h *Admin) AddContributor(c echo.Context) error {
	var req adminDTO.AddContributorRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	contributor, err := h.adminService.AddContributor(c.Request().Context(), adminUsecase.AddContributorInput{
		Name:        req.Name,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToContributorResponse(contributor))
}

// DeleteContributor handles DELETE /admin/contributors/:id
// @Summary      Remove a contributor
// @Description  The contributor's recordings are kept
// @Tags         Admin
// @Produce      json
// @Param        id   path      int  true  "Contributor ID"
// @Success      200  {object}  common.SuccessResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /admin/contributors/{id} [delete]
func (h *Admin) DeleteContributor(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("contributor ID must be a positive integer"))
	}

	if err := h.adminService.DeleteContributor(c.Request().Context(), uint(id)); err != nil {
		if stdErrors.Is(err, entities.ErrContributorNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("contributor"))
		}
		return h.fail(c, err)
	}
	return HandleSuccess(h.logger, c, nil)
}

// Progress handles GET /admin/progress
// @Summary      Recording progress per contributor
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  common.SuccessResponse{data=[]admin.ProgressRowResponse}
// @Router       /admin/progress [get]
func (h *Admin) Progress(c echo.Context) error {
	rows, err := h.adminService.Progress(c.Request().Context())
	if err != nil {
		return h.failQuery(c, "progress", err)
	}
	return HandleSuccess(h.logger, c, presenter.ToProgressResponse(rows))
}

// Dashboard handles GET /admin/dashboard
// @Summary      Recording counts per owner
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  common.SuccessResponse{data=admin.DashboardResponse}
// @Router       /admin/dashboard [get]
func (h *Admin) Dashboard(c echo.Context) error {
	out, err := h.adminService.Dashboard(c.Request().Context())
	if err != nil {
		return h.failQuery(c, "dashboard", err)
	}
	return HandleSuccess(h.logger, c, presenter.ToDashboardResponse(out))
}

// ListRecordings handles GET /admin/recordings
// @Summary      List saved recordings
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  common.SuccessResponse{data=[]admin.RecordingResponse}
// @Router       /admin/recordings [get]
func (h *Admin) ListRecordings(c echo.Context) error {
	list, err := h.adminService.ListRecordings(c.Request().Context())
	if err != nil {
		return h.failQuery(c, "list_recordings", err)
	}
	return HandleSuccess(h.logger, c, presenter.ToRecordingListResponse(list))
}

// Export handles POST /admin/export
// @Summary      Download recordings as a zip archive
// @Description  Audio is stored under audio/{owner}/ next to json/dataset.json. Audio that cannot be fetched is skipped and counted in X-Export-Skipped.
// @Tags         Admin
// @Accept       json
// @Produce      application/zip
// @Param        request  body      admin.ExportRequest  false  "Recording IDs, empty for all"
// @Success      200      {file}    binary
// @Failure      404      {object}  common.ErrorResponse  "No recordings selected"
// @Router       /admin/export [post]
func (h *Admin) Export(c echo.Context) error {
	var req adminDTO.ExportRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	ctx := c.Request().Context()
	recordings, err := h.exporter.Prepare(ctx, req.IDs)
	if err != nil {
		return h.failQuery(c, "export_recordings", err)
	}

	var buf bytes.Buffer
	result, err := h.exporter.Write(ctx, &buf, recordings)
	if err != nil {
		return h.fail(c, err)
	}

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, `attachment; filename="dataset.zip"`)
	header.Set("X-Export-Included", strconv.Itoa(result.Included))
	header.Set("X-Export-Skipped", strconv.Itoa(len(result.Skipped)))

	h.logger.Info("admin.export.completed",
		zap.String("request_id", getRequestID(c)),
		zap.Int("included", result.Included),
		zap.Int("skipped", len(result.Skipped)),
	)
	return c.Blob(http.StatusOK, "application/zip", buf.Bytes())
}

// Train handles POST /admin/train
// @Summary      Start model training for a contributor
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request  body      admin.TrainRequest  true  "Contributor"
// @Success      200      {object}  common.SuccessResponse{data=admin.TrainResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      502      {object}  common.ErrorResponse  "Training service call failed"
// @Router       /admin/train [post]
func (h *Admin) Train(c echo.Context) error {
	var req adminDTO.TrainRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	c.Set(contributorKey, req.Contributor)

	logs, err := h.trainer.Start(c.Request().Context(), req.Contributor)
	if err != nil {
		if stdErrors.Is(err, training.ErrTrainerFailed) {
			return HandleError(h.logger, c, errors.ErrTrainerFailed(err))
		}
		return h.fail(c, err)
	}
	return HandleSuccess(h.logger, c, &adminDTO.TrainResponse{
		Contributor: req.Contributor,
		Logs:        logs,
	})
}

func (h *Admin) fail(c echo.Context, err error) error {
	return HandleError(h.logger, c, toAppError(c, err))
}

// failQuery reports errors of read-only queries, naming the query when
// the cause is not a known domain error
func (h *Admin) failQuery(c echo.Context, query string, err error) error {
	appErr := toAppError(c, err)
	if appErr.Code == errors.ErrorCode_INTERNAL {
		appErr = errors.ErrDBQueryFailed(query, err)
	}
	return HandleError(h.logger, c, appErr)
}
