package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/funeral-admin-api/internal/dto"
	"github.com/noah-isme/funeral-admin-api/internal/middleware"
	"github.com/noah-isme/funeral-admin-api/internal/models"
	"github.com/noah-isme/funeral-admin-api/internal/service"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
	"github.com/noah-isme/funeral-admin-api/pkg/export"
	"github.com/noah-isme/funeral-admin-api/pkg/listing"
	"github.com/noah-isme/funeral-admin-api/pkg/response"
)

type tabService interface {
	ListTab(ctx context.Context, userID string, tab models.Tab, update models.ViewStateUpdate) (*dto.TabPage, error)
	ExportTab(ctx context.Context, tab models.Tab, query listing.Query, format export.Format) (*dto.TabExport, error)
}

type bulkService interface {
	Execute(ctx context.Context, tab models.Tab, req dto.BulkActionRequest) (*dto.BulkResult, error)
}

type viewStateService interface {
	Get(ctx context.Context, userID string) models.ViewState
	UpdateSelection(ctx context.Context, userID string, tab models.Tab, req service.SelectionRequest) (models.ViewState, error)
	Reset(ctx context.Context, userID string) error
}

// TabHandler serves the admin tabs: paged listing, export, selection and bulk actions.
type TabHandler struct {
	tabs   tabService
	bulk   bulkService
	states viewStateService
}

// NewTabHandler constructs TabHandler.
func NewTabHandler(tabs tabService, bulk bulkService, states viewStateService) *TabHandler {
	return &TabHandler{tabs: tabs, bulk: bulk, states: states}
}

// List godoc
// @Summary Page through an admin tab
// @Description Query parameters update the caller's stored view; omitted ones keep their value.
// @Description Changing search, status, category or page_size returns to page 1.
// @Tags Tabs
// @Produce json
// @Param tab path string true "members, events, staff, claims, contacts or audit_logs"
// @Param search query string false "Free-text search"
// @Param status query string false "Status filter or all"
// @Param category query string false "Category filter or all"
// @Param page query int false "Page"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} response.Envelope
// @Router /admin/tabs/{tab} [get]
func (h *TabHandler) List(c *gin.Context) {
	tab, ok := tabParam(c)
	if !ok {
		return
	}
	update, err := viewUpdateFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.tabs.ListTab(c.Request.Context(), processorID(c), tab, update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, &models.Pagination{
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalCount: page.Total,
		TotalPages: page.PageCount,
	}, meta(c))
}

// Export godoc
// @Summary Export the filtered rows of a tab
// @Tags Tabs
// @Produce octet-stream
// @Param tab path string true "Tab name"
// @Param format query string false "csv (default), pdf or xlsx"
// @Param search query string false "Free-text search"
// @Param status query string false "Status filter"
// @Param category query string false "Category filter"
// @Success 200 {file} binary
// @Router /admin/tabs/{tab}/export [get]
func (h *TabHandler) Export(c *gin.Context) {
	tab, ok := tabParam(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unsupported export format"))
		return
	}
	file, err := h.tabs.ExportTab(c.Request.Context(), tab, listingQueryFromRequest(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.FileName, file.ContentType, file.Payload)
}

// Bulk godoc
// @Summary Apply an action to the selected rows of a tab
// @Description Ids run in order and the first failure stops the rest. The caller's selection
// @Description is cleared and fresh dashboard statistics are returned.
// @Tags Tabs
// @Accept json
// @Produce json
// @Param tab path string true "Tab name"
// @Param payload body dto.BulkActionRequest true "Action and ids"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/tabs/{tab}/bulk [post]
func (h *TabHandler) Bulk(c *gin.Context) {
	tab, ok := tabParam(c)
	if !ok {
		return
	}
	var req dto.BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	result, err := h.bulk.Execute(c.Request.Context(), tab, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "aborted", result.Aborted)
	response.JSON(c, http.StatusOK, result, nil, meta(c))
}

// Selection godoc
// @Summary Edit the selected rows of a tab
// @Tags Tabs
// @Accept json
// @Produce json
// @Param tab path string true "Tab name"
// @Param payload body service.SelectionRequest true "Selection change"
// @Success 200 {object} response.Envelope
// @Router /admin/tabs/{tab}/selection [put]
func (h *TabHandler) Selection(c *gin.Context) {
	tab, ok := tabParam(c)
	if !ok {
		return
	}
	var req service.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	state, err := h.states.UpdateSelection(c.Request.Context(), processorID(c), tab, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// ViewState godoc
// @Summary Current admin view of the caller
// @Tags Tabs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/view-state [get]
func (h *TabHandler) ViewState(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.states.Get(c.Request.Context(), processorID(c)), nil)
}

// ResetViewState godoc
// @Summary Forget the caller's admin view
// @Tags Tabs
// @Success 204
// @Router /admin/view-state [delete]
func (h *TabHandler) ResetViewState(c *gin.Context) {
	if err := h.states.Reset(c.Request.Context(), processorID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
