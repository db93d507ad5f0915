package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/funeral-admin-api/internal/middleware"
	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
	"github.com/noah-isme/funeral-admin-api/pkg/listing"
	"github.com/noah-isme/funeral-admin-api/pkg/response"
)

// statusRequest moves an entity to another status.
type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	return middleware.ClaimsFromContext(c)
}

func invalidPayload(c *gin.Context, err error) {
	response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
}

func tabParam(c *gin.Context) (models.Tab, bool) {
	tab, ok := models.ParseTab(c.Param("tab"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown tab"))
		return nil, false
	}
	return tab, true
}

// viewUpdateFromQuery only sets the fields present in the query string so absent parameters
// leave the stored view untouched.
func viewUpdateFromQuery(c *gin.Context) (models.ViewStateUpdate, error) {
	var update models.ViewStateUpdate
	if v, ok := c.GetQuery("search"); ok {
		update.Search = &v
	}
	if v, ok := c.GetQuery("status"); ok {
		update.Status = &v
	}
	if v, ok := c.GetQuery("category"); ok {
		update.Category = &v
	}
	for key, dst := range map[string]**int{"page": &update.Page, "page_size": &update.PageSize} {
		raw, ok := c.GetQuery(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return update, appErrors.Clone(appErrors.ErrValidation, key+" must be a number")
		}
		*dst = &n
	}
	return update, nil
}

func listingQueryFromRequest(c *gin.Context) listing.Query {
	return listing.Query{
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   strings.TrimSpace(c.Query("status")),
		Category: strings.TrimSpace(c.Query("category")),
	}
}

func meta(c *gin.Context) map[string]interface{} {
	return middleware.ExtractMeta(c)
}
