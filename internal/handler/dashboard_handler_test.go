package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/funeral-admin-api/internal/dto"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

type fakeDashboardSrv struct {
	stats *dto.DashboardStats
	err   error
}

func (f *fakeDashboardSrv) Stats(context.Context) (*dto.DashboardStats, error) {
	return f.stats, f.err
}

func TestDashboardHandlerStats(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboardSrv{stats: &dto.DashboardStats{Revenue: 60000}})
	c, w := newGinContext(http.MethodGet, "/admin/dashboard", nil)

	handler.Stats(c)

	require.Equal(t, http.StatusOK, w.Code)
	var stats dto.DashboardStats
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &stats))
	assert.Equal(t, 60000.0, stats.Revenue)
}

func TestDashboardHandlerFailsWhole(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboardSrv{err: appErrors.Internal(nil, "failed to load dashboard statistics")})
	c, w := newGinContext(http.MethodGet, "/admin/dashboard", nil)

	handler.Stats(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
