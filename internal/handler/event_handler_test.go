package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/funeral-admin-api/internal/dto"
	"github.com/noah-isme/funeral-admin-api/internal/models"
	"github.com/noah-isme/funeral-admin-api/internal/service"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

type fakeEvents struct {
	createErr error
	event     *models.BurialEvent
}

func (f *fakeEvents) List(ctx context.Context, filter models.EventFilter) ([]models.BurialEvent, error) {
	return nil, nil
}
func (f *fakeEvents) Get(ctx context.Context, id string) (*models.BurialEvent, error) { return f.event, nil }
func (f *fakeEvents) Create(ctx context.Context, req service.CreateEventRequest) (*models.BurialEvent, error) {
	return f.event, f.createErr
}
func (f *fakeEvents) Update(ctx context.Context, id string, req service.UpdateEventRequest) (*models.BurialEvent, error) {
	return f.event, nil
}
func (f *fakeEvents) SetStatus(ctx context.Context, id string, status models.EventStatus) error {
	return nil
}
func (f *fakeEvents) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeEvents) ListStaff(ctx context.Context, eventID string) ([]models.EventStaffAssignment, error) {
	return nil, nil
}
func (f *fakeEvents) AssignStaff(ctx context.Context, eventID string, req service.AssignStaffRequest) (*models.EventStaffAssignment, error) {
	return nil, nil
}
func (f *fakeEvents) UnassignStaff(ctx context.Context, eventID, staffID string) error { return nil }
func (f *fakeEvents) Stats(ctx context.Context) (*dto.EventStats, error) {
	return &dto.EventStats{}, nil
}

const eventPayload = `{"deceased_name":"Nomsa Zulu","event_date":"2025-12-20T00:00:00Z","event_time":"10:00","location":"Soweto","generate_checklist":true}`

func TestEventHandlerCreateReportsChecklistFailure(t *testing.T) {
	handler := NewEventHandler(&fakeEvents{
		event:     &models.BurialEvent{ID: "e1", EventNumber: "BE-2025-0001"},
		createErr: appErrors.Internal(nil, "failed to generate checklist"),
	})
	c, w := newGinContext(http.MethodPost, "/admin/events", []byte(eventPayload))

	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "failed to generate checklist", env.Meta["checklist_error"])
	var event models.BurialEvent
	require.NoError(t, json.Unmarshal(env.Data, &event))
	assert.Equal(t, "e1", event.ID)
}

func TestEventHandlerCreateFailure(t *testing.T) {
	handler := NewEventHandler(&fakeEvents{createErr: appErrors.Clone(appErrors.ErrValidation, "invalid event payload")})
	c, w := newGinContext(http.MethodPost, "/admin/events", []byte(eventPayload))

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
