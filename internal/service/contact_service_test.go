package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

func TestContactServiceCRUD(t *testing.T) {
	repo := newFakeContactRepo()
	audit := &recordingAudit{}
	svc := NewContactService(repo, audit, nil, nil)
	ctx := actorContext("user-1")

	contact, err := svc.Create(ctx, ContactRequest{Name: "Peace Caterers", Type: models.ContactTypeSupplier, Phone: "0115550000"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, contact.ID, ContactRequest{Name: "Peace Catering", Type: models.ContactTypeSupplier, Phone: "0115550001", AssociatedEvents: 4})
	require.NoError(t, err)
	assert.Equal(t, "Peace Catering", updated.Name)
	assert.Equal(t, 4, updated.AssociatedEvents)

	require.NoError(t, svc.Delete(ctx, contact.ID))
	_, err = svc.Get(ctx, contact.ID)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Equal(t, []string{
		"create:contact:" + contact.ID,
		"update:contact:" + contact.ID,
		"delete:contact:" + contact.ID,
	}, audit.actions)
}

func TestContactServiceRejectsUnknownType(t *testing.T) {
	svc := NewContactService(newFakeContactRepo(), nil, nil, nil)

	_, err := svc.Create(context.Background(), ContactRequest{Name: "X", Type: "vendor", Phone: "1"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestContactServiceStats(t *testing.T) {
	svc := NewContactService(newFakeContactRepo(
		models.Contact{ID: "1", Type: models.ContactTypeMember},
		models.Contact{ID: "2", Type: models.ContactTypeSupplier},
		models.Contact{ID: "3", Type: models.ContactTypeSupplier},
		models.Contact{ID: "4", Type: models.ContactTypeAttendingMember},
	), nil, nil, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Members)
	assert.Equal(t, 2, stats.Suppliers)
	assert.Equal(t, 1, stats.AttendingMember)
	assert.Equal(t, 0, stats.Staff)
}
