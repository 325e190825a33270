package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/mock"
	"github.com/MKhiriev/go-lead-keeper/internal/store"
	"github.com/MKhiriev/go-lead-keeper/models"
)

func newTestLeadSvc(t *testing.T, ctrl *gomock.Controller) (*leadService, *mock.MockLeadRepository, *mock.MockDashboardCache) {
	t.Helper()
	leads := mock.NewMockLeadRepository(ctrl)
	dashboardCache := mock.NewMockDashboardCache(ctrl)

	svc := NewLeadService(leads, dashboardCache, logger.Nop()).(*leadService)
	svc.now = func() time.Time { return fixedNow }

	return svc, leads, dashboardCache
}

var newLead = models.LeadCreate{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Phone: "555"}

// ── CreateLeads ──────────────────────────────────────────────────────────────

func TestLeadService_CreateLeads_Single(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, leads, dashboardCache := newTestLeadSvc(t, ctrl)
	ctx := context.Background()

	stored := []models.Lead{{ID: 1, FirstName: "Ann"}}
	gomock.InOrder(
		leads.EXPECT().CreateLeads(ctx, []models.LeadCreate{newLead}, fixedNow).Return(stored, nil),
		dashboardCache.EXPECT().Invalidate(ctx),
	)

	created, err := svc.CreateLeads(ctx, models.Single(newLead))
	require.NoError(t, err)
	assert.Equal(t, stored, created)
}

func TestLeadService_CreateLeads_EmptyList(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestLeadSvc(t, ctrl)

	_, err := svc.CreateLeads(context.Background(), models.Many[models.LeadCreate]())
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestLeadService_CreateLeads_ListFailureIsBulkError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, leads, _ := newTestLeadSvc(t, ctrl)

	leads.EXPECT().CreateLeads(gomock.Any(), gomock.Len(2), fixedNow).Return(nil, store.ErrConflict)

	_, err := svc.CreateLeads(context.Background(), models.Many(newLead, newLead))
	assert.ErrorIs(t, err, ErrBulkInsertFailed)
	assert.NotErrorIs(t, err, store.ErrConflict)
	assert.Contains(t, err.Error(), store.ErrConflict.Error())
}

func TestLeadService_CreateLeads_SingleFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, leads, _ := newTestLeadSvc(t, ctrl)

	leads.EXPECT().CreateLeads(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, store.ErrConflict)

	_, err := svc.CreateLeads(context.Background(), models.Single(newLead))
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.NotErrorIs(t, err, ErrBulkInsertFailed)
}

// ── reads ────────────────────────────────────────────────────────────────────

func TestLeadService_SearchAndGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, leads, _ := newTestLeadSvc(t, ctrl)
	ctx := context.Background()

	filter := models.LeadFilter{Query: "ann", Page: 1, Size: 10}
	leads.EXPECT().SearchLeads(ctx, filter).Return([]models.Lead{{ID: 1}}, nil)
	leads.EXPECT().GetLead(ctx, int64(1)).Return(models.Lead{ID: 1}, nil)
	leads.EXPECT().GetLead(ctx, int64(2)).Return(models.Lead{}, store.ErrLeadNotFound)

	found, err := svc.SearchLeads(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	lead, err := svc.GetLead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), lead.ID)

	_, err = svc.GetLead(ctx, 2)
	assert.ErrorIs(t, err, store.ErrLeadNotFound)
}

// ── writes ───────────────────────────────────────────────────────────────────

func TestLeadService_UpdateLead(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, leads, dashboardCache := newTestLeadSvc(t, ctrl)
	ctx := context.Background()

	status := "closed"
	update := models.LeadUpdate{Status: models.Some(status)}

	leads.EXPECT().UpdateLead(ctx, int64(3), update, fixedNow).Return(models.Lead{ID: 3, Status: status}, nil)
	dashboardCache.EXPECT().Invalidate(ctx)

	lead, err := svc.UpdateLead(ctx, 3, update)
	require.NoError(t, err)
	assert.Equal(t, status, lead.Status)
}

func TestLeadService_UpdateLead_NotFoundKeepsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, leads, _ := newTestLeadSvc(t, ctrl)

	leads.EXPECT().UpdateLead(gomock.Any(), int64(3), gomock.Any(), gomock.Any()).Return(models.Lead{}, store.ErrLeadNotFound)

	_, err := svc.UpdateLead(context.Background(), 3, models.LeadUpdate{})
	assert.ErrorIs(t, err, store.ErrLeadNotFound)
}

func TestLeadService_DeleteLead(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, leads, dashboardCache := newTestLeadSvc(t, ctrl)
	ctx := context.Background()

	leads.EXPECT().DeleteLead(ctx, int64(4)).Return(nil)
	dashboardCache.EXPECT().Invalidate(ctx)
	require.NoError(t, svc.DeleteLead(ctx, 4))

	leads.EXPECT().DeleteLead(ctx, int64(5)).Return(errors.New("boom"))
	assert.Error(t, svc.DeleteLead(ctx, 5))
}
