package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-lead-keeper/internal/service"
	"github.com/MKhiriev/go-lead-keeper/internal/store"
	"github.com/MKhiriev/go-lead-keeper/models"
)

const activityBody = `{"activity_type":"call","title":"Intro call","notes":"Interested in 2BR","duration":15,"activity_date":"2024-05-14"}`

func sampleActivity(id, leadID int64) models.Activity {
	return models.Activity{
		ID:           id,
		LeadID:       leadID,
		UserID:       operator.ID,
		ActivityType: "call",
		Title:        "Intro call",
		Duration:     ptr(int64(15)),
		ActivityDate: models.NewDate(2024, time.May, 14),
		CreatedAt:    time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC),
		UserName:     operator.FullName(),
	}
}

// ─────────────────────────────────────────────
// listActivities
// ─────────────────────────────────────────────

func TestListActivities(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		ActivityService: &mockActivityService{
			listActivitiesFn: func(_ context.Context, leadID int64) ([]models.Activity, error) {
				if leadID == 404 {
					return nil, store.ErrLeadNotFound
				}
				return []models.Activity{sampleActivity(2, leadID), sampleActivity(1, leadID)}, nil
			},
		},
	})

	t.Run("listed", func(t *testing.T) {
		rec := serve(t, h, http.MethodGet, "/api/leads/3/activities", "", testToken)

		require.Equal(t, http.StatusOK, rec.Code)
		var activities []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activities))
		require.Len(t, activities, 2)
		assert.Equal(t, "2024-05-14", activities[0]["activity_date"])
		assert.Equal(t, "Alice Smith", activities[0]["user_name"])
		assert.Nil(t, activities[0]["notes"])
	})

	t.Run("lead not found", func(t *testing.T) {
		rec := serve(t, h, http.MethodGet, "/api/leads/404/activities", "", testToken)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Lead not found", decodeDetail(t, rec))
	})
}

// ─────────────────────────────────────────────
// addActivities
// ─────────────────────────────────────────────

func TestAddActivities_Single(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		ActivityService: &mockActivityService{
			addActivitiesFn: func(_ context.Context, leadID int64, actor models.User, batch models.Batch[models.ActivityCreate]) ([]models.Activity, error) {
				assert.Equal(t, int64(3), leadID)
				assert.Equal(t, operator.ID, actor.ID)
				assert.False(t, batch.Many)
				require.Len(t, batch.Items, 1)
				assert.Equal(t, models.NewDate(2024, time.May, 14), *batch.Items[0].ActivityDate)
				return []models.Activity{sampleActivity(1, leadID)}, nil
			},
		},
	})

	rec := serve(t, h, http.MethodPost, "/api/leads/3/activities", activityBody, testToken)

	require.Equal(t, http.StatusCreated, rec.Code)
	var activity models.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activity))
	assert.Equal(t, int64(1), activity.ID)
	assert.Equal(t, operator.ID, activity.UserID)
}

func TestAddActivities_Many(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		ActivityService: &mockActivityService{
			addActivitiesFn: func(_ context.Context, leadID int64, _ models.User, batch models.Batch[models.ActivityCreate]) ([]models.Activity, error) {
				assert.True(t, batch.Many)
				return []models.Activity{sampleActivity(1, leadID), sampleActivity(2, leadID)}, nil
			},
		},
	})

	rec := serve(t, h, http.MethodPost, "/api/leads/3/activities", "["+activityBody+","+activityBody+"]", testToken)

	require.Equal(t, http.StatusCreated, rec.Code)
	var activities []models.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activities))
	assert.Len(t, activities, 2)
}

func TestAddActivities_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantDetail any
	}{
		{
			name:       "lead not found",
			body:       activityBody,
			err:        store.ErrLeadNotFound,
			wantStatus: http.StatusNotFound,
			wantDetail: "Lead not found",
		},
		{
			name:       "empty list",
			body:       `[]`,
			err:        service.ErrEmptyBatch,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Empty list provided",
		},
		{
			name:       "bulk insert failure",
			body:       "[" + activityBody + "]",
			err:        fmt.Errorf("%w: %v", service.ErrBulkInsertFailed, "foreign key"),
			wantStatus: http.StatusBadRequest,
			wantDetail: "Bulk insert failed: foreign key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &service.Services{
				ActivityService: &mockActivityService{
					addActivitiesFn: func(context.Context, int64, models.User, models.Batch[models.ActivityCreate]) ([]models.Activity, error) {
						return nil, tt.err
					},
				},
			})

			rec := serve(t, h, http.MethodPost, "/api/leads/3/activities", tt.body, testToken)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, decodeDetail(t, rec))
		})
	}
}

func TestAddActivities_InvalidDate(t *testing.T) {
	h := newTestHandler(t, &service.Services{ActivityService: &mockActivityService{}})

	rec := serve(t, h, http.MethodPost, "/api/leads/3/activities",
		`{"activity_type":"call","title":"Intro call","activity_date":"14/05/2024"}`, testToken)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
