package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"brainforge/internal/mock"
	"brainforge/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkModuleComputesPercentage(t *testing.T) {
	var mu sync.Mutex
	var reports []model.ProgressReport
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/course/c1":
			writeJSON(w, networksCourse)
		case "/api/analytics/progress":
			var rep model.ProgressReport
			json.NewDecoder(r.Body).Decode(&rep)
			mu.Lock()
			reports = append(reports, rep)
			mu.Unlock()
			writeJSON(w, `{"success":true}`)
		}
	}))
	store := newTestStore(api)
	store.GetByID(context.Background(), "c1")
	svc, _ := newTestProgressService(api, store)
	ctx := context.Background()

	rec, err := svc.MarkModule(ctx, "c1", 2, true)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.CompletedModules)
	assert.Equal(t, 4, rec.TotalModules)
	assert.Equal(t, 25, rec.PercentComplete)
	assert.Equal(t, 100, rec.Modules[2])

	rec, err = svc.MarkModule(ctx, "c1", 2, false)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.CompletedModules)
	assert.Equal(t, 0, rec.Modules[2])

	rec, err = svc.ResetProgress(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, rec.Modules)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, reports, 3)
	assert.Equal(t, model.ProgressTypeModuleCompleted, reports[0].ProgressType)
	assert.Equal(t, 2, reports[0].ModuleNumber)
	assert.Equal(t, 100, reports[0].Score)
	assert.Equal(t, model.ProgressTypeModuleReset, reports[1].ProgressType)
	assert.Equal(t, model.ProgressTypeCourseReset, reports[2].ProgressType)
}

func TestProgressSurvivesAcrossReads(t *testing.T) {
	store := newTestStore(unreachableAPI())
	svc, kv := newTestProgressService(unreachableAPI(), store)
	ctx := context.Background()

	_, err := svc.MarkModule(ctx, mock.CourseID, 1, true)
	require.NoError(t, err)

	rec, err := svc.GetProgress(ctx, mock.CourseID)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.TotalModules)
	assert.Equal(t, 50, rec.PercentComplete)
	assert.Equal(t, 1, kv.Len())
}

func TestProgressUnknownCourseHasNoTotal(t *testing.T) {
	svc, _ := newTestProgressService(unreachableAPI(), newTestStore(unreachableAPI()))

	rec, err := svc.MarkModule(context.Background(), "unknown", 1, true)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.TotalModules)
	assert.Equal(t, 0, rec.PercentComplete)

	_, err = svc.MarkModule(context.Background(), "unknown", 0, true)
	assert.Error(t, err)
}
