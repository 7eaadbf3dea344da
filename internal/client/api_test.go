package client

import (
	"context"
	"net/http"
	"testing"

	"brainforge/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestResultRequiresPayloadSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/recent-courses":
			w.Write([]byte(`{"success":true,"courses":[]}`))
		case "/api/course/bad":
			w.Write([]byte(`{"success":false,"error":"Course not found"}`))
		case "/api/course-settings/options":
			w.Write([]byte(`{"difficulty_levels":[]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"boom"}`))
		}
	})
	api := NewAPI(c)
	ctx := context.Background()

	res := api.RecentCourses(ctx)
	assert.True(t, res.Success)
	assert.Equal(t, KindNone, res.Kind)

	res = api.Course(ctx, "bad")
	assert.False(t, res.Success)
	assert.Equal(t, KindBackend, res.Kind)
	assert.Equal(t, "Course not found", res.Error)

	// 没有 success 字段时按成功处理
	res = api.SettingsOptions(ctx)
	assert.True(t, res.Success)

	res = api.Health(ctx)
	assert.False(t, res.Success)
	assert.Equal(t, KindHTTP, res.Kind)
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, "boom", res.Error)
}

func TestResultSwallowsNetworkFailure(t *testing.T) {
	c := New(configForUnreachable())
	res := NewAPI(c).SaveProgress(context.Background(), model.ProgressReport{CourseID: "c1", ModuleNumber: 1})

	assert.False(t, res.Success)
	assert.Equal(t, KindNetwork, res.Kind)
	assert.Equal(t, "backend unreachable", res.Error)
}

func TestModuleQuizPath(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true}`))
	})

	res := NewAPI(c).ModuleQuiz(context.Background(), "c1", 3)
	assert.True(t, res.Success)
	assert.Equal(t, "/api/course/c1/module/3/quiz", gotPath)
}
