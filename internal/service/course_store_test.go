package service

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"brainforge/internal/mock"
	"brainforge/internal/model"
	"brainforge/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAllFallsBackToDemoCourse(t *testing.T) {
	store := newTestStore(unreachableAPI())

	courses := store.LoadAll(context.Background())

	require.Len(t, courses, 1)
	assert.Equal(t, mock.CourseID, courses[0].ID)
	assert.Equal(t, util.NoticeDemoData, store.Error())
	assert.False(t, store.Loading())
}

func TestLoadAllUsesBackendErrorText(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(w, `{"error":"Database not available"}`)
	}))
	store := newTestStore(api)

	courses := store.LoadAll(context.Background())

	require.Len(t, courses, 1)
	assert.Equal(t, "Database not available - using demo data", store.Error())
}

func TestLoadAllNormalizesList(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recent-courses", r.URL.Path)
		writeJSON(w, `{"success":true,"courses":[
			{"_id":"a","title":"Go","total_modules":3},
			{"_id":"b","course_structure":{"title":"Rust"}}
		]}`)
	}))
	store := newTestStore(api)

	courses := store.LoadAll(context.Background())

	require.Len(t, courses, 2)
	assert.Equal(t, "Go", courses[0].Title)
	assert.Equal(t, 3, courses[0].ModulesCount)
	assert.Equal(t, "Rust", courses[1].Title)
	assert.Empty(t, store.Error())
}

func TestMockPrefixSkipsBackend(t *testing.T) {
	var calls atomic.Int32
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, `{}`)
	}))
	store := newTestStore(api)

	lookup := store.GetByID(context.Background(), "mock-anything")

	assert.True(t, lookup.Mock)
	assert.Equal(t, "mock-anything", lookup.Course.ID)
	assert.NotEmpty(t, lookup.Course.Modules)
	assert.Zero(t, calls.Load())
}

func TestGetByIDFallsBackOnFailure(t *testing.T) {
	store := newTestStore(unreachableAPI())

	lookup := store.GetByID(context.Background(), "c1")

	assert.True(t, lookup.Mock)
	assert.Equal(t, mock.CourseID, lookup.Course.ID)
	assert.Equal(t, util.NoticeDemoData, lookup.Notice)
	_, cached := store.Cached("c1")
	assert.False(t, cached)
}

func TestGetByIDCachesDetail(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/course/c1", r.URL.Path)
		writeJSON(w, networksCourse)
	}))
	store := newTestStore(api)

	lookup := store.GetByID(context.Background(), "c1")

	assert.False(t, lookup.Mock)
	assert.Equal(t, "Nets 101", lookup.Course.Title)
	assert.Equal(t, 4, lookup.Course.ModulesCount)

	cached, ok := store.Cached("c1")
	require.True(t, ok)
	assert.Equal(t, "Nets 101", cached.Title)
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	var calls atomic.Int32
	arrived := make(chan struct{})
	release := make(chan struct{})

	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(arrived)
			<-release
			writeJSON(w, `{"success":true,"courses":[{"_id":"old","title":"Old"}]}`)
			return
		}
		writeJSON(w, `{"success":true,"courses":[{"_id":"new","title":"New"}]}`)
	}))
	store := newTestStore(api)

	done := make(chan struct{})
	go func() {
		store.LoadAll(context.Background())
		close(done)
	}()

	select {
	case <-arrived:
	case <-time.After(2 * time.Second):
		t.Fatal("first load never reached the backend")
	}
	assert.True(t, store.Loading())

	store.Refresh(context.Background())
	close(release)
	<-done

	courses := store.Courses()
	require.Len(t, courses, 1)
	assert.Equal(t, "new", courses[0].ID)
}

func TestUpsertAndSearch(t *testing.T) {
	store := newTestStore(unreachableAPI())
	store.LoadAll(context.Background())

	store.Upsert(model.Course{ID: "c9", Title: "Distributed Systems", Description: "Consensus and replication"})

	courses := store.Courses()
	require.Len(t, courses, 2)
	assert.Equal(t, "c9", courses[0].ID)

	found := store.Search("distsys")
	require.Len(t, found, 1)
	assert.Equal(t, "c9", found[0].ID)

	assert.Len(t, store.Search(""), 2)
	assert.Empty(t, store.Search("zzzz"))

	summary, ok := store.Summary("c9")
	require.True(t, ok)
	assert.Equal(t, "Distributed Systems", summary.Title)
}
