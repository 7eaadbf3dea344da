package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"brainforge/internal/client"
	"brainforge/internal/config"
	"brainforge/internal/repository"
)

const networksCourse = `{"success":true,"course":{"_id":"c1","content_id":"ct1","course_structure":{"course":{
	"title":"Nets 101","description":"Packets and protocols","modules_count":4,
	"modules":[
		{"module_number":1,"title":"Intro","quiz":{"questions":[
			{"question":"What is a packet?","options":["A) a","B) b","C) c","D) d"],"correct_answer":"B","points":10},
			{"question":"What is TCP?","options":["A) a","B) b","C) c","D) d"],"correct_answer":"a"}
		]}},
		{"module_number":2,"title":"Routing"}
	],
	"flashcards":[{"id":1,"front":"OSI","back":"7 layers"},{"id":2,"front":"TCP","back":"reliable"}]
}}}}`

func newTestAPI(t *testing.T, handler http.Handler) *client.API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return client.NewAPI(client.New(config.BackendConfig{BaseURL: srv.URL + "/api"}))
}

// unreachableAPI 指向无人监听的端口
func unreachableAPI() *client.API {
	return client.NewAPI(client.New(config.BackendConfig{BaseURL: "http://127.0.0.1:1/api"}))
}

func newTestStore(api *client.API) *CourseStore {
	return NewCourseStore(api, config.StoreConfig{MockPrefix: "mock-"})
}

func newTestQuizService(api *client.API, store *CourseStore) *QuizService {
	s := NewQuizService(api, store, config.QuizConfig{TickInterval: time.Hour, SessionTTL: time.Hour})
	s.dispatch = func(f func()) { f() }
	return s
}

func newTestProgressService(api *client.API, store *CourseStore) (*ProgressService, *repository.MemoryStore) {
	kv := repository.NewMemoryStore()
	s := NewProgressService(api, store, repository.NewProgressRepository(kv))
	s.dispatch = func(f func()) { f() }
	return s, kv
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}
