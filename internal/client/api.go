package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"brainforge/internal/model"

	"github.com/tidwall/gjson"
)

type ErrorKind string

const (
	KindNone    ErrorKind = ""
	KindNetwork ErrorKind = "network"
	KindHTTP    ErrorKind = "http"
	KindBackend ErrorKind = "backend"
	KindClient  ErrorKind = "client"
)

// Result 统一的调用结果，传输错误在这里被转换成数据
type Result struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Kind    ErrorKind       `json:"kind,omitempty"`
	Status  int             `json:"status,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// API 后端各接口的类型化封装
type API struct {
	client *Client
}

func NewAPI(c *Client) *API {
	return &API{client: c}
}

func (a *API) Client() *Client {
	return a.client
}

func toResult(data []byte, err error) Result {
	if err != nil {
		var ne *NetworkError
		if errors.As(err, &ne) {
			return Result{Error: ne.Message, Kind: KindNetwork}
		}
		var he *HTTPError
		if errors.As(err, &he) {
			res := Result{Error: he.Message(), Kind: KindHTTP, Status: he.Status}
			if gjson.Valid(he.Body) {
				res.Data = json.RawMessage(he.Body)
			}
			return res
		}
		return Result{Error: err.Error(), Kind: KindClient}
	}

	if !gjson.ValidBytes(data) {
		return Result{Error: "invalid JSON response from backend", Kind: KindBackend}
	}

	// 成功由状态码和负载中的 success 字段共同决定
	if flag := gjson.GetBytes(data, "success"); flag.Exists() && !flag.Bool() {
		msg := gjson.GetBytes(data, "error").String()
		if msg == "" {
			msg = gjson.GetBytes(data, "message").String()
		}
		if msg == "" {
			msg = "backend reported failure"
		}
		return Result{Error: msg, Kind: KindBackend, Data: data}
	}

	return Result{Success: true, Data: data}
}

func (a *API) get(ctx context.Context, endpoint string) Result {
	return toResult(a.client.Call(ctx, http.MethodGet, endpoint, nil))
}

func (a *API) post(ctx context.Context, endpoint string, body any) Result {
	return toResult(a.client.Call(ctx, http.MethodPost, endpoint, body))
}

func (a *API) RecentCourses(ctx context.Context) Result {
	return a.get(ctx, "/recent-courses")
}

func (a *API) Course(ctx context.Context, id string) Result {
	return a.get(ctx, "/course/"+url.PathEscape(id))
}

func (a *API) CourseByContent(ctx context.Context, contentID string) Result {
	return a.get(ctx, "/course/content/"+url.PathEscape(contentID))
}

func (a *API) ModuleQuiz(ctx context.Context, courseID string, moduleNumber int) Result {
	return a.get(ctx, fmt.Sprintf("/course/%s/module/%d/quiz", url.PathEscape(courseID), moduleNumber))
}

func (a *API) CourseQuiz(ctx context.Context, courseID string) Result {
	return a.get(ctx, fmt.Sprintf("/course/%s/quiz", url.PathEscape(courseID)))
}

func (a *API) Upload(ctx context.Context, filename string, file io.Reader, settings model.CourseSettings) Result {
	return toResult(a.client.Upload(ctx, filename, file, settings))
}

func (a *API) GenerateCourse(ctx context.Context, req model.GenerateCourseRequest) Result {
	return a.post(ctx, "/generate-course", req)
}

func (a *API) SettingsOptions(ctx context.Context) Result {
	return a.get(ctx, "/course-settings/options")
}

func (a *API) SaveQuizResult(ctx context.Context, report model.QuizResultReport) Result {
	return a.post(ctx, "/analytics/quiz-result", report)
}

func (a *API) SaveProgress(ctx context.Context, report model.ProgressReport) Result {
	return a.post(ctx, "/analytics/progress", report)
}

func (a *API) Health(ctx context.Context) Result {
	return a.get(ctx, "/health")
}

func (a *API) Debug(ctx context.Context) Result {
	return a.get(ctx, "/debug")
}

func (a *API) DebugDB(ctx context.Context) Result {
	return a.get(ctx, "/debug/db")
}

func (a *API) Content(ctx context.Context, contentID string) Result {
	return a.get(ctx, "/content/"+url.PathEscape(contentID))
}
