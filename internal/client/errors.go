package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const unreachableMessage = "backend unreachable"

// NetworkError 传输层失败（DNS、连接被拒、离线）
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError 后端返回非 2xx，Body 为原始响应文本
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Status, strings.TrimSpace(e.Body))
}

// Message 优先取响应体中的 error 字段
func (e *HTTPError) Message() string {
	if gjson.Valid(e.Body) {
		if msg := gjson.Get(e.Body, "error").String(); msg != "" {
			return msg
		}
		if msg := gjson.Get(e.Body, "message").String(); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}

// Describe 把传输错误转成可直接展示的文本
func Describe(err error) string {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Message
	}
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Message()
	}
	return err.Error()
}
