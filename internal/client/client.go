package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode"

	"brainforge/internal/config"
	"brainforge/internal/model"
	"brainforge/pkg/logger"
	"brainforge/pkg/monitoring"
	"brainforge/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client BrainForge 后端的 HTTP 传输层
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func New(cfg config.BackendConfig) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.MaxRPS > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.MaxRPS), burst)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
	}
}

func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL 配置热更新时切换后端地址
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// Call 发送 JSON 请求并返回原始响应体。body 只在非 GET 请求中序列化
func (c *Client) Call(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil && method != http.MethodGet {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL()+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(ctx, req, endpoint)
}

// Upload 以 multipart/form-data 提交文件和生成参数
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader, settings model.CourseSettings) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	for name, value := range settings.FormFields() {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+"/upload", buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(ctx, req, "/upload")
}

func (c *Client) do(ctx context.Context, req *http.Request, endpoint string) ([]byte, error) {
	route := routeLabel(endpoint)
	ctx, span := tracing.StartClientSpan(ctx, req.Method, route)
	defer span.End()
	req = req.WithContext(ctx)
	tracing.InjectHeaders(ctx, propagation.HeaderCarrier(req.Header))

	if err := c.limiter.Wait(ctx); err != nil {
		netErr := &NetworkError{Message: unreachableMessage, Err: err}
		tracing.RecordError(span, netErr)
		return nil, netErr
	}

	logger.Log.Debug("Backend request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		monitoring.ObserveBackendCall(req.Method, route, "network_error", time.Since(start))
		logger.Log.Warn("Backend unreachable",
			zap.String("method", req.Method),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		netErr := &NetworkError{Message: unreachableMessage, Err: err}
		tracing.RecordError(span, netErr)
		return nil, netErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		monitoring.ObserveBackendCall(req.Method, route, "network_error", time.Since(start))
		netErr := &NetworkError{Message: unreachableMessage, Err: err}
		tracing.RecordError(span, netErr)
		return nil, netErr
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		monitoring.ObserveBackendCall(req.Method, route, "http_error", time.Since(start))
		logger.Log.Warn("Backend returned error status",
			zap.String("method", req.Method),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data))
		httpErr := &HTTPError{Status: resp.StatusCode, Body: string(data)}
		tracing.RecordError(span, httpErr)
		return nil, httpErr
	}

	monitoring.ObserveBackendCall(req.Method, route, "ok", time.Since(start))
	logger.Log.Debug("Backend response",
		zap.String("method", req.Method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)))

	return data, nil
}

// routeLabel 把带 id 的路径折叠成模板，避免指标标签无限增长
func routeLabel(endpoint string) string {
	path := endpoint
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if looksLikeID(seg) {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

func looksLikeID(seg string) bool {
	if seg == "" {
		return false
	}
	if len(seg) >= 16 {
		return true
	}
	for _, r := range seg {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
