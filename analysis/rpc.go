package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RPC 是通过 HTTP 调用外部分词服务的 Analyzer 实现。
//
// 请求格式（JSON）：
//
//	{"text": "我爱我的中国", "min_length": 0}
//
// 响应格式（JSON）：
//
//	{"words": ["我", "爱", ...]}
//
// 网络错误、非 200 响应与响应解析失败都返回 ANALYZER_UNAVAILABLE，核心内部不做重试。
type RPC struct {
	Endpoint string // 例如 "http://localhost:8080/analyze"
	Timeout  time.Duration
	Client   *http.Client
}

func NewRPC(endpoint string, timeout time.Duration) *RPC {
	if timeout == 0 {
		timeout = 3 * time.Second
	}
	return &RPC{
		Endpoint: endpoint,
		Timeout:  timeout,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (a *RPC) ExtractWords(ctx context.Context, text string, minLength int) ([]string, error) {
	client := a.Client
	if client == nil {
		client = &http.Client{Timeout: a.Timeout}
	}

	jsonData, err := json.Marshal(map[string]any{
		"text":       text,
		"min_length": minLength,
	})
	if err != nil {
		return nil, Unavailable(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, Unavailable(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, Unavailable(fmt.Errorf("rpc call: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, Unavailable(fmt.Errorf("rpc error: status=%d, read body failed: %w", resp.StatusCode, err))
		}
		return nil, Unavailable(fmt.Errorf("rpc error: status=%d, body=%s", resp.StatusCode, string(body)))
	}

	var result struct {
		Words []string `json:"words"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, Unavailable(fmt.Errorf("decode response: %w", err))
	}
	// 服务端可能忽略 min_length，本地再过滤一次保证契约。
	return filterWords(result.Words, minLength), nil
}

var _ Analyzer = (*RPC)(nil)
