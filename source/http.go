package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/crowdpulse/pulsewatch/model"
)

var ErrNoData = errors.New("no data available")

const defaultTimeout = 5 * time.Second

// HTTP 从监控后端读取摄像头指标与阈值
type HTTP struct {
	baseURL string
	client  *http.Client
}

type HTTPOption func(*HTTP)

// WithHTTPClient 使用自定义的 http.Client
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(h *HTTP) {
		h.client = client
	}
}

// WithTimeout 设置单次请求的超时时间
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(h *HTTP) {
		h.client.Timeout = timeout
	}
}

// NewHTTP creates a client for the monitor backend rooted at baseURL,
// e.g. http://127.0.0.1:5000.
func NewHTTP(baseURL string, options ...HTTPOption) *HTTP {
	h := &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, option := range options {
		option(h)
	}
	return h
}

// cameraData 后端 /camera_data 返回的单条数据
type cameraData struct {
	Timestamp json.RawMessage `json:"timestamp"`
	Value     json.RawMessage `json:"value"`
	Message   string          `json:"message,omitempty"`
}

func (d cameraData) sample() (model.Sample, error) {
	label := strings.TrimSpace(string(d.Timestamp))
	if unquoted, err := strconv.Unquote(label); err == nil {
		label = unquoted
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(string(d.Value)), 64)
	if err != nil {
		return model.Sample{}, fmt.Errorf("%w: %s", model.ErrInvalidSample, string(d.Value))
	}

	sample := model.Sample{Time: label, Value: value}
	if !sample.Finite() {
		return model.Sample{}, fmt.Errorf("%w: %s", model.ErrInvalidSample, string(d.Value))
	}
	return sample, nil
}

// History 返回后端保存的最近一批采样，按时间先后排列
func (h *HTTP) History(ctx context.Context, camera string) ([]model.Sample, error) {
	var data []cameraData
	if err := h.do(ctx, http.MethodGet, "/camera_data/"+url.PathEscape(camera), nil, &data); err != nil {
		return nil, err
	}

	samples := make([]model.Sample, 0, len(data))
	for _, item := range data {
		sample, err := item.sample()
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// LatestSample 返回最新的一条采样
func (h *HTTP) LatestSample(ctx context.Context, camera string) (model.Sample, error) {
	var data []cameraData
	if err := h.do(ctx, http.MethodGet, "/camera_data/"+url.PathEscape(camera), nil, &data); err != nil {
		return model.Sample{}, err
	}

	latest, ok := lo.Last(data)
	if !ok {
		return model.Sample{}, fmt.Errorf("camera %s: %w", camera, ErrNoData)
	}
	return latest.sample()
}

type thresholdPayload struct {
	EngagementThreshold *float64 `json:"engagement_threshold,omitempty"`
	Threshold           *float64 `json:"threshold,omitempty"`
}

// Threshold 读取后端保存的阈值（百分比）
func (h *HTTP) Threshold(ctx context.Context, camera string) (float64, error) {
	var payload thresholdPayload
	if err := h.do(ctx, http.MethodGet, "/engagement_threshold/"+url.PathEscape(camera), nil, &payload); err != nil {
		return 0, err
	}
	if payload.EngagementThreshold == nil {
		return 0, fmt.Errorf("camera %s: %w", camera, ErrNoData)
	}
	return *payload.EngagementThreshold, nil
}

// SaveThreshold 将阈值写回后端
func (h *HTTP) SaveThreshold(ctx context.Context, camera string, value float64) error {
	return h.do(ctx, http.MethodPost, "/engagement_threshold/"+url.PathEscape(camera),
		thresholdPayload{Threshold: &value}, nil)
}

func (h *HTTP) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		content, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(content)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: server error: %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
