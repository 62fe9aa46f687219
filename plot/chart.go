package plot

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/samber/lo"

	"github.com/crowdpulse/pulsewatch/model"
	"github.com/crowdpulse/pulsewatch/service"
	"github.com/crowdpulse/pulsewatch/tools/log"
	"github.com/crowdpulse/pulsewatch/tools/metrics"
)

//go:embed assets
var staticFiles embed.FS

const defaultPort = 8080

// Indicator 叠加在图表上的指标，由真实采样计算
type Indicator interface {
	Name() string
	Overlay() bool
	Warmup() int
	Load(samples []model.Sample)
	Metrics() []IndicatorMetric
}

// IndicatorMetric 指标的一条曲线，Labels 与 Values 一一对应
type IndicatorMetric struct {
	Name   string                `json:"name"`
	Color  string                `json:"color"`
	Style  string                `json:"style"`
	Values model.Series[float64] `json:"values"`
	Labels []string              `json:"labels"`
}

// Chart keeps the latest artifact and serves it as a live page, JSON and PNG.
type Chart struct {
	sync.Mutex
	port       int
	artifact   model.Artifact
	indicators []Indicator
	controller service.ThresholdSetter
	switcher   service.CameraSwitcher
	metrics    *metrics.Metrics
	script     string
	page       *template.Template
}

type Option func(*Chart)

// WithPort 设置 HTTP 端口
func WithPort(port int) Option {
	return func(chart *Chart) {
		chart.port = port
	}
}

// WithCustomIndicators 添加叠加指标
func WithCustomIndicators(indicators ...Indicator) Option {
	return func(chart *Chart) {
		chart.indicators = append(chart.indicators, indicators...)
	}
}

// WithThresholdSetter 启用 POST /threshold
func WithThresholdSetter(controller service.ThresholdSetter) Option {
	return func(chart *Chart) {
		chart.controller = controller
	}
}

// WithCameraSwitcher 启用 POST /camera
func WithCameraSwitcher(switcher service.CameraSwitcher) Option {
	return func(chart *Chart) {
		chart.switcher = switcher
	}
}

// WithMetrics 在 /metrics 暴露 prometheus 指标
func WithMetrics(metrics *metrics.Metrics) Option {
	return func(chart *Chart) {
		chart.metrics = metrics
	}
}

// NewChart minifies the embedded script and parses the page template.
func NewChart(options ...Option) (*Chart, error) {
	chart := &Chart{port: defaultPort}
	for _, option := range options {
		option(chart)
	}

	source, err := staticFiles.ReadFile("assets/chart.js")
	if err != nil {
		return nil, err
	}

	result := api.Transform(string(source), api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            api.ES2017,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
	})
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("chart.js: %s", result.Errors[0].Text)
	}
	chart.script = string(result.Code)

	chart.page, err = template.ParseFS(staticFiles, "assets/chart.html")
	if err != nil {
		return nil, err
	}

	return chart, nil
}

// OnArtifact 保存最新的快照
func (c *Chart) OnArtifact(artifact model.Artifact) {
	c.Lock()
	defer c.Unlock()
	c.artifact = artifact
}

// Artifact returns the last artifact received.
func (c *Chart) Artifact() model.Artifact {
	c.Lock()
	defer c.Unlock()
	return c.artifact
}

type chartData struct {
	model.Artifact
	Icon       string            `json:"icon,omitempty"`
	Mood       string            `json:"mood,omitempty"`
	Lower      float64           `json:"lower"`
	Upper      float64           `json:"upper"`
	Indicators []IndicatorMetric `json:"indicators"`
}

// overlays 根据当前快照中的真实采样计算叠加指标
func (c *Chart) overlays(artifact model.Artifact) []IndicatorMetric {
	samples := lo.FilterMap(artifact.Points, func(point model.RenderPoint, _ int) (model.Sample, bool) {
		return model.Sample{Time: point.Label, Value: point.Value}, !point.Synthetic
	})

	result := make([]IndicatorMetric, 0)
	for _, indicator := range c.indicators {
		if len(samples) < indicator.Warmup() {
			continue
		}
		indicator.Load(samples)
		result = append(result, indicator.Metrics()...)
	}
	return result
}

func (c *Chart) data() chartData {
	c.Lock()
	defer c.Unlock()

	data := chartData{
		Artifact:   c.artifact,
		Lower:      c.artifact.Lower(),
		Upper:      c.artifact.Upper(),
		Indicators: c.overlays(c.artifact),
	}
	if c.artifact.Event != nil {
		data.Icon = c.artifact.Event.Icon()
		data.Mood = c.artifact.Event.Mood()
	}
	return data
}

func (c *Chart) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	artifact := c.Artifact()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := c.page.Execute(w, map[string]any{
		"camera":    artifact.Camera,
		"threshold": artifact.Threshold,
	})
	if err != nil {
		log.Error(err)
	}
}

func (c *Chart) handleScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	_, _ = fmt.Fprint(w, c.script)
}

func (c *Chart) handleData(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(c.data()); err != nil {
		log.Error(err)
	}
}

func (c *Chart) handlePNG(w http.ResponseWriter, _ *http.Request) {
	data := c.data()
	w.Header().Set("Content-Type", "image/png")
	if err := RenderPNG(w, data.Artifact, data.Indicators); err != nil {
		log.Error(err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type thresholdRequest struct {
	Threshold *float64 `json:"threshold"`
}

type thresholdResponse struct {
	Threshold float64 `json:"threshold"`
	Previous  float64 `json:"previous"`
}

func (c *Chart) handleThreshold(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if c.controller == nil {
		http.Error(w, "threshold is read only", http.StatusForbidden)
		return
	}

	var request thresholdRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Threshold == nil {
		http.Error(w, `expected {"threshold": <number>}`, http.StatusBadRequest)
		return
	}

	previous, err := c.controller.SetThreshold(*request.Threshold)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrValidation) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(thresholdResponse{Threshold: *request.Threshold, Previous: previous})
	if err != nil {
		log.Error(err)
	}
}

type cameraRequest struct {
	Camera string `json:"camera"`
}

type cameraResponse struct {
	Camera   string `json:"camera"`
	Previous string `json:"previous"`
}

func (c *Chart) handleCamera(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if c.switcher == nil {
		http.Error(w, "camera is read only", http.StatusForbidden)
		return
	}

	var request cameraRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `expected {"camera": <id>}`, http.StatusBadRequest)
		return
	}

	previous := c.switcher.Camera()
	if err := c.switcher.SwitchCamera(r.Context(), request.Camera); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrValidation) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(cameraResponse{Camera: request.Camera, Previous: previous})
	if err != nil {
		log.Error(err)
	}
}

// Handler returns the routes of the chart page.
func (c *Chart) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", c.handleIndex)
	mux.HandleFunc("/assets/chart.js", c.handleScript)
	mux.HandleFunc("/data", c.handleData)
	mux.HandleFunc("/chart.png", c.handlePNG)
	mux.HandleFunc("/threshold", c.handleThreshold)
	mux.HandleFunc("/camera", c.handleCamera)
	if c.metrics != nil {
		mux.Handle("/metrics", c.metrics.Handler())
	}
	return mux
}

// Start 启动 HTTP 服务，阻塞直到服务出错
func (c *Chart) Start() error {
	log.Infof("Chart available at http://localhost:%d", c.port)
	return http.ListenAndServe(fmt.Sprintf(":%d", c.port), c.Handler())
}
