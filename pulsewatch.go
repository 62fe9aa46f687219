package pulsewatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/crowdpulse/pulsewatch/indicator"
	"github.com/crowdpulse/pulsewatch/model"
	"github.com/crowdpulse/pulsewatch/notification"
	"github.com/crowdpulse/pulsewatch/service"
	"github.com/crowdpulse/pulsewatch/source"
	"github.com/crowdpulse/pulsewatch/storage"
	"github.com/crowdpulse/pulsewatch/tools/log"
	"github.com/crowdpulse/pulsewatch/tools/metrics"
)

const (
	persistTimeout = 5 * time.Second
	// summaryLimit 汇总只统计最近的这么多个采样值
	summaryLimit = 10000
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// ArtifactSubscriber 接收每次处理后的渲染快照
type ArtifactSubscriber interface {
	OnArtifact(model.Artifact)
}

// EventSubscriber 接收事件分类的变化。
// OnEvent runs after the trigger has released the monitor, in event order, so it
// may call read-only methods such as Status or Artifact. It must not call a
// trigger (OnSample, SetThreshold, Reset, SwitchCamera, LoadHistory).
type EventSubscriber interface {
	OnEvent(model.Event)
}

// Monitor drives the thresholded segmentation pipeline for one camera.
// Triggers (OnSample, SetThreshold, Reset, LoadHistory) are serialized: each one
// runs to completion, artifact subscribers included, before the next is accepted.
// Event notifications are dispatched once the trigger has released the lock.
type Monitor struct {
	mu       sync.Mutex
	notifyMu sync.Mutex // 保证事件通知按发生顺序派发

	settings  model.Settings
	camera    string
	window    *model.Window     // 滑动窗口，只由 Monitor 修改
	threshold *model.Threshold  // 当前阈值
	lastEvent *model.EventCategory

	storage    storage.Storage        // 本地存储：阈值与事件记录
	thresholds service.ThresholdStore // 远端阈值存储（监控后端）
	notifier   service.Notifier       // 通知器
	telegram   service.Telegram       // 电报
	metrics    *metrics.Metrics       // prometheus 指标
	feeder     service.Feeder         // Run 期间的数据源，切换摄像头时读取历史

	artifactSubscribers []ArtifactSubscriber
	eventSubscribers    []EventSubscriber

	pending []func() // 等待释放锁后派发的通知

	values       []float64 // 最近接收的采样值，用于汇总
	summaryLimit int
	eventCounts  map[model.EventCategory]int
}

type Option func(*Monitor)

// NewMonitor validates the settings and builds a monitor with an empty window.
// Configuration errors are returned before any state is created.
func NewMonitor(settings model.Settings, options ...Option) (*Monitor, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	window, err := model.NewWindow(settings.WindowCapacity)
	if err != nil {
		return nil, err
	}

	threshold, err := model.NewThreshold(settings.InitialThreshold)
	if err != nil {
		return nil, err
	}

	monitor := &Monitor{
		settings:    settings,
		camera:      settings.Camera,
		window:      window,
		threshold:    threshold,
		summaryLimit: summaryLimit,
		eventCounts:  make(map[model.EventCategory]int),
	}

	for _, option := range options {
		option(monitor)
	}

	if monitor.storage == nil {
		monitor.storage, err = storage.FromMemory()
		if err != nil {
			return nil, err
		}
	}

	if settings.Telegram.Enabled {
		monitor.telegram, err = notification.NewTelegram(monitor, settings)
		if err != nil {
			return nil, err
		}
		// register telegram as notifier
		WithNotifier(monitor.telegram)(monitor)
	}

	return monitor, nil
}

// WithStorage 设置存储，默认使用内存存储
func WithStorage(storage storage.Storage) Option {
	return func(m *Monitor) {
		m.storage = storage
	}
}

// WithThresholdStore 从监控后端读取初始阈值，并在阈值变化时写回
func WithThresholdStore(store service.ThresholdStore) Option {
	return func(m *Monitor) {
		m.thresholds = store
	}
}

// WithLogLevel 设置日志级别。例如: log.DebugLevel、log.InfoLevel、log.WarnLevel
func WithLogLevel(level log.Level) Option {
	return func(_ *Monitor) {
		log.SetLevel(level)
	}
}

// WithNotifier 注册一个通知器，事件分类变化和错误都会发送给它
func WithNotifier(notifier service.Notifier) Option {
	return func(m *Monitor) {
		m.notifier = notifier
	}
}

// WithMetrics 将处理结果导出到 prometheus 指标
func WithMetrics(metrics *metrics.Metrics) Option {
	return func(m *Monitor) {
		m.metrics = metrics
	}
}

// WithArtifactSubscription 订阅渲染快照（例如图表）
func WithArtifactSubscription(subscriber ArtifactSubscriber) Option {
	return func(m *Monitor) {
		m.SubscribeArtifact(subscriber)
	}
}

// WithEventSubscription 订阅事件分类变化
func WithEventSubscription(subscriber EventSubscriber) Option {
	return func(m *Monitor) {
		m.SubscribeEvent(subscriber)
	}
}

func (m *Monitor) SubscribeArtifact(subscribers ...ArtifactSubscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifactSubscribers = append(m.artifactSubscribers, subscribers...)
}

func (m *Monitor) SubscribeEvent(subscribers ...EventSubscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventSubscribers = append(m.eventSubscribers, subscribers...)
}

// OnSample 接收一条新采样。非有限值会被拒绝；标签与窗口尾部相同的采样被忽略且不会发出快照。
func (m *Monitor) OnSample(sample model.Sample) error {
	m.mu.Lock()
	defer m.unlock()
	return m.push(sample)
}

// onFetched 轮询得到的采样。切换摄像头之前发出的请求，其结果被丢弃。
func (m *Monitor) onFetched(camera string, sample model.Sample) error {
	m.mu.Lock()
	defer m.unlock()

	if camera != m.camera {
		log.Debugf("[MONITOR] sample %q of %s dropped, now watching %s", sample.Time, camera, m.camera)
		return nil
	}
	return m.push(sample)
}

// push 调用方必须持有锁
func (m *Monitor) push(sample model.Sample) error {
	if !sample.Finite() {
		if m.metrics != nil {
			m.metrics.SamplesRejected.Add(1)
		}
		return fmt.Errorf("sample %q: %w", sample.Time, model.ErrInvalidSample)
	}

	if last, ok := m.window.Last(); ok && last.Time == sample.Time {
		if m.metrics != nil {
			m.metrics.SamplesDuplicated.Add(1)
		}
		log.Debugf("[MONITOR] %s: duplicate sample %q ignored", m.camera, sample.Time)
		return nil
	}

	m.window.Push(sample)
	m.record(sample.Value)
	if m.metrics != nil {
		m.metrics.SamplesAccepted.Add(1)
	}

	m.emit(m.process())
	return nil
}

// SetThreshold replaces the threshold and re-renders the current window.
// It returns the previous threshold. Invalid values leave every piece of
// state untouched and nothing is emitted.
func (m *Monitor) SetThreshold(value float64) (float64, error) {
	m.mu.Lock()
	previous, err := m.threshold.Set(value)
	if err != nil {
		if m.metrics != nil {
			m.metrics.ThresholdRejected.Add(1)
		}
		m.mu.Unlock()
		return previous, err
	}

	if m.metrics != nil {
		m.metrics.ThresholdChanges.Add(1)
	}
	camera := m.camera
	m.emit(m.process())
	m.unlock()

	log.Infof("[MONITOR] %s: threshold %v -> %v", camera, previous, value)
	m.persistThreshold(camera, value)
	return previous, nil
}

// Reset 切换到另一个数据源：清空窗口并采用新的阈值。阈值无效时状态不变。
func (m *Monitor) Reset(camera string, threshold float64) error {
	if camera == "" {
		return model.ErrInvalidCamera
	}

	m.mu.Lock()
	defer m.unlock()

	if _, err := m.threshold.Set(threshold); err != nil {
		return err
	}
	m.camera = camera
	m.window.Reset()
	m.lastEvent = nil
	m.emit(m.process())
	return nil
}

// SwitchCamera points the monitor at another camera. The window is cleared, the
// camera's stored threshold is adopted (the current one is kept when nothing is
// stored) and, while Run is active, the camera's history is loaded. The poller
// fetches the new camera from its next request on.
func (m *Monitor) SwitchCamera(ctx context.Context, camera string) error {
	if camera == "" {
		return model.ErrInvalidCamera
	}

	threshold, ok := m.storedThreshold(ctx, camera)
	if !ok {
		threshold = m.Threshold()
	}
	if err := m.Reset(camera, threshold); err != nil {
		return err
	}
	log.Infof("[MONITOR] switched to %s, threshold %v", camera, threshold)

	m.mu.Lock()
	feeder := m.feeder
	m.mu.Unlock()
	if feeder == nil {
		return nil
	}

	history, err := feeder.History(ctx, camera)
	if err != nil {
		log.Warnf("[MONITOR] %s: history unavailable: %v", camera, err)
		return nil
	}
	m.loadHistoryFor(camera, history)
	return nil
}

// LoadHistory 用后端返回的历史数据替换窗口（只保留最近的容量个），跳过非有限值
func (m *Monitor) LoadHistory(samples []model.Sample) {
	m.mu.Lock()
	defer m.unlock()
	m.loadHistory(samples)
}

// loadHistoryFor 只有 camera 仍是当前摄像头时才加载
func (m *Monitor) loadHistoryFor(camera string, samples []model.Sample) {
	m.mu.Lock()
	defer m.unlock()

	if camera != m.camera {
		log.Debugf("[MONITOR] history of %s dropped, now watching %s", camera, m.camera)
		return
	}
	m.loadHistory(samples)
}

// loadHistory 调用方必须持有锁
func (m *Monitor) loadHistory(samples []model.Sample) {
	valid := make([]model.Sample, 0, len(samples))
	for _, sample := range samples {
		if sample.Finite() {
			valid = append(valid, sample)
		}
	}

	m.window.Load(valid)
	m.record(m.window.Values()...)
	m.emit(m.process())
}

// record 保留最近 summaryLimit 个值，累积到两倍时整理一次
func (m *Monitor) record(values ...float64) {
	m.values = append(m.values, values...)
	if len(m.values) > 2*m.summaryLimit {
		m.values = append([]float64(nil), m.values[len(m.values)-m.summaryLimit:]...)
	}
}

// Artifact recomputes the snapshot of the current window without mutating anything.
func (m *Monitor) Artifact() model.Artifact {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.process()
}

// Threshold 返回当前阈值
func (m *Monitor) Threshold() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.threshold.Value()
}

// Camera 返回当前摄像头
func (m *Monitor) Camera() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.camera
}

// Samples 返回窗口内容的副本
func (m *Monitor) Samples() []model.Sample {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.window.Samples()
}

// Events 返回存储中记录的事件
func (m *Monitor) Events(filters ...storage.EventFilter) ([]*model.Event, error) {
	return m.storage.Events(filters...)
}

// Notify 通过已注册的通知器发送消息，没有通知器时只写日志
func (m *Monitor) Notify(message string) {
	log.Info(message)
	if m.notifier != nil {
		m.notifier.Notify(message)
	}
}

// Status 当前状态的一行描述，用于电报的 /status 命令
func (m *Monitor) Status() string {
	artifact := m.Artifact()
	if artifact.Event == nil {
		return fmt.Sprintf("[%s] no samples yet, threshold %.0f", artifact.Camera, artifact.Threshold)
	}
	last, _ := artifact.Last()
	return fmt.Sprintf("[%s] %s: last %.1f at %s, average %.1f, threshold %.0f±%.0f",
		artifact.Camera, artifact.Event.Mood(), last.Value, last.Label,
		artifact.Average, artifact.Threshold, artifact.Band)
}

// process 运行分段、着色与事件分类，调用方必须持有锁
func (m *Monitor) process() model.Artifact {
	samples := m.window.Samples()
	values := m.window.Values()
	threshold := m.threshold.Value()
	points := indicator.Segment(samples, threshold)

	artifact := model.Artifact{
		Camera:     m.camera,
		Threshold:  threshold,
		Band:       m.settings.Band,
		Points:     points,
		EdgeColors: indicator.EdgeColors(points, threshold),
		Average:    model.Mean(values),
		Samples:    len(samples),
		Time:       time.Now(),
	}
	if category, ok := indicator.Classify(values, threshold, m.settings.Band); ok {
		artifact.Event = &category
	}
	return artifact
}

// emit 将快照发送给快照订阅者，事件通知留到 unlock 时派发。调用方必须持有锁。
func (m *Monitor) emit(artifact model.Artifact) {
	if m.metrics != nil {
		m.metrics.ObserveArtifact(artifact)
	}

	for _, subscriber := range m.artifactSubscribers {
		subscriber.OnArtifact(artifact)
	}

	if artifact.Event == nil || (m.lastEvent != nil && *m.lastEvent == *artifact.Event) {
		return
	}

	category := *artifact.Event
	m.lastEvent = &category
	m.eventCounts[category]++

	event := model.Event{
		Camera:    artifact.Camera,
		Category:  category,
		Average:   artifact.Average,
		Threshold: artifact.Threshold,
		Band:      artifact.Band,
		CreatedAt: artifact.Time,
	}
	if err := m.storage.CreateEvent(&event); err != nil {
		log.Errorf("[MONITOR] %s: saving event: %v", m.camera, err)
		m.pending = append(m.pending, func() { m.reportError(err) })
	}

	log.Infof("[EVENT] %s", event)
	subscribers := append([]EventSubscriber(nil), m.eventSubscribers...)
	m.pending = append(m.pending, func() {
		if m.notifier != nil {
			m.notifier.OnEvent(event)
		}
		for _, subscriber := range subscribers {
			subscriber.OnEvent(event)
		}
	})
}

// unlock releases the lock taken by a trigger and then dispatches the
// notifications it queued. notifyMu is taken before mu is released so that
// concurrent triggers notify in the order they ran.
func (m *Monitor) unlock() {
	pending := m.pending
	m.pending = nil

	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()
	m.mu.Unlock()

	for _, notify := range pending {
		notify()
	}
}

func (m *Monitor) persistThreshold(camera string, value float64) {
	if err := m.storage.SaveThreshold(camera, value); err != nil {
		log.Errorf("[MONITOR] %s: saving threshold: %v", camera, err)
		m.reportError(err)
	}

	if m.thresholds == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := m.thresholds.SaveThreshold(ctx, camera, value); err != nil {
		log.Errorf("[MONITOR] %s: updating backend threshold: %v", camera, err)
		m.reportError(err)
	}
}

func (m *Monitor) reportError(err error) {
	if m.notifier != nil {
		m.notifier.OnError(err)
	}
}

func (m *Monitor) onPollError(err error) {
	// rejected samples are already counted by OnSample
	if m.metrics != nil && !model.IsValidation(err) {
		m.metrics.FetchErrors.Add(1)
	}
	m.reportError(err)
}

// initialThreshold 采用已保存的阈值，没有时保持配置中的初始值
func (m *Monitor) initialThreshold(ctx context.Context, camera string) {
	if value, ok := m.storedThreshold(ctx, camera); ok {
		m.adoptThreshold(value)
	}
}

// storedThreshold 依次从远端存储、本地存储读取阈值
func (m *Monitor) storedThreshold(ctx context.Context, camera string) (float64, bool) {
	if m.thresholds != nil {
		value, err := m.thresholds.Threshold(ctx, camera)
		switch {
		case err != nil:
			log.Warnf("[SETUP] %s: backend threshold unavailable: %v", camera, err)
		case !model.InRange(value):
			log.Warnf("[SETUP] %s: ignoring backend threshold %v", camera, value)
		default:
			return value, true
		}
	}

	value, err := m.storage.Threshold(camera)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		log.Warnf("[SETUP] %s: stored threshold unavailable: %v", camera, err)
	case !model.InRange(value):
		log.Warnf("[SETUP] %s: ignoring stored threshold %v", camera, value)
	default:
		return value, true
	}
	return 0, false
}

func (m *Monitor) adoptThreshold(value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.threshold.Set(value); err != nil {
		log.Warnf("[SETUP] %s: ignoring stored threshold: %v", m.camera, err)
	}
}

// Run loads the threshold and history for the current camera, then polls the
// feeder until ctx is cancelled or the feed is exhausted. The camera is read
// before every fetch, so SwitchCamera takes effect on the next poll.
func (m *Monitor) Run(ctx context.Context, feeder service.Feeder) error {
	m.mu.Lock()
	m.feeder = feeder
	camera := m.camera
	m.mu.Unlock()

	m.initialThreshold(ctx, camera)

	log.Infof("[SETUP] %s: loading history", camera)
	history, err := feeder.History(ctx, camera)
	if err != nil {
		log.Warnf("[SETUP] %s: history unavailable: %v", camera, err)
	} else if len(history) > 0 {
		m.loadHistoryFor(camera, history)
	}

	if m.telegram != nil {
		m.telegram.Start()
	}

	poller := source.NewPoller(feeder, camera, m.settings.PollInterval,
		source.WithCameraFunc(m.Camera),
		source.WithErrorHandler(m.onPollError))
	return poller.RunCamera(ctx, m.onFetched)
}

// Replay pushes samples synchronously, reporting progress through onProgress.
func (m *Monitor) Replay(samples []model.Sample, onProgress func()) {
	for _, sample := range samples {
		if err := m.OnSample(sample); err != nil {
			log.Warnf("[REPLAY] %v", err)
		}
		if onProgress != nil {
			onProgress()
		}
	}
}

// Summary 输出最近 summaryLimit 个采样的统计、全部事件计数与数值直方图
func (m *Monitor) Summary(w io.Writer) error {
	m.mu.Lock()
	values := m.values
	if len(values) > m.summaryLimit {
		values = values[len(values)-m.summaryLimit:]
	}
	values = append([]float64(nil), values...)
	counts := make(map[model.EventCategory]int, len(m.eventCounts))
	for category, count := range m.eventCounts {
		counts[category] = count
	}
	camera, threshold, band := m.camera, m.threshold.Value(), m.settings.Band
	m.mu.Unlock()

	return writeSummary(w, camera, threshold, band, values, counts)
}
