package source

import (
	"context"
	"errors"
	"time"

	"github.com/jpillora/backoff"

	"github.com/crowdpulse/pulsewatch/model"
	"github.com/crowdpulse/pulsewatch/service"
	"github.com/crowdpulse/pulsewatch/tools/log"
)

// SampleConsumer 接收轮询得到的采样
type SampleConsumer func(model.Sample) error

// CameraSampleConsumer 接收采样以及请求它时使用的摄像头
type CameraSampleConsumer func(camera string, sample model.Sample) error

// Poller 按固定间隔轮询一个摄像头的最新采样。
// Fetches run one at a time; a tick that fires while a fetch is still in
// flight is dropped, so samples are delivered in fetch order.
type Poller struct {
	feeder   service.Feeder
	camera   func() string // 每次请求前读取，切换摄像头后立即生效
	interval time.Duration
	backoff  *backoff.Backoff
	onError  func(error)

	skipped int
}

type PollerOption func(*Poller)

// WithBackoff 设置请求失败后的重试退避策略
func WithBackoff(min, max time.Duration) PollerOption {
	return func(p *Poller) {
		p.backoff = &backoff.Backoff{Min: min, Max: max, Factor: 2, Jitter: true}
	}
}

// WithCameraFunc 每次请求前调用 camera 决定轮询哪个摄像头
func WithCameraFunc(camera func() string) PollerOption {
	return func(p *Poller) {
		p.camera = camera
	}
}

// WithErrorHandler 注册错误回调（例如通知器的 OnError）
func WithErrorHandler(onError func(error)) PollerOption {
	return func(p *Poller) {
		p.onError = onError
	}
}

// NewPoller creates a poller for camera. A non-positive interval falls back to
// model.DefaultPollInterval.
func NewPoller(feeder service.Feeder, camera string, interval time.Duration, options ...PollerOption) *Poller {
	if interval <= 0 {
		interval = model.DefaultPollInterval
	}

	p := &Poller{
		feeder:   feeder,
		camera:   func() string { return camera },
		interval: interval,
		backoff:  &backoff.Backoff{Min: interval, Max: 30 * time.Second, Factor: 2, Jitter: true},
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Skipped returns how many ticks were dropped because a fetch was in flight.
func (p *Poller) Skipped() int {
	return p.skipped
}

// Run polls until ctx is cancelled or the feeder is exhausted. It always returns
// between two fetches, never in the middle of delivering a sample.
func (p *Poller) Run(ctx context.Context, consumer SampleConsumer) error {
	return p.RunCamera(ctx, func(_ string, sample model.Sample) error {
		return consumer(sample)
	})
}

// RunCamera is Run for consumers that need to know which camera a sample was
// fetched for, e.g. to drop samples that raced with a camera switch.
func (p *Poller) RunCamera(ctx context.Context, consumer CameraSampleConsumer) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		camera := p.camera()
		err := p.poll(ctx, camera, consumer)
		switch {
		case errors.Is(err, ErrExhausted):
			log.Infof("[POLLER] %s: feed exhausted", camera)
			return nil
		case ctx.Err() != nil:
			return nil
		case err != nil:
			p.reportError(err)
			wait := p.backoff.Duration()
			log.Warnf("[POLLER] %s: fetch failed, retrying in %s: %v", camera, wait, err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(wait):
			}
			continue
		}
		p.backoff.Reset()

		// a tick that arrived during the fetch is dropped
		select {
		case <-ticker.C:
			p.skipped++
			log.Debugf("[POLLER] %s: fetch outlasted the interval, tick skipped", camera)
		default:
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (p *Poller) poll(ctx context.Context, camera string, consumer CameraSampleConsumer) error {
	sample, err := p.feeder.LatestSample(ctx, camera)
	if err != nil {
		return err
	}

	if err := consumer(camera, sample); err != nil {
		// rejected samples are reported but do not trigger a backoff
		p.reportError(err)
		log.Warnf("[POLLER] %s: sample rejected: %v", camera, err)
	}
	return nil
}

func (p *Poller) reportError(err error) {
	if p.onError != nil {
		p.onError(err)
	}
}
