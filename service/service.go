//go:generate go run github.com/vektra/mockery/v2 --all --with-expecter --output=../testdata/mocks

package service

import (
	"context"

	"github.com/crowdpulse/pulsewatch/model"
)

// Feeder 获取某个摄像头的指标数据
type Feeder interface {
	// LatestSample returns the most recent sample of the camera.
	LatestSample(ctx context.Context, camera string) (model.Sample, error)
	// History returns the samples the backend still holds, oldest first.
	History(ctx context.Context, camera string) ([]model.Sample, error)
}

// ThresholdStore 读取与保存每个摄像头的阈值
type ThresholdStore interface {
	Threshold(ctx context.Context, camera string) (float64, error)
	SaveThreshold(ctx context.Context, camera string, value float64) error
}

// Notifier 事件与错误通知
type Notifier interface {
	Notify(string)
	OnEvent(event model.Event)
	OnError(err error)
}

// Telegram 通知，并且可以通过命令修改阈值
type Telegram interface {
	Notifier
	Start()
}

// ThresholdSetter 能够修改当前阈值的对象（通常是 Monitor）
type ThresholdSetter interface {
	SetThreshold(value float64) (float64, error)
}

// CameraSwitcher 能够切换当前摄像头的对象（通常是 Monitor）
type CameraSwitcher interface {
	Camera() string
	SwitchCamera(ctx context.Context, camera string) error
}
