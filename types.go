package pulsewatch

import "github.com/crowdpulse/pulsewatch/model"

type (
	Settings         = model.Settings
	TelegramSettings = model.TelegramSettings
	Sample           = model.Sample
	Artifact         = model.Artifact
	Event            = model.Event
)

// DefaultSettings 默认配置：窗口 50、边带 10、轮询间隔 2 秒
func DefaultSettings(camera string) Settings {
	return model.DefaultSettings(camera)
}
