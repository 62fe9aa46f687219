package model

import (
	"fmt"
	"math"
	"time"
)

const (
	DefaultWindowCapacity = 50
	DefaultBand           = 10.0
	DefaultPollInterval   = 2 * time.Second

	MinThreshold = 0.0
	MaxThreshold = 100.0
)

// TelegramSettings 电报设置
type TelegramSettings struct {
	Enabled bool   // 启用状态
	Token   string // 令牌
	Users   []int  // 用户
}

// Settings 监控配置
type Settings struct {
	Camera           string        // 当前摄像头
	WindowCapacity   int           // 滑动窗口容量
	Band             float64       // 阈值上下的边带宽度
	InitialThreshold float64       // 初始阈值
	PollInterval     time.Duration // 轮询间隔
	Telegram         TelegramSettings
}

// DefaultSettings returns the settings used by the reference monitor page.
func DefaultSettings(camera string) Settings {
	return Settings{
		Camera:           camera,
		WindowCapacity:   DefaultWindowCapacity,
		Band:             DefaultBand,
		InitialThreshold: 50,
		PollInterval:     DefaultPollInterval,
	}
}

// Validate 检查配置是否合法，容量和边带属于配置错误，阈值属于校验错误
func (s Settings) Validate() error {
	if s.WindowCapacity < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, s.WindowCapacity)
	}
	if s.Band < 0 || math.IsNaN(s.Band) || math.IsInf(s.Band, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidBand, s.Band)
	}
	if !InRange(s.InitialThreshold) {
		return fmt.Errorf("initial threshold %v: %w", s.InitialThreshold, ErrOutOfRange)
	}
	return nil
}

// Sample 一次原始观测值。Time 仅作为显示标签使用，不保证可排序。
type Sample struct {
	Time  string  `json:"timestamp"`
	Value float64 `json:"value"`
}

// Finite 判断采样值是否为有限数
func (s Sample) Finite() bool {
	return !math.IsNaN(s.Value) && !math.IsInf(s.Value, 0)
}

// RenderPoint 渲染序列中的一个点，可能是真实采样，也可能是合成的穿越点
type RenderPoint struct {
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Synthetic bool    `json:"synthetic,omitempty"`
}

// Color 线段颜色
type Color string

const (
	ColorBlue Color = "blue"
	ColorRed  Color = "red"
)

// EventCategory 滚动平均值相对阈值边带的分类
type EventCategory string

const (
	EventBelow  EventCategory = "below"
	EventWithin EventCategory = "within"
	EventAbove  EventCategory = "above"
)

// Icon returns the icon name the monitor page shows for the category.
func (e EventCategory) Icon() string {
	switch e {
	case EventBelow:
		return "boring_event.svg"
	case EventAbove:
		return "interesting_event.svg"
	default:
		return "meh_event.svg"
	}
}

// Mood is the human label of the category.
func (e EventCategory) Mood() string {
	switch e {
	case EventBelow:
		return "boring"
	case EventAbove:
		return "interesting"
	default:
		return "meh"
	}
}

// Artifact 每次处理完触发器后发出的不可变快照
type Artifact struct {
	Camera     string         `json:"camera"`
	Threshold  float64        `json:"threshold"`
	Band       float64        `json:"band"`
	Points     []RenderPoint  `json:"points"`
	EdgeColors []Color        `json:"edge_colors"`
	Event      *EventCategory `json:"event"`
	Average    float64        `json:"average"`
	Samples    int            `json:"samples"`
	Time       time.Time      `json:"time"`
}

// Lower 边带下限
func (a Artifact) Lower() float64 {
	return a.Threshold - a.Band
}

// Upper 边带上限
func (a Artifact) Upper() float64 {
	return a.Threshold + a.Band
}

// Last returns the final render point, which always mirrors the newest sample.
func (a Artifact) Last() (RenderPoint, bool) {
	if len(a.Points) == 0 {
		return RenderPoint{}, false
	}
	return a.Points[len(a.Points)-1], true
}

// Event 事件分类发生变化时记录的事件
type Event struct {
	ID        int64         `json:"id" gorm:"primaryKey;autoIncrement"`
	Camera    string        `json:"camera" gorm:"index"`
	Category  EventCategory `json:"category"`
	Average   float64       `json:"average"`
	Threshold float64       `json:"threshold"`
	Band      float64       `json:"band"`
	CreatedAt time.Time     `json:"created_at"`
}

func (e Event) String() string {
	return fmt.Sprintf("[%s] %s (avg %.1f, threshold %.0f±%.0f)",
		e.Camera, e.Category.Mood(), e.Average, e.Threshold, e.Band)
}
