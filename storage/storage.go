package storage

import (
	"errors"
	"time"

	"github.com/crowdpulse/pulsewatch/model"
)

// ErrNotFound 没有保存过该摄像头的阈值
var ErrNotFound = errors.New("not found")

// EventFilter 过滤事件的函数类型
type EventFilter func(model.Event) bool

// Storage 存储接口，保存每个摄像头的阈值以及事件分类变化记录
type Storage interface {
	SaveThreshold(camera string, value float64) error
	Threshold(camera string) (float64, error)
	CreateEvent(event *model.Event) error
	Events(filters ...EventFilter) ([]*model.Event, error)
}

// WithCategoryIn 根据事件分类过滤事件，可传入多个分类
func WithCategoryIn(categories ...model.EventCategory) EventFilter {
	return func(event model.Event) bool {
		for _, c := range categories {
			if c == event.Category {
				return true
			}
		}
		return false
	}
}

// WithCategory 根据事件分类过滤事件，只能传入一个分类
func WithCategory(category model.EventCategory) EventFilter {
	return func(event model.Event) bool {
		return event.Category == category
	}
}

// WithCamera 根据摄像头过滤事件
func WithCamera(camera string) EventFilter {
	return func(event model.Event) bool {
		return event.Camera == camera
	}
}

// WithCreatedAtBeforeOrEqual 根据创建时间早于或等于指定时间过滤事件
func WithCreatedAtBeforeOrEqual(time time.Time) EventFilter {
	return func(event model.Event) bool {
		return !event.CreatedAt.After(time)
	}
}

// WithCreatedAtAfter 根据创建时间晚于指定时间过滤事件
func WithCreatedAtAfter(time time.Time) EventFilter {
	return func(event model.Event) bool {
		return event.CreatedAt.After(time)
	}
}

func match(event model.Event, filters []EventFilter) bool {
	for _, filter := range filters {
		if !filter(event) {
			return false
		}
	}
	return true
}
