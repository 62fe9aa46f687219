package model

import "fmt"

// Window 有界的采样滑动窗口，尾部插入，超出容量时从头部淘汰一个元素。
// Window is not safe for concurrent use; it is owned by a single Monitor.
type Window struct {
	capacity int
	samples  []Sample
}

// NewWindow 创建指定容量的滑动窗口，容量小于 1 属于配置错误
func NewWindow(capacity int) (*Window, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Window{
		capacity: capacity,
		samples:  make([]Sample, 0, capacity),
	}, nil
}

// Push appends the sample and evicts the oldest one when the window overflows.
// It returns the evicted sample, if any.
func (w *Window) Push(sample Sample) (evicted Sample, ok bool) {
	w.samples = append(w.samples, sample)
	if len(w.samples) > w.capacity {
		evicted, ok = w.samples[0], true
		// 复制到新切片，避免底层数组无限增长
		w.samples = append(w.samples[:0:0], w.samples[1:]...)
	}
	return evicted, ok
}

// Load 用给定采样替换窗口内容，只保留最近的 capacity 个
func (w *Window) Load(samples []Sample) {
	if len(samples) > w.capacity {
		samples = samples[len(samples)-w.capacity:]
	}
	w.samples = append(make([]Sample, 0, w.capacity), samples...)
}

// Reset 清空窗口
func (w *Window) Reset() {
	w.samples = make([]Sample, 0, w.capacity)
}

// Samples returns a copy of the window in arrival order.
func (w *Window) Samples() []Sample {
	out := make([]Sample, len(w.samples))
	copy(out, w.samples)
	return out
}

// Values returns a copy of the sample values in arrival order.
func (w *Window) Values() Series[float64] {
	values := make(Series[float64], len(w.samples))
	for i, sample := range w.samples {
		values[i] = sample.Value
	}
	return values
}

// Last 返回最新的采样
func (w *Window) Last() (Sample, bool) {
	if len(w.samples) == 0 {
		return Sample{}, false
	}
	return w.samples[len(w.samples)-1], true
}

func (w *Window) Len() int {
	return len(w.samples)
}

func (w *Window) Cap() int {
	return w.capacity
}
