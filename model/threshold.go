package model

import (
	"fmt"
	"math"
)

// Threshold 可变的阈值状态，取值范围 [0,100]
type Threshold struct {
	value float64
}

// NewThreshold 创建阈值，初始值与 Set 使用相同的校验规则
func NewThreshold(value float64) (*Threshold, error) {
	if !InRange(value) {
		return nil, fmt.Errorf("initial threshold %v: %w", value, ErrOutOfRange)
	}
	return &Threshold{value: value}, nil
}

// Value returns the current threshold.
func (t *Threshold) Value() float64 {
	return t.value
}

// Set replaces the threshold and returns the previous value so callers can
// detect a no-op change. Invalid values leave the state untouched.
func (t *Threshold) Set(value float64) (float64, error) {
	if !InRange(value) {
		return t.value, fmt.Errorf("threshold %v: %w", value, ErrOutOfRange)
	}
	previous := t.value
	t.value = value
	return previous, nil
}

// InRange 判断阈值是否为 [0,100] 范围内的有限数
func InRange(value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	return value >= MinThreshold && value <= MaxThreshold
}
