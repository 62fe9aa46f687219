package model

import (
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/stat"
)

// Series 类型，用于表示一系列时间序列的值。该类型使用了泛型，可以存储任何有序类型的数据。
// Series is a time series of values
type Series[T constraints.Ordered] []T

// Values returns the values of the series
// 返回时间序列的所有值
func (s Series[T]) Values() []T {
	return s
}

// Length returns the number of values in the series
// 返回时间序列的长度（即值的个数）
func (s Series[T]) Length() int {
	return len(s)
}

// Last returns the last value of the series given a past index position
// 返回时间序列倒数第 position 个位置的值
func (s Series[T]) Last(position int) T {
	return s[len(s)-1-position]
}

// LastValues returns the last values of the series given a size
// 返回时间序列最后 size 个值
func (s Series[T]) LastValues(size int) []T {
	if l := len(s); l > size {
		return s[l-size:]
	}
	return s
}

// Crossings counts the adjacent pairs that sit on opposite sides of ref.
// A value equal to ref counts as being on the upper side.
// 统计相邻值跨越参考值的次数，等于参考值视为在上方
func (s Series[T]) Crossings(ref T) int {
	count := 0
	for i := 1; i < len(s); i++ {
		if (s[i-1] < ref) != (s[i] < ref) {
			count++
		}
	}
	return count
}

// Mean returns the arithmetic mean of a float series, zero when empty.
// 计算浮点序列的平均值，空序列返回 0
func Mean(s Series[float64]) float64 {
	if len(s) == 0 {
		return 0
	}
	return stat.Mean(s, nil)
}
