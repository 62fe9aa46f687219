package model

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation 可恢复的输入错误，状态保持不变
	ErrValidation = errors.New("validation error")
	// ErrConfiguration 构造时的致命配置错误
	ErrConfiguration = errors.New("configuration error")

	ErrOutOfRange      = fmt.Errorf("%w: threshold must be a finite number in [0,100]", ErrValidation)
	ErrInvalidSample   = fmt.Errorf("%w: sample value must be a finite number", ErrValidation)
	ErrInvalidCamera   = fmt.Errorf("%w: camera must not be empty", ErrValidation)
	ErrInvalidCapacity = fmt.Errorf("%w: window capacity must be at least 1", ErrConfiguration)
	ErrInvalidBand     = fmt.Errorf("%w: band must be a finite number >= 0", ErrConfiguration)
)

// IsValidation reports whether err was caused by rejected input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConfiguration reports whether err was caused by an invalid configuration.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
