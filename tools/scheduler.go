package tools

import (
	"fmt"
	"sync"

	"github.com/samber/lo"

	"github.com/crowdpulse/pulsewatch"
	"github.com/crowdpulse/pulsewatch/tools/log"
)

// Notifier 只需要发送文本消息（service.Notifier 或 Monitor 都满足）
type Notifier interface {
	Notify(string)
}

// AlertCondition 告警条件：条件满足时发送一次消息
type AlertCondition struct {
	Condition func(artifact pulsewatch.Artifact) bool // 判断条件的函数
	Message   string                                  // 通知内容
}

// Scheduler 管理一次性告警，在快照满足条件时发送通知后移除该条件。
type Scheduler struct {
	mu         sync.Mutex
	notifier   Notifier
	conditions []AlertCondition
}

// NewScheduler creates a scheduler. With a nil notifier alerts are only logged.
func NewScheduler(notifier Notifier) *Scheduler {
	return &Scheduler{notifier: notifier}
}

// NotifyWhen 当满足条件时发送 message
func (s *Scheduler) NotifyWhen(message string, condition func(artifact pulsewatch.Artifact) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conditions = append(s.conditions, AlertCondition{Condition: condition, Message: message})
}

// AverageAbove 窗口平均值达到 value 时通知
func (s *Scheduler) AverageAbove(value float64) {
	s.NotifyWhen(fmt.Sprintf("average engagement reached %.1f", value), func(artifact pulsewatch.Artifact) bool {
		return artifact.Samples > 0 && artifact.Average >= value
	})
}

// AverageBelow 窗口平均值低于 value 时通知
func (s *Scheduler) AverageBelow(value float64) {
	s.NotifyWhen(fmt.Sprintf("average engagement dropped below %.1f", value), func(artifact pulsewatch.Artifact) bool {
		return artifact.Samples > 0 && artifact.Average < value
	})
}

// Pending returns how many alerts have not fired yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conditions)
}

// OnArtifact 检查所有条件，已触发的条件被移除
func (s *Scheduler) OnArtifact(artifact pulsewatch.Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conditions = lo.Filter(s.conditions, func(ac AlertCondition, _ int) bool {
		if !ac.Condition(artifact) {
			return true
		}

		message := fmt.Sprintf("[%s] %s", artifact.Camera, ac.Message)
		log.Info("[ALERT] ", message)
		if s.notifier != nil {
			s.notifier.Notify(message)
		}
		return false
	})
}
