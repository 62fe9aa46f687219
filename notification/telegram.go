package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tb "gopkg.in/tucnak/telebot.v2"

	"github.com/crowdpulse/pulsewatch/model"
	"github.com/crowdpulse/pulsewatch/service"
	"github.com/crowdpulse/pulsewatch/tools/log"
)

var (
	errMissingThreshold = errors.New("usage: /threshold <0-100>")
	errMissingCamera    = errors.New("usage: /camera <id>")
)

const switchTimeout = 10 * time.Second

// Controller 电报命令操作的对象（通常是 Monitor）
type Controller interface {
	service.ThresholdSetter
	service.CameraSwitcher
	Threshold() float64
	Status() string
}

type telegram struct {
	settings   model.Settings
	controller Controller
	client     *tb.Bot
	allowed    map[int]bool // 允许使用机器人的用户
}

// NewTelegram connects to the bot API. Only updates sent by the configured
// users reach the command handlers.
func NewTelegram(controller Controller, settings model.Settings) (service.Telegram, error) {
	allowed := make(map[int]bool, len(settings.Telegram.Users))
	for _, user := range settings.Telegram.Users {
		allowed[user] = true
	}

	poller := &tb.LongPoller{Timeout: 10 * time.Second}
	userMiddleware := tb.NewMiddlewarePoller(poller, func(u *tb.Update) bool {
		if u.Message == nil || u.Message.Sender == nil {
			log.Error("no message, ", u)
			return false
		}

		if allowed[u.Message.Sender.ID] {
			return true
		}

		log.Error("invalid user, ", u.Message)
		return false
	})

	client, err := tb.NewBot(tb.Settings{
		Token:  settings.Telegram.Token,
		Poller: userMiddleware,
	})
	if err != nil {
		return nil, err
	}

	var (
		menu         = &tb.ReplyMarkup{ResizeReplyKeyboard: true}
		statusBtn    = menu.Text("/status")
		thresholdBtn = menu.Text("/threshold")
		cameraBtn    = menu.Text("/camera")
		helpBtn      = menu.Text("/help")
	)
	menu.Reply(
		menu.Row(statusBtn, thresholdBtn),
		menu.Row(cameraBtn, helpBtn),
	)

	bot := &telegram{
		settings:   settings,
		controller: controller,
		client:     client,
		allowed:    allowed,
	}
	err = client.SetCommands([]tb.Command{
		{Text: "help", Description: "Display help instructions"},
		{Text: "status", Description: "Show the current engagement and event"},
		{Text: "threshold", Description: "Show or change the threshold: /threshold 60"},
		{Text: "camera", Description: "Show or switch the camera: /camera cam-2"},
	})
	if err != nil {
		return nil, err
	}

	client.Handle("/help", bot.HelpHandle)
	client.Handle("/start", func(m *tb.Message) {
		_, err := bot.client.Send(m.Sender, "Hi! I report engagement changes for "+controller.Camera(), menu)
		if err != nil {
			log.Error(err)
		}
	})
	client.Handle("/status", bot.StatusHandle)
	client.Handle("/threshold", bot.ThresholdHandle)
	client.Handle("/camera", bot.CameraHandle)

	return bot, nil
}

func (t telegram) Start() {
	go t.client.Start()
	t.Notify(fmt.Sprintf("Monitor for %s initialized.", t.controller.Camera()))
}

func (t telegram) Notify(text string) {
	for user := range t.allowed {
		_, err := t.client.Send(&tb.User{ID: user}, text)
		if err != nil {
			log.Error(err)
		}
	}
}

func (t telegram) OnEvent(event model.Event) {
	t.Notify(eventMessage(event))
}

func (t telegram) OnError(err error) {
	title := "🛑 ERROR"
	if model.IsValidation(err) {
		title = "⚠️ REJECTED"
	}
	t.Notify(fmt.Sprintf("%s\n%s", title, err))
}

func (t telegram) HelpHandle(m *tb.Message) {
	commands, err := t.client.GetCommands()
	if err != nil {
		log.Error(err)
		t.OnError(err)
		return
	}

	lines := make([]string, 0, len(commands))
	for _, command := range commands {
		lines = append(lines, fmt.Sprintf("/%s - %s", command.Text, command.Description))
	}

	_, err = t.client.Send(m.Sender, strings.Join(lines, "\n"))
	if err != nil {
		log.Error(err)
	}
}

func (t telegram) StatusHandle(m *tb.Message) {
	_, err := t.client.Send(m.Sender, t.controller.Status())
	if err != nil {
		log.Error(err)
	}
}

func (t telegram) ThresholdHandle(m *tb.Message) {
	_, err := t.client.Send(m.Sender, thresholdReply(t.controller, m.Payload))
	if err != nil {
		log.Error(err)
	}
}

func (t telegram) CameraHandle(m *tb.Message) {
	_, err := t.client.Send(m.Sender, cameraReply(t.controller, m.Payload))
	if err != nil {
		log.Error(err)
	}
}

// cameraReply 处理 /camera 命令：没有参数时返回当前摄像头，否则切换摄像头
func cameraReply(controller Controller, payload string) string {
	camera := strings.TrimSpace(payload)
	if camera == "" {
		return fmt.Sprintf("Camera: %s\n%s", controller.Camera(), errMissingCamera)
	}

	previous := controller.Camera()
	ctx, cancel := context.WithTimeout(context.Background(), switchTimeout)
	defer cancel()
	if err := controller.SwitchCamera(ctx, camera); err != nil {
		return fmt.Sprintf("⚠️ %s", err)
	}
	return fmt.Sprintf("Camera changed: %s → %s\nThreshold: %.0f", previous, camera, controller.Threshold())
}

// thresholdReply 处理 /threshold 命令：没有参数时返回当前阈值，否则修改阈值
func thresholdReply(controller Controller, payload string) string {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return fmt.Sprintf("Threshold: %.0f\n%s", controller.Threshold(), errMissingThreshold)
	}

	value, err := strconv.ParseFloat(payload, 64)
	if err != nil {
		return errMissingThreshold.Error()
	}

	previous, err := controller.SetThreshold(value)
	if err != nil {
		return fmt.Sprintf("⚠️ %s", err)
	}
	return fmt.Sprintf("Threshold changed: %.0f → %.0f", previous, value)
}

func eventMessage(event model.Event) string {
	icon := "😐"
	switch event.Category {
	case model.EventBelow:
		icon = "😴"
	case model.EventAbove:
		icon = "🔥"
	}
	return fmt.Sprintf("%s %s is %s\nAverage: %.1f\nBand: %.0f - %.0f",
		icon, event.Camera, strings.ToUpper(event.Category.Mood()), event.Average,
		event.Threshold-event.Band, event.Threshold+event.Band)
}
