// Package log re-exports the logrus API so callers depend on a single import path.
package log

import "github.com/sirupsen/logrus"

type (
	Level         = logrus.Level
	Fields        = logrus.Fields
	Entry         = logrus.Entry
	Formatter     = logrus.Formatter
	TextFormatter = logrus.TextFormatter
	JSONFormatter = logrus.JSONFormatter
)

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
	TraceLevel = logrus.TraceLevel
)

var (
	SetLevel     = logrus.SetLevel
	GetLevel     = logrus.GetLevel
	ParseLevel   = logrus.ParseLevel
	SetFormatter = logrus.SetFormatter
	SetOutput    = logrus.SetOutput
	WithField    = logrus.WithField
	WithFields   = logrus.WithFields
	WithError    = logrus.WithError

	Debug  = logrus.Debug
	Debugf = logrus.Debugf
	Info   = logrus.Info
	Infof  = logrus.Infof
	Warn   = logrus.Warn
	Warnf  = logrus.Warnf
	Error  = logrus.Error
	Errorf = logrus.Errorf
	Fatal  = logrus.Fatal
	Fatalf = logrus.Fatalf
)
