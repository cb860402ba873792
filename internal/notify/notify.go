// Package notify delivers countdown warnings to the user.
package notify

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"

	"conferencetimer/internal/core/model"
)

const title = "Conference time limit"

// Sender is the part of fyne.App used to show desktop notifications.
type Sender interface {
	SendNotification(notification *fyne.Notification)
}

// Desktop shows warnings as native desktop notifications.
type Desktop struct {
	sender Sender
	logger *slog.Logger
}

// NewDesktop creates a notifier that sends through sender.
func NewDesktop(sender Sender, logger *slog.Logger) *Desktop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Desktop{sender: sender, logger: logger.With("component", "notify")}
}

// Notify sends the warning. Desktop notifications have no timeout control,
// so the requested classification is only logged.
func (desktop *Desktop) Notify(notification model.Notification) {
	desktop.logger.Debug("sending desktop notification",
		slog.String("timeout", string(notification.Timeout)))
	desktop.sender.SendNotification(fyne.NewNotification(title, Message(notification)))
}

// Log writes warnings to a structured logger.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a notifier that logs at warn level.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger.With("component", "notify")}
}

// Notify logs the warning.
func (notifier *Log) Notify(notification model.Notification) {
	notifier.logger.Warn(Message(notification),
		slog.String("period", notification.Period),
		slog.String("period_type", notification.PeriodType),
		slog.String("timeout", string(notification.Timeout)))
}

// Message renders the user-facing warning text.
func Message(notification model.Notification) string {
	unit := notification.PeriodType
	if notification.Period == "1" && len(unit) > 1 && unit[len(unit)-1] == 's' {
		unit = unit[:len(unit)-1]
	}
	return fmt.Sprintf("The conference will end in %s %s.", notification.Period, unit)
}
