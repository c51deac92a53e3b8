// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and
// Windows.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/incordes/incordes/internal/logger"
)

// notify is swappable in tests.
var notify = beeep.Notify

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	logger.Debug("Notification: title=%q, message=%q", title, message)
	// Empty icon; beeep handles platform defaults
	err := notify(title, message, "")
	if err != nil {
		logger.Warn("Notification: failed to send: %v", err)
	}
	return err
}

// NewMessages announces messages that arrived in the active conversation
// while the window was unfocused.
func NewMessages(conversation string, count int) error {
	if count == 1 {
		return Send("Incordes", fmt.Sprintf("New message in %s", conversation))
	}
	return Send("Incordes", fmt.Sprintf("%d new messages in %s", count, conversation))
}

// FriendRequest announces a newly discovered pending friend request.
func FriendRequest(from string) error {
	return Send("Incordes", from+" sent you a friend request")
}
