package enums

import "fmt"

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotificationTypeAnnouncement NotificationType = "announcement"
	NotificationTypeScanResult   NotificationType = "scan_result"
	NotificationTypeSubscription NotificationType = "subscription"
	NotificationTypeAccount      NotificationType = "account"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeAnnouncement,
	NotificationTypeScanResult,
	NotificationTypeSubscription,
	NotificationTypeAccount,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
