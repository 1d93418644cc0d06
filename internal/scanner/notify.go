package scanner

import (
	"errors"
	"fmt"
	"time"
)

// Level is the severity of a Notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a user-facing message describing the outcome of a scan step.
type Notification struct {
	Level       Level     `json:"level"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NotifyError maps a scan failure to the notification shown to the user.
func NotifyError(err error) Notification {
	var (
		rangeErr *RangeError
		headErr  *ChainHeadExceededError
	)

	n := Notification{Level: LevelError, CreatedAt: time.Now().UTC()}

	switch {
	case errors.As(err, &rangeErr):
		n.Title = "End block should be greater than start block."
		n.Description = fmt.Sprintf("Error: %d > %d.", rangeErr.Start, rangeErr.End)
	case errors.As(err, &headErr):
		n.Title = "End block shouldn't be greater than chain head."
		n.Description = fmt.Sprintf("Error: %d > %d.", headErr.End, headErr.Head)
	default:
		n.Title = "Couldn't fetch events."
		n.Description = fmt.Sprintf("Error: %v.", err)
	}

	return n
}

// NotifyCollected is the notification for a completed scan.
func NotifyCollected(r BlockRange) Notification {
	return Notification{
		Level:       LevelSuccess,
		Title:       "Fetched events.",
		Description: fmt.Sprintf("We've fetched events from block %d through %d.", r.Start, r.End),
		CreatedAt:   time.Now().UTC(),
	}
}

// NotifyStored is the notification for a successful remote submission.
// shortLink is the display form of url.
func NotifyStored(url, shortLink string) Notification {
	return Notification{
		Level:       LevelSuccess,
		Title:       "Stored events in the server.",
		Description: shortLink,
		Link:        url,
		CreatedAt:   time.Now().UTC(),
	}
}

// NotifyStoreFailed is the non-fatal warning for a failed remote submission.
func NotifyStoreFailed(err error) Notification {
	return Notification{
		Level:       LevelWarning,
		Title:       "Couldn't store events in the server.",
		Description: fmt.Sprintf("Error: %v.", err),
		CreatedAt:   time.Now().UTC(),
	}
}
