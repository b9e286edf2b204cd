package dashboard

import (
	"time"

	"github.com/ksakamaki/hospdash/internal/feed"
)

// Messages produced by the dashboard's commands. Every fetch settles
// into exactly one of the success/failure pairs; the Update loop is the
// only place controller state changes.

// mainFeedMsg carries a successfully fetched and validated metrics feed.
type mainFeedMsg struct {
	payload *feed.DashboardPayload
}

// mainFeedFailedMsg reports a main feed fetch that exhausted its retries
// or failed validation.
type mainFeedFailedMsg struct {
	err error
}

// specialFeedMsg carries a successfully fetched announcements feed.
type specialFeedMsg struct {
	payload *feed.SpecialPayload
}

// specialFeedFailedMsg reports a failed announcements fetch.
type specialFeedFailedMsg struct {
	err error
}

// redrawMsg fires after the resize debounce delay. seq identifies the
// resize burst it belongs to; a stale seq is ignored.
type redrawMsg struct {
	seq int
}

// notifyExpiredMsg dismisses a timed banner. gen identifies the banner;
// a stale gen is ignored.
type notifyExpiredMsg struct {
	gen int
}

// refreshTickMsg triggers a periodic refresh when one is configured.
type refreshTickMsg struct {
	at time.Time
}

// linkOpenedMsg reports the outcome of opening an external link.
type linkOpenedMsg struct {
	err error
}
