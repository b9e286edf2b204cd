// Package dashboard implements the hospital-metrics TUI.
//
// The package is organized around a single Bubble Tea model that owns all
// page state, following a clean separation between:
//
//   - Controllers (main feed and special feed fetch cycles, each with its
//     own in-flight guard)
//   - The chart manager (one drawable instance per metric slot, destroyed
//     and recreated on every redraw)
//   - The notification presenter (at most one banner at a time)
//   - The resize coordinator (debounced terminal resizes replaying the
//     retained snapshot without re-fetching)
//
// # Fetch Cycle
//
// Init launches both feed fetches concurrently. Each fetch settles into a
// message regardless of outcome, so a failure in one feed never aborts
// the other. A controller's in-flight boolean is its only concurrency
// guard: a refresh requested while a fetch is running is dropped, not
// queued. The flag is cleared as the first action of every completion
// handler, so it cannot stay stuck after a render problem.
//
// # Resize Handling
//
// Terminal resizes are debounced with a sequence counter: every
// WindowSizeMsg bumps the sequence and schedules a redraw message tagged
// with it; only the message matching the latest sequence fires. The
// redraw repaints charts from the retained snapshot with sizing resolved
// at render time. It never re-fetches and never touches controller state.
package dashboard
