package dashboard

import "time"

// Severity classifies a banner. It selects the banner style and nothing
// else; dismissal rules are the same for every severity.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

// Banner is one visible notification.
type Banner struct {
	Text     string
	Severity Severity

	// Duration of zero keeps the banner until dismissed or replaced.
	Duration time.Duration
}

// Presenter shows at most one banner at a time. Showing a new banner
// replaces the current one; the replaced banner's pending expiry is
// neutralized by a generation counter so it cannot dismiss its
// successor.
type Presenter struct {
	current *Banner
	gen     int
}

// NewPresenter creates an empty presenter.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Show replaces any current banner and returns the generation token the
// caller must pass back to Expire. A zero-duration banner gets a token
// too, but no expiry should be scheduled for it.
func (p *Presenter) Show(b Banner) int {
	p.gen++
	p.current = &b
	return p.gen
}

// Clear dismisses the current banner, if any.
func (p *Presenter) Clear() {
	p.current = nil
}

// Active returns the visible banner, or nil.
func (p *Presenter) Active() *Banner {
	return p.current
}

// Expire dismisses the banner only if gen still identifies it. A stale
// token (the banner was replaced or dismissed since) is a no-op.
func (p *Presenter) Expire(gen int) {
	if p.current != nil && gen == p.gen {
		p.current = nil
	}
}

// render returns the styled banner line, or empty when nothing is shown.
func (p *Presenter) render(width int) string {
	if p.current == nil {
		return ""
	}
	var style = BannerInfoStyle
	switch p.current.Severity {
	case SeverityError:
		style = BannerErrorStyle
	case SeveritySuccess:
		style = BannerSuccessStyle
	}
	text := p.current.Text + "  " + BannerDismissStyle.Render("[x] 閉じる")
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(text)
}
