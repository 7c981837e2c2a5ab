package common

import "fmt"

var (
	ErrBrandingNotFoundError = fmt.Errorf("branding file not found")
)

// Rejection is a terminal validation failure. It carries the reason shown
// to the user on the error page, so the text must stay presentable.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	return r.Reason
}

func NewRejection(format string, args ...any) *Rejection {
	return &Rejection{Reason: fmt.Sprintf(format, args...)}
}
