package iof

import (
	"fmt"
)

// HumanTime renders an elapsed time in seconds as mm:ss, or h:mm:ss when
// there is a nonzero hour part.
func HumanTime(seconds int) string {
	h := seconds / 3600
	m := seconds/60 - h*60
	s := seconds - h*3600 - m*60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
