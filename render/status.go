package render

import (
	"fmt"
	"strings"

	"github.com/t-barz/slimeking-sub004/core"
	"github.com/t-barz/slimeking-sub004/effect"
)

// Status is the sandbox state shown on the bottom row
type Status struct {
	Categories []core.Category
	Paused     bool
	Muted      bool
	Silent     bool
}

// StatusLine formats per-category cooldowns and the sandbox flags
func StatusLine(fx *effect.Controller, s Status) string {
	var b strings.Builder
	for i, category := range s.Categories {
		if i > 0 {
			b.WriteByte(' ')
		}
		if remaining := fx.Cooldown(category); remaining > 0 {
			fmt.Fprintf(&b, "%s:%.1fs", category, remaining.Seconds())
		} else {
			fmt.Fprintf(&b, "%s:ready", category)
		}
	}
	if n := fx.Fallbacks(); n > 0 {
		fmt.Fprintf(&b, " | fallback %d", n)
	}
	switch {
	case s.Silent:
		b.WriteString(" | no audio")
	case s.Muted:
		b.WriteString(" | muted")
	}
	if s.Paused {
		b.WriteString(" | PAUSED")
	}
	return b.String()
}
