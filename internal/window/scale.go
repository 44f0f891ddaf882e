package window

import (
	"fmt"
	"strconv"
	"strings"
)

// ScaleKind selects how the visible window is derived.
type ScaleKind string

const (
	ScaleAutoCenterToday ScaleKind = "auto_center_today"
	ScaleFixedWeeks      ScaleKind = "fixed_weeks"
	ScaleFitAll          ScaleKind = "fit_all"
)

// ScaleMode is a zoom setting. Weeks is only meaningful for ScaleFixedWeeks.
type ScaleMode struct {
	Kind  ScaleKind
	Weeks int
}

// Preset zoom levels.
var (
	FitAll          = ScaleMode{Kind: ScaleFitAll}
	AutoCenterToday = ScaleMode{Kind: ScaleAutoCenterToday}
	SixWeeks        = ScaleMode{Kind: ScaleFixedWeeks, Weeks: 6}
	Quarter         = ScaleMode{Kind: ScaleFixedWeeks, Weeks: 13}
	HalfYear        = ScaleMode{Kind: ScaleFixedWeeks, Weeks: 26}
)

// FixedWeeks returns a fixed-duration mode of n weeks.
func FixedWeeks(n int) ScaleMode {
	if n < 1 {
		n = 1
	}
	return ScaleMode{Kind: ScaleFixedWeeks, Weeks: n}
}

func (m ScaleMode) String() string {
	if m.Kind == ScaleFixedWeeks {
		return fmt.Sprintf("%s(%d)", m.Kind, m.Weeks)
	}
	return string(m.Kind)
}

// ParseScale accepts the preset names used in config files and on the
// command line: fit_all, auto, six_weeks, quarter, half_year or weeks:N.
func ParseScale(s string) (ScaleMode, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "fit_all", "fit":
		return FitAll, nil
	case "auto", "auto_center_today", "today":
		return AutoCenterToday, nil
	case "six_weeks", "6w":
		return SixWeeks, nil
	case "quarter", "q":
		return Quarter, nil
	case "half_year", "half":
		return HalfYear, nil
	default:
		if rest, ok := strings.CutPrefix(v, "weeks:"); ok {
			n, err := strconv.Atoi(rest)
			if err != nil || n < 1 {
				return ScaleMode{}, fmt.Errorf("invalid week count in scale %q", s)
			}
			return FixedWeeks(n), nil
		}
		return ScaleMode{}, fmt.Errorf("unknown scale %q (use fit_all, auto, six_weeks, quarter, half_year or weeks:N)", s)
	}
}
