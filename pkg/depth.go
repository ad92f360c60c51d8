package dirchecksums

import (
	"fmt"
	"strconv"
	"strings"
)

// DepthSetting bounds how far the walker descends below the root.
// Negative values mean unlimited, zero means the current level is the last,
// and n > 0 allows n more levels below the current one.
type DepthSetting int

const (
	Infinite  DepthSetting = -1
	LastLevel DepthSetting = 0
)

// NRemaining returns a setting allowing n more levels; n < 1 yields LastLevel
func NRemaining(n int) DepthSetting {
	if n < 1 {
		return LastLevel
	}
	return DepthSetting(n)
}

// DepthFromInt maps a signed integer onto a setting
func DepthFromInt(n int) DepthSetting {
	switch {
	case n < 0:
		return Infinite
	case n == 0:
		return LastLevel
	default:
		return DepthSetting(n)
	}
}

// ParseDepth parses a signed integer string
func ParseDepth(s string) (DepthSetting, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return LastLevel, fmt.Errorf("invalid depth %q: %w", s, err)
	}
	return DepthFromInt(n), nil
}

func (d DepthSetting) IsInfinite() bool { return d < 0 }

// CanRecurse reports whether subdirectories of the current level are entered
func (d DepthSetting) CanRecurse() bool {
	return d != LastLevel
}

// NextLevel returns the setting for the level below, false at the last level
func (d DepthSetting) NextLevel() (DepthSetting, bool) {
	switch {
	case d < 0:
		return Infinite, true
	case d == LastLevel:
		return LastLevel, false
	default:
		return d - 1, true
	}
}

func (d DepthSetting) String() string {
	switch {
	case d < 0:
		return "infinite"
	case d == LastLevel:
		return "last-level"
	default:
		return fmt.Sprintf("%d remaining", int(d))
	}
}
