// Package scoreparse pulls numeric scores out of free-text assessment
// write-ups. Extraction is best effort: callers get ok=false and fall back
// to DefaultScore.
package scoreparse

import (
	"strconv"
	"strings"
)

const DefaultScore = 50

type Kind string

const (
	KindPotential   Kind = "potential"
	KindPerformance Kind = "performance"
)

var (
	potentialMarkers   = []string{"total skor potensi:", "total potential score:"}
	performanceMarkers = []string{"skor kinerja", "skor / 100", "performance score"}
)

// Potential reads the value after the last colon of the first
// "Total Skor Potensi:" line that carries one.
func Potential(text string) (int, bool) {
	return scan(text, potentialMarkers, func(line string) string {
		return line[strings.LastIndex(line, ":")+1:]
	})
}

// Performance reads the value after the last colon and before the first
// slash of the first "Skor Kinerja" line that carries one, so "85 / 100"
// yields 85.
func Performance(text string) (int, bool) {
	return scan(text, performanceMarkers, func(line string) string {
		v := line[strings.LastIndex(line, ":")+1:]
		if i := strings.Index(v, "/"); i >= 0 {
			v = v[:i]
		}
		return v
	})
}

// Extract dispatches on kind. Unknown kinds are never found.
func Extract(kind Kind, text string) (int, bool) {
	switch kind {
	case KindPotential:
		return Potential(text)
	case KindPerformance:
		return Performance(text)
	}
	return 0, false
}

func OrDefault(score int, ok bool) int {
	if !ok {
		return DefaultScore
	}
	return score
}

func scan(text string, markers []string, pick func(string) string) (int, bool) {
	for _, line := range strings.Split(text, "\n") {
		if !containsAny(strings.ToLower(line), markers) {
			continue
		}
		if n, ok := toScore(pick(line)); ok {
			return n, true
		}
	}
	return 0, false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// toScore accepts an integer in [0, 100] wrapped in markdown emphasis.
func toScore(s string) (int, bool) {
	s = strings.Trim(strings.TrimSpace(s), "*_[]` \t\r")
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return n, true
}
