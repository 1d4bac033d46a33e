package language

import (
	"strings"

	"mgnrega/server/config"

	"github.com/sirupsen/logrus"
)

// DefaultLanguages is returned when a state has no entry in the table.
var DefaultLanguages = []string{"Hindi", "English"}

// Detector maps a state name to the languages commonly spoken there. It is
// pure: no I/O and no failure mode.
type Detector struct {
	logger *logrus.Logger
}

func NewDetector(logger *logrus.Logger) *Detector {
	return &Detector{logger: logger}
}

// ForState returns the ordered language list for a state. The lookup is
// case-insensitive and tolerates partial matches in either direction, so
// "tamil nadu", "TAMIL NADU" and "Tamil Nadu District" all resolve to Tamil.
func (d *Detector) ForState(stateName string) []string {
	normalized := strings.TrimSpace(stateName)

	if langs, ok := config.StateLanguages[normalized]; ok {
		return cloned(langs)
	}

	// Scan the sorted name list, not the map, so ambiguous inputs always
	// resolve to the same state.
	lower := strings.ToLower(normalized)
	if lower != "" {
		for _, state := range config.StateNames {
			if strings.ToLower(state) == lower {
				return cloned(config.StateLanguages[state])
			}
		}
		for _, state := range config.StateNames {
			stateLower := strings.ToLower(state)
			if strings.Contains(stateLower, lower) || strings.Contains(lower, stateLower) {
				return cloned(config.StateLanguages[state])
			}
		}
	}

	d.logger.WithField("state", stateName).Warn("State not found in language table, defaulting to Hindi + English")
	return cloned(DefaultLanguages)
}

func cloned(langs []string) []string {
	out := make([]string, len(langs))
	copy(out, langs)
	return out
}
