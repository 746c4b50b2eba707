package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Phase is a named stage of the multi-turn assessment. Phases are strictly
// ordered and a session never moves back to an earlier one.
type Phase int

const (
	PhaseIntroduction Phase = iota
	PhaseExploration
	PhaseDeepDive
	PhaseAnalysis
	PhaseComplete
)

// Phases lists every phase in order.
var Phases = []Phase{PhaseIntroduction, PhaseExploration, PhaseDeepDive, PhaseAnalysis, PhaseComplete}

var phaseNames = map[Phase]string{
	PhaseIntroduction: "introduction",
	PhaseExploration:  "exploration",
	PhaseDeepDive:     "deep-dive",
	PhaseAnalysis:     "analysis",
	PhaseComplete:     "complete",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// Before reports whether p comes strictly earlier than other.
func (p Phase) Before(other Phase) bool { return p < other }

// ParsePhase maps a wire name to a Phase. The empty string is the
// introduction phase.
func ParsePhase(s string) (Phase, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return PhaseIntroduction, nil
	}
	// "deep_dive" and "deepdive" show up from older clients.
	switch name {
	case "deep_dive", "deepdive":
		return PhaseDeepDive, nil
	}
	for p, n := range phaseNames {
		if n == name {
			return p, nil
		}
	}
	return PhaseIntroduction, fmt.Errorf("%w: unknown assessment phase %q", ErrInvalidArgument, s)
}

// MarshalJSON encodes the phase by name.
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a phase name.
func (p *Phase) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: phase must be a string", ErrInvalidArgument)
	}
	parsed, err := ParsePhase(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
