package popup

import (
	"fmt"

	"github.com/samdwyer/mun/internal/model"
)

// ErrorLines formats an error for the Error popup.
func ErrorLines(err *model.Error) []string {
	var lines []string
	if err.HasCode() {
		lines = append(lines, fmt.Sprintf("Code: %d", err.Code))
	}
	if err.Detail.Kind != nil {
		lines = append(lines, fmt.Sprintf("Type: %s", *err.Detail.Kind))
	}
	return append(lines, "Message: "+err.Detail.Message)
}

// FightLines formats both sides of an attack.
func FightLines(f model.Fight) []string {
	return []string{
		fmt.Sprintf("You inflicted %d DP and have %d HP left", f.Attacker.Damage, f.Attacker.Life),
		fmt.Sprintf("Your enemy inflicted %d DP and has %d HP left", f.Defender.Damage, f.Defender.Life),
	}
}

// EntityLines formats a looked-at occupant.
func EntityLines(e model.Entity) []string {
	return []string{
		e.Description,
		e.Kind.String(),
		fmt.Sprintf("%d/%d HP", e.Life, e.TotalLife),
	}
}
