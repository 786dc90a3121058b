package effect

import (
	"time"

	"github.com/t-barz/slimeking-sub004/core"
	"github.com/t-barz/slimeking-sub004/parameter"
	"github.com/t-barz/slimeking-sub004/vmath"
)

// Action is the per-category trigger setup bound to a controller
type Action struct {
	Category core.Category
	Offset   vmath.Vec2
	Cue      string
	Cooldown time.Duration
	Duration time.Duration
	Weight   float64 // applied to weighted effects, 0 uses the default
}

// DefaultActions returns the built-in attack and impact actions
func DefaultActions() []Action {
	return []Action{
		{
			Category: parameter.CategoryBasicAttack,
			Offset:   vmath.V2(0, parameter.BasicAttackOffsetY),
			Cue:      parameter.CueAttack,
			Cooldown: parameter.BasicAttackCooldown,
			Duration: parameter.BasicAttackDuration,
		},
		{
			Category: parameter.CategorySpecialAttack,
			Offset:   vmath.V2(parameter.SpecialAttackOffsetX, parameter.SpecialAttackOffsetY),
			Cue:      parameter.CueSpecial,
			Cooldown: parameter.SpecialAttackCooldown,
			Duration: parameter.SpecialAttackDuration,
		},
		{
			Category: parameter.CategoryImpact,
			Cue:      parameter.CueImpact,
			Duration: parameter.ImpactDuration,
		},
	}
}

func (a Action) weight() float64 {
	if a.Weight > 0 {
		return a.Weight
	}
	return parameter.DefaultVolumeWeight
}
