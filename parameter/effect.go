package parameter

import "time"

// Built-in effect categories
const (
	CategoryBasicAttack   = "basic_attack"
	CategorySpecialAttack = "special_attack"
	CategoryImpact        = "impact_effect"
)

// Basic attack
const (
	BasicAttackCooldown = 300 * time.Millisecond
	BasicAttackDuration = 250 * time.Millisecond
	BasicAttackOffsetY  = 1.0
)

// Special attack
const (
	SpecialAttackCooldown = 1200 * time.Millisecond
	SpecialAttackDuration = 600 * time.Millisecond
	SpecialAttackOffsetX  = 2.0
	SpecialAttackOffsetY  = 1.0
)

// Impact effect has no cooldown, every hit spawns one
const (
	ImpactDuration = 150 * time.Millisecond
)

// Cue names signalled on trigger
const (
	CueAttack  = "attack"
	CueSpecial = "special"
	CueImpact  = "impact"
)

// ExhaustedWarnInterval throttles the pool-exhausted performance warning
const ExhaustedWarnInterval = 2 * time.Second

// DefaultVolumeWeight is applied to weighted effects on spawn
const DefaultVolumeWeight = 1.0
