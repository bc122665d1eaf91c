package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/nutrilife/backend/internal/nutrition"
)

// StaticTargets serves the same daily targets to every user.
type StaticTargets struct {
	Values nutrition.NutritionTargets
}

var _ TargetsSource = StaticTargets{}

func NewDefaultTargets() StaticTargets {
	return StaticTargets{Values: nutrition.DefaultTargets}
}

func (t StaticTargets) Targets(context.Context, uuid.UUID) (nutrition.NutritionTargets, error) {
	return t.Values, nil
}
