package services

// LimitMode selects how the per-question maximum is resolved.
type LimitMode string

const (
	// LimitNone applies no maximum to any question.
	LimitNone LimitMode = "none"
	// LimitUniform applies the same maximum to every question.
	LimitUniform LimitMode = "uniform"
	// LimitPerQuestion applies an individual, possibly absent, maximum per question.
	LimitPerQuestion LimitMode = "per_question"
)

// LimitPolicy resolves the effective maximum character count per question.
// The minimum is a property of the question itself (QuestionDefinition.MinChars),
// the maximum a property of session configuration. Maxima are recomputed from
// the current policy on every validation, so reconfiguring mid-session affects
// only questions not yet submitted.
type LimitPolicy struct {
	Mode        LimitMode `json:"mode"`
	Uniform     int       `json:"uniform,omitempty"`
	PerQuestion []*int    `json:"per_question,omitempty"`
}

func UnlimitedPolicy() LimitPolicy { return LimitPolicy{Mode: LimitNone} }

func UniformPolicy(max int) LimitPolicy { return LimitPolicy{Mode: LimitUniform, Uniform: max} }

func PerQuestionPolicy(maxima []*int) LimitPolicy {
	return LimitPolicy{Mode: LimitPerQuestion, PerQuestion: maxima}
}

// EffectiveMax returns the maximum in force for the question at index, and
// false when that question is unlimited.
func (p LimitPolicy) EffectiveMax(index int) (int, bool) {
	switch p.Mode {
	case LimitUniform:
		return p.Uniform, true
	case LimitPerQuestion:
		if index < 0 || index >= len(p.PerQuestion) || p.PerQuestion[index] == nil {
			return 0, false
		}
		return *p.PerQuestion[index], true
	default:
		return 0, false
	}
}

// Validate rejects configurations that cannot apply to a catalog of the
// given length.
func (p LimitPolicy) Validate(catalogLen int) error {
	switch p.Mode {
	case LimitNone:
		return nil
	case LimitUniform:
		if p.Uniform <= 0 {
			return NewInvalidError("uniform limit must be positive")
		}
		return nil
	case LimitPerQuestion:
		if len(p.PerQuestion) != catalogLen {
			return NewInvalidError("per-question limits must cover every question")
		}
		for _, m := range p.PerQuestion {
			if m != nil && *m <= 0 {
				return NewInvalidError("per-question limit must be positive")
			}
		}
		return nil
	default:
		return NewInvalidError("unknown limit mode")
	}
}
