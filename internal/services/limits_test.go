package services

import "testing"

func intPtr(v int) *int { return &v }

func TestUnlimitedPolicy(t *testing.T) {
	p := UnlimitedPolicy()
	if _, ok := p.EffectiveMax(0); ok {
		t.Fatalf("unlimited policy returned a maximum")
	}
	if err := p.Validate(3); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestUniformPolicy(t *testing.T) {
	p := UniformPolicy(400)
	for _, i := range []int{0, 1, 7} {
		max, ok := p.EffectiveMax(i)
		if !ok || max != 400 {
			t.Fatalf("EffectiveMax(%d) = %d,%v", i, max, ok)
		}
	}
	if err := UniformPolicy(0).Validate(3); err == nil {
		t.Fatalf("expected error for non-positive uniform limit")
	}
}

func TestPerQuestionPolicy(t *testing.T) {
	p := PerQuestionPolicy([]*int{intPtr(100), nil, intPtr(400)})
	if max, ok := p.EffectiveMax(0); !ok || max != 100 {
		t.Fatalf("EffectiveMax(0) = %d,%v", max, ok)
	}
	if _, ok := p.EffectiveMax(1); ok {
		t.Fatalf("expected question 1 to be unlimited")
	}
	if max, ok := p.EffectiveMax(2); !ok || max != 400 {
		t.Fatalf("EffectiveMax(2) = %d,%v", max, ok)
	}
	if err := p.Validate(3); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := p.Validate(4); err == nil {
		t.Fatalf("expected error for length mismatch")
	}
	if err := PerQuestionPolicy([]*int{intPtr(-1)}).Validate(1); err == nil {
		t.Fatalf("expected error for negative limit")
	}
}
