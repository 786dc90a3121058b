package pool

import (
	"testing"
	"time"

	"github.com/olekukonko/errors"

	"github.com/t-barz/slimeking-sub004/parameter"
)

func TestBlueprintValidate(t *testing.T) {
	tests := []struct {
		name    string
		bp      Blueprint
		wantErr bool
	}{
		{"valid", slash, false},
		{"no parts", Blueprint{Label: "bare"}, false},
		{"empty label", Blueprint{Parts: []string{PartFront}}, true},
		{"negative emitters", Blueprint{Label: "x", Emitters: -1}, true},
		{"empty part", Blueprint{Label: "x", Parts: []string{""}}, true},
		{"duplicate part", Blueprint{Label: "x", Parts: []string{PartSide, PartSide}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bp.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTemplate) {
					t.Errorf("Expected ErrInvalidTemplate, got %v", err)
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestBlueprintInstantiate(t *testing.T) {
	inst, err := slash.Instantiate()
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	if inst.Template() != "slash" {
		t.Errorf("Template = %q", inst.Template())
	}
	if len(inst.Visuals()) != 3 || inst.Visual(PartSide) == nil {
		t.Errorf("Expected front/back/side visuals, got %+v", inst.Visuals())
	}
	if len(inst.Behaviours()) != 1 {
		t.Errorf("Expected 1 emitter, got %d", len(inst.Behaviours()))
	}
	if !inst.SupportsWeight() {
		t.Error("Weighted blueprint should support weight")
	}
	if !inst.IsCanonical() {
		t.Error("Fresh instance not canonical")
	}
	if inst.Visual("missing") != nil {
		t.Error("Visual returned a part that does not exist")
	}
}

func TestInstanceWithoutVolume(t *testing.T) {
	inst := NewInstance("plain", []string{PartFront}, nil, nil)
	if inst.SupportsWeight() {
		t.Error("Instance without volume reports weight support")
	}
	inst.SetWeight(1)
	inst.Reset()
	if !inst.IsCanonical() {
		t.Error("Reset instance not canonical")
	}
}

func TestInstanceAdvance(t *testing.T) {
	inst := NewInstance("plain", nil, nil, nil)
	inst.Advance(10)
	if inst.Elapsed != 0 {
		t.Error("Advance moved a stopped instance")
	}
	inst.Play()
	inst.Advance(10)
	inst.Advance(-5)
	if inst.Elapsed != 10 {
		t.Errorf("Elapsed = %v, want 10", inst.Elapsed)
	}
}

func TestAdvanceStepsEmitters(t *testing.T) {
	e := &Emitter{}
	inst := NewInstance("spark", nil, []Behaviour{e}, nil)

	inst.Advance(5 * parameter.EmitInterval)
	if e.Emitted() != 0 {
		t.Error("Emitter stepped before Play")
	}

	inst.Play()
	inst.Advance(parameter.EmitInterval*2 + parameter.EmitInterval/2)
	if e.Emitted() != 2 {
		t.Errorf("Emitted = %d, want 2", e.Emitted())
	}
	inst.Advance(parameter.EmitInterval / 2)
	if e.Emitted() != 3 {
		t.Errorf("Emitted = %d after carry, want 3", e.Emitted())
	}

	inst.Reset()
	if e.Emitted() != 0 || !inst.IsCanonical() {
		t.Error("Reset left emitter state behind")
	}
	inst.Play()
	inst.Advance(parameter.EmitInterval - time.Nanosecond)
	if e.Emitted() != 0 {
		t.Error("Carry survived Reset")
	}
}

func TestVolumeClampsWeight(t *testing.T) {
	v := &Volume{}
	for _, tc := range []struct{ in, want float64 }{
		{-1, 0}, {0.25, 0.25}, {3, 1},
	} {
		v.SetWeight(tc.in)
		if v.Weight() != tc.want {
			t.Errorf("SetWeight(%v) -> %v, want %v", tc.in, v.Weight(), tc.want)
		}
	}
}

func TestEmitterIgnoresWhileStopped(t *testing.T) {
	e := &Emitter{}
	e.Emit(3)
	if e.Emitted() != 0 {
		t.Error("Stopped emitter emitted")
	}
	e.Play()
	e.Emit(3)
	e.Stop()
	e.Emit(3)
	if e.Emitted() != 3 {
		t.Errorf("Emitted = %d, want 3", e.Emitted())
	}
	e.Clear()
	if e.Emitted() != 0 {
		t.Error("Clear did not reset count")
	}
}

func TestStateString(t *testing.T) {
	if StateIdle.String() != "idle" || StateActive.String() != "active" || State(9).String() != "unknown" {
		t.Error("Unexpected State strings")
	}
}
