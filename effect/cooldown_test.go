package effect

import (
	"testing"
	"time"

	"github.com/t-barz/slimeking-sub004/spawn"
)

func TestCooldowns(t *testing.T) {
	c := NewCooldowns()
	if !c.Ready("a") {
		t.Fatal("Unstarted category not ready")
	}

	c.Start("a", 100*time.Millisecond)
	c.Start("b", 0)
	if c.Ready("a") || !c.Ready("b") {
		t.Fatal("Start did not gate correctly")
	}

	c.Tick(60 * time.Millisecond)
	if got := c.Remaining("a"); got != 40*time.Millisecond {
		t.Errorf("Remaining = %v, want 40ms", got)
	}

	c.Tick(-time.Second)
	if c.Remaining("a") != 40*time.Millisecond {
		t.Error("Negative tick changed remaining time")
	}

	c.Tick(40 * time.Millisecond)
	if !c.Ready("a") || c.Remaining("a") != 0 {
		t.Error("Cooldown did not expire")
	}

	c.Start("a", time.Second)
	c.Reset()
	if !c.Ready("a") {
		t.Error("Reset left a cooldown running")
	}
}

func TestAnchorMove(t *testing.T) {
	a := &Anchor{}
	a.Move(-1, 0)
	if a.Position().X != -1 || !a.Facing().Mirrored {
		t.Errorf("Anchor = %+v", *a)
	}

	// Screen down is world -y
	a.Move(0, 1)
	if a.Position().Y != -1 || a.Facing().Direction != spawn.Front {
		t.Errorf("Anchor after down = %+v", *a)
	}
}
