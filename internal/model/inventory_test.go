package model

import (
	"testing"
)

func TestNewToolProfile(t *testing.T) {
	tp := NewToolProfile("Face Mill", 2.0, 4, 1.4, 0.04)
	if len(tp.ID) != 8 {
		t.Errorf("expected 8 character ID, got %q", tp.ID)
	}
	if tp.Name != "Face Mill" {
		t.Errorf("expected name 'Face Mill', got %s", tp.Name)
	}
	if tp.Flutes != 4 {
		t.Errorf("expected 4 flutes, got %d", tp.Flutes)
	}
}

func TestToolProfileApplyToParameters(t *testing.T) {
	tp := NewToolProfile("1/2 End Mill", 0.5, 4, 0, 0.1)
	p := tp.ApplyToParameters(DefaultParameters())

	if p.ToolDiameter != 0.5 {
		t.Errorf("expected diameter 0.5, got %f", p.ToolDiameter)
	}
	if p.Flutes != 4 {
		t.Errorf("expected 4 flutes, got %d", p.Flutes)
	}
	if p.RadialDepth != DefaultRadialDepth(0.5) {
		t.Errorf("expected derived radial depth %f, got %f", DefaultRadialDepth(0.5), p.RadialDepth)
	}
	if p.AxialDepth != 0.1 {
		t.Errorf("expected axial depth 0.1, got %f", p.AxialDepth)
	}
	if p.Boundary != DefaultParameters().Boundary {
		t.Error("boundary should be left untouched")
	}
}

func TestToolProfileKeepsAxialDepthWhenUnset(t *testing.T) {
	tp := NewToolProfile("Fly Cutter", 2.5, 1, 0.8, 0)
	p := tp.ApplyToParameters(DefaultParameters())
	if p.AxialDepth != 1.0/16.0 {
		t.Errorf("expected axial depth to stay 1/16, got %f", p.AxialDepth)
	}
	if p.RadialDepth != 0.8 {
		t.Errorf("expected radial depth 0.8, got %f", p.RadialDepth)
	}
}

func TestDefaultInventory(t *testing.T) {
	inv := DefaultInventory()
	if len(inv.Tools) == 0 {
		t.Fatal("expected default tools")
	}

	seen := map[string]bool{}
	for _, tool := range inv.Tools {
		if seen[tool.ID] {
			t.Errorf("duplicate tool ID %s", tool.ID)
		}
		seen[tool.ID] = true
		if tool.ToolDiameter <= 0 || tool.Flutes <= 0 {
			t.Errorf("invalid default tool %+v", tool)
		}
	}
}

func TestInventoryFindAndRemove(t *testing.T) {
	inv := DefaultInventory()
	first := inv.Tools[0]

	if got := inv.FindToolByID(first.ID); got == nil || got.Name != first.Name {
		t.Errorf("FindToolByID did not return %s", first.Name)
	}
	if got := inv.FindToolByName(first.Name); got == nil || got.ID != first.ID {
		t.Errorf("FindToolByName did not return %s", first.ID)
	}
	if inv.FindToolByID("missing") != nil {
		t.Error("expected nil for unknown ID")
	}

	count := len(inv.Tools)
	if !inv.RemoveTool(first.ID) {
		t.Fatal("expected tool to be removed")
	}
	if len(inv.Tools) != count-1 {
		t.Errorf("expected %d tools, got %d", count-1, len(inv.Tools))
	}
	if inv.RemoveTool(first.ID) {
		t.Error("second removal should report false")
	}
	if len(inv.ToolNames()) != len(inv.Tools) {
		t.Error("ToolNames length mismatch")
	}
}
