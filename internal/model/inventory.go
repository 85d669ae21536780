package model

import "github.com/google/uuid"

// ToolProfile represents a reusable face mill or end mill configuration.
type ToolProfile struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ToolDiameter float64 `json:"tool_diameter"` // inches
	Flutes       int     `json:"flutes"`
	RadialDepth  float64 `json:"radial_depth"` // 0 = derive from diameter
	AxialDepth   float64 `json:"axial_depth"`
}

// NewToolProfile creates a new ToolProfile with a generated ID.
func NewToolProfile(name string, diameter float64, flutes int, radialDepth, axialDepth float64) ToolProfile {
	return ToolProfile{
		ID:           uuid.New().String()[:8],
		Name:         name,
		ToolDiameter: diameter,
		Flutes:       flutes,
		RadialDepth:  radialDepth,
		AxialDepth:   axialDepth,
	}
}

// ApplyToParameters copies this tool's data into p and returns the result.
func (tp ToolProfile) ApplyToParameters(p CuttingParameters) CuttingParameters {
	p.ToolDiameter = tp.ToolDiameter
	p.Flutes = tp.Flutes
	p.RadialDepth = tp.RadialDepth
	if p.RadialDepth <= 0 {
		p.RadialDepth = DefaultRadialDepth(tp.ToolDiameter)
	}
	if tp.AxialDepth > 0 {
		p.AxialDepth = tp.AxialDepth
	}
	return p
}

// Inventory holds the user's saved tools.
type Inventory struct {
	Tools []ToolProfile `json:"tools"`
}

// DefaultInventory returns an inventory populated with common cutters.
func DefaultInventory() Inventory {
	return Inventory{
		Tools: []ToolProfile{
			NewToolProfile("1/4\" 2FL End Mill", 0.25, 2, 0, 1.0/16.0),
			NewToolProfile("3/8\" 3FL End Mill", 0.375, 3, 0, 1.0/16.0),
			NewToolProfile("1/2\" 4FL End Mill", 0.5, 4, 0, 1.0/10.0),
			NewToolProfile("2\" 4 Insert Face Mill", 2.0, 4, 1.4, 1.0/25.0),
			NewToolProfile("3\" 6 Insert Face Mill", 3.0, 6, 2.1, 1.0/25.0),
		},
	}
}

// FindToolByID returns a pointer to the tool with the given ID, or nil.
func (inv *Inventory) FindToolByID(id string) *ToolProfile {
	for i := range inv.Tools {
		if inv.Tools[i].ID == id {
			return &inv.Tools[i]
		}
	}
	return nil
}

// FindToolByName returns a pointer to the first tool with the given name, or nil.
func (inv *Inventory) FindToolByName(name string) *ToolProfile {
	for i := range inv.Tools {
		if inv.Tools[i].Name == name {
			return &inv.Tools[i]
		}
	}
	return nil
}

// ToolNames returns a list of tool profile names for UI dropdowns.
func (inv *Inventory) ToolNames() []string {
	names := make([]string, len(inv.Tools))
	for i, t := range inv.Tools {
		names[i] = t.Name
	}
	return names
}

// RemoveTool deletes the tool with the given ID. It reports whether a tool was removed.
func (inv *Inventory) RemoveTool(id string) bool {
	for i := range inv.Tools {
		if inv.Tools[i].ID == id {
			inv.Tools = append(inv.Tools[:i], inv.Tools[i+1:]...)
			return true
		}
	}
	return false
}
