package model

import (
	"fmt"
	"math"
	"strings"
)

// Range is a closed numeric interval.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Scale multiplies both ends by f.
func (r Range) Scale(f float64) Range {
	return Range{Min: r.Min * f, Max: r.Max * f}
}

// Contains reports whether v lies within the interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// MaterialProperty holds the recommended cutting data for one workpiece material.
type MaterialProperty struct {
	Name                 string  `json:"name"`
	SurfaceFeetPerMinute float64 `json:"sfm"`            // Recommended cutting speed
	UnitHorsepower       float64 `json:"uhp"`            // hp per in^3/min removed
	FeedPerTooth         Range   `json:"feed_per_tooth"` // Chip load, inches/tooth
}

// Validate checks that the material can be used by the calculator.
func (m MaterialProperty) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrMaterial)
	}
	if !(m.SurfaceFeetPerMinute > 0) || math.IsInf(m.SurfaceFeetPerMinute, 0) {
		return fmt.Errorf("%w: %s: SFM must be > 0", ErrMaterial, m.Name)
	}
	if !(m.UnitHorsepower >= 0) || math.IsInf(m.UnitHorsepower, 0) {
		return fmt.Errorf("%w: %s: unit horsepower must be >= 0", ErrMaterial, m.Name)
	}
	ipt := m.FeedPerTooth
	if !(ipt.Min > 0) || !(ipt.Max >= ipt.Min) || math.IsInf(ipt.Max, 0) {
		return fmt.Errorf("%w: %s: feed per tooth range %g..%g", ErrMaterial, m.Name, ipt.Min, ipt.Max)
	}
	return nil
}

// Catalog is an immutable name -> material mapping. It keeps insertion order
// so selectors list materials the way they were defined.
type Catalog struct {
	byName map[string]MaterialProperty
	names  []string
}

// NewCatalog builds a catalog from the given materials. Names must be unique.
func NewCatalog(materials []MaterialProperty) (*Catalog, error) {
	c := &Catalog{
		byName: make(map[string]MaterialProperty, len(materials)),
		names:  make([]string, 0, len(materials)),
	}
	for _, m := range materials {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byName[m.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate material %q", ErrMaterial, m.Name)
		}
		c.byName[m.Name] = m
		c.names = append(c.names, m.Name)
	}
	return c, nil
}

// Lookup returns the material with the given name.
func (c *Catalog) Lookup(name string) (MaterialProperty, error) {
	m, ok := c.byName[name]
	if !ok {
		return MaterialProperty{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	return m, nil
}

// Names returns the material names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Materials returns all materials in catalog order.
func (c *Catalog) Materials() []MaterialProperty {
	out := make([]MaterialProperty, len(c.names))
	for i, n := range c.names {
		out[i] = c.byName[n]
	}
	return out
}

// Len returns the number of materials.
func (c *Catalog) Len() int {
	return len(c.names)
}

// ComputeDerived looks the material up by name and runs the calculator.
func (c *Catalog) ComputeDerived(name string, toolDiameter float64, flutes int, axialDOC, radialDOC float64) (DerivedResult, error) {
	m, err := c.Lookup(name)
	if err != nil {
		return DerivedResult{}, err
	}
	return ComputeDerived(m, toolDiameter, flutes, axialDOC, radialDOC)
}

// standardChipLoad is the chip load interval used by every built-in material.
var standardChipLoad = Range{Min: 0.005, Max: 0.01}

// DefaultFeedPerTooth returns the chip load assumed when a material does not specify one.
func DefaultFeedPerTooth() Range {
	return standardChipLoad
}

// defaultMaterials lists the built-in material table.
var defaultMaterials = []MaterialProperty{
	{Name: "Aluminum, 7075", SurfaceFeetPerMinute: 300, UnitHorsepower: 0.25, FeedPerTooth: standardChipLoad},
	{Name: "Aluminum, 6061", SurfaceFeetPerMinute: 280, UnitHorsepower: 0.25, FeedPerTooth: standardChipLoad},
	{Name: "Aluminum, 2024", SurfaceFeetPerMinute: 200, UnitHorsepower: 0.25, FeedPerTooth: standardChipLoad},
	{Name: "Aluminum, Cast", SurfaceFeetPerMinute: 134, UnitHorsepower: 0.25, FeedPerTooth: standardChipLoad},
	{Name: "Brass", SurfaceFeetPerMinute: 400, UnitHorsepower: 0.25, FeedPerTooth: standardChipLoad},
	{Name: "Bronze", SurfaceFeetPerMinute: 150, UnitHorsepower: 0.25, FeedPerTooth: standardChipLoad},
	{Name: "Copper", SurfaceFeetPerMinute: 100, UnitHorsepower: 0.25, FeedPerTooth: standardChipLoad},
	{Name: "Cast Iron (soft)", SurfaceFeetPerMinute: 80, UnitHorsepower: 0.25, FeedPerTooth: standardChipLoad},
	{Name: "Cast Iron (hard)", SurfaceFeetPerMinute: 50, UnitHorsepower: 0.25, FeedPerTooth: standardChipLoad},
	{Name: "Mild Steel", SurfaceFeetPerMinute: 90, UnitHorsepower: 1.4, FeedPerTooth: standardChipLoad},
	{Name: "Cast Steel", SurfaceFeetPerMinute: 80, UnitHorsepower: 2.5, FeedPerTooth: standardChipLoad},
	{Name: "Alloy Steels (hard)", SurfaceFeetPerMinute: 40, UnitHorsepower: 2.5, FeedPerTooth: standardChipLoad},
	{Name: "Tool Steel", SurfaceFeetPerMinute: 50, UnitHorsepower: 2.5, FeedPerTooth: standardChipLoad},
	{Name: "Stainless Steel", SurfaceFeetPerMinute: 60, UnitHorsepower: 2.5, FeedPerTooth: standardChipLoad},
}

// DefaultCatalog returns the built-in material catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultMaterials)
	if err != nil {
		panic(err) // built-in table is static
	}
	return c
}

// DefaultMaterialName is the material selected when nothing else is configured.
const DefaultMaterialName = "Aluminum, 7075"
