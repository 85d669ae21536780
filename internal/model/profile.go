package model

// GCodeProfile defines a post-processor dialect for different CNC controllers.
type GCodeProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Units       string `json:"units"` // "inches" or "mm"

	// Startup codes
	StartCode    []string `json:"start_code"`    // Commands at start of file
	SpindleStart string   `json:"spindle_start"` // Spindle on command (e.g., "M3 S%d"), empty to omit
	SpindleStop  string   `json:"spindle_stop"`  // Spindle off command

	// Motion words
	RapidMove string `json:"rapid_move"` // G0 or equivalent
	FeedMove  string `json:"feed_move"`  // G1 or equivalent

	// End codes
	EndCode []string `json:"end_code"` // Commands at end of file; [SafeZ] is substituted

	// Comment style
	CommentPrefix  string `json:"comment_prefix"`  // Comment start (e.g., "(" or "; ")
	CommentSuffix  string `json:"comment_suffix"`  // Comment end (e.g., ")")
	MotionComments bool   `json:"motion_comments"` // Trailing comment on every motion
	HeaderComments bool   `json:"header_comments"` // Job summary comment block at the top

	// Number formatting. SignificantDigits > 0 selects general (%g) formatting,
	// otherwise DecimalPlaces fixed decimals are used.
	DecimalPlaces     int `json:"decimal_places"`
	SignificantDigits int `json:"significant_digits"`

	IsBuiltIn bool `json:"-"`
}

// DefaultProfileName is the dialect of the classic facing generator output.
const DefaultProfileName = "Facing"

// Built-in GCode profiles
var GCodeProfiles = []GCodeProfile{
	{
		Name:              DefaultProfileName,
		Description:       "Minimal facing dialect: G20, G00/G01 with inline comments, M2",
		Units:             "inches",
		StartCode:         []string{"G20"},
		RapidMove:         "G00",
		FeedMove:          "G01",
		EndCode:           []string{"M2"},
		CommentPrefix:     "(",
		CommentSuffix:     ")",
		MotionComments:    true,
		SignificantDigits: 6,
		IsBuiltIn:         true,
	},
	{
		Name:           "Grbl",
		Description:    "Standard Grbl configuration (Arduino CNC shields)",
		Units:          "inches",
		StartCode:      []string{"G90", "G20", "G17"},
		SpindleStart:   "M3 S%d",
		SpindleStop:    "M5",
		RapidMove:      "G0",
		FeedMove:       "G1",
		EndCode:        []string{"G0 Z[SafeZ]", "M5", "M2"},
		CommentPrefix:  "; ",
		HeaderComments: true,
		DecimalPlaces:  4,
		IsBuiltIn:      true,
	},
	{
		Name:           "Mach3",
		Description:    "Mach3 CNC control software",
		Units:          "inches",
		StartCode:      []string{"G90", "G20", "G17", "G94"},
		SpindleStart:   "M3 S%d",
		SpindleStop:    "M5",
		RapidMove:      "G0",
		FeedMove:       "G1",
		EndCode:        []string{"G0 Z[SafeZ]", "M5", "M30"},
		CommentPrefix:  "(",
		CommentSuffix:  ")",
		HeaderComments: true,
		DecimalPlaces:  4,
		IsBuiltIn:      true,
	},
	{
		Name:           "LinuxCNC",
		Description:    "LinuxCNC (formerly EMC2)",
		Units:          "inches",
		StartCode:      []string{"G90", "G20", "G17", "G94"},
		SpindleStart:   "M3 S%d",
		SpindleStop:    "M5",
		RapidMove:      "G0",
		FeedMove:       "G1",
		EndCode:        []string{"G0 Z[SafeZ]", "M5", "M2"},
		CommentPrefix:  "(",
		CommentSuffix:  ")",
		MotionComments: true,
		HeaderComments: true,
		DecimalPlaces:  4,
		IsBuiltIn:      true,
	},
	{
		Name:           "Generic",
		Description:    "Generic standard GCode",
		Units:          "inches",
		StartCode:      []string{"G90", "G20"},
		SpindleStart:   "M3 S%d",
		SpindleStop:    "M5",
		RapidMove:      "G0",
		FeedMove:       "G1",
		EndCode:        []string{"G0 Z[SafeZ]", "M5", "M2"},
		CommentPrefix:  "; ",
		HeaderComments: true,
		DecimalPlaces:  4,
		IsBuiltIn:      true,
	},
}

// GetProfile returns a GCode profile by name, or the default facing profile if not found.
func GetProfile(name string) GCodeProfile {
	if p, ok := FindProfile(name, nil); ok {
		return p
	}
	return GCodeProfiles[0]
}

// FindProfile searches the built-in profiles, then the custom ones.
func FindProfile(name string, custom []GCodeProfile) (GCodeProfile, bool) {
	for _, p := range GCodeProfiles {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range custom {
		if p.Name == name {
			return p, true
		}
	}
	return GCodeProfile{}, false
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames(custom []GCodeProfile) []string {
	var names []string
	for _, p := range GCodeProfiles {
		names = append(names, p.Name)
	}
	for _, p := range custom {
		names = append(names, p.Name)
	}
	return names
}
