package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new jobs
	DefaultMaterial   string            `json:"default_material"`
	DefaultProfile    string            `json:"default_profile"`
	DefaultParameters CuttingParameters `json:"default_parameters"`

	// Custom material catalog (CSV or XLSX); empty = built-in table
	CatalogPath string `json:"catalog_path"`

	// Application preferences
	RecentJobs []string `json:"recent_jobs"`
	Theme      string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with the form defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultMaterial:   DefaultMaterialName,
		DefaultProfile:    DefaultProfileName,
		DefaultParameters: DefaultParameters(),
		RecentJobs:        []string{},
		Theme:             "system",
	}
}

// NewJob creates a job that inherits the user's saved defaults.
func (c AppConfig) NewJob() Job {
	job := NewJob()
	if c.DefaultMaterial != "" {
		job.Material = c.DefaultMaterial
	}
	if c.DefaultProfile != "" {
		job.Profile = c.DefaultProfile
	}
	if c.DefaultParameters.ToolDiameter > 0 {
		job.Parameters = c.DefaultParameters
	}
	return job
}

// maxRecentJobs bounds the recent files list.
const maxRecentJobs = 10

// AddRecentJob moves path to the front of the recent list.
func (c *AppConfig) AddRecentJob(path string) {
	recent := []string{path}
	for _, p := range c.RecentJobs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentJobs {
		recent = recent[:maxRecentJobs]
	}
	c.RecentJobs = recent
}
