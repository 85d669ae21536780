package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/facer/internal/model"
)

// DefaultProfilesPath returns the default file path for custom profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.GCodeProfile) error {
	return writeJSON(path, profiles)
}

// LoadCustomProfiles loads custom profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.GCodeProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.GCodeProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.GCodeProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrSerialization, path, err)
	}
	return profiles, nil
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.GCodeProfile) error {
	return writeJSON(path, profile)
}

// ImportProfile imports a single profile from a JSON file. The profile must
// have a name that does not shadow a built-in dialect.
func ImportProfile(path string) (model.GCodeProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.GCodeProfile{}, err
	}

	var profile model.GCodeProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.GCodeProfile{}, fmt.Errorf("%w: %s: %v", model.ErrSerialization, path, err)
	}

	if profile.Name == "" {
		return model.GCodeProfile{}, errors.New("imported profile has no name")
	}
	for _, builtin := range model.GCodeProfiles {
		if builtin.Name == profile.Name {
			return model.GCodeProfile{}, fmt.Errorf("imported profile %q conflicts with a built-in profile", profile.Name)
		}
	}
	return profile, nil
}

// AddCustomProfile returns profiles with p appended, replacing any custom
// profile of the same name.
func AddCustomProfile(profiles []model.GCodeProfile, p model.GCodeProfile) []model.GCodeProfile {
	out := make([]model.GCodeProfile, 0, len(profiles)+1)
	for _, existing := range profiles {
		if existing.Name != p.Name {
			out = append(out, existing)
		}
	}
	return append(out, p)
}
