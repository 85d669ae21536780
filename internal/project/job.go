package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/facer/internal/model"
	"gopkg.in/yaml.v2"
)

// JobExtension is the file extension of saved facing jobs.
const JobExtension = ".facer.yaml"

// SaveJob writes a job to path as YAML.
func SaveJob(path string, job model.Job) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(job)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrSerialization, err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJob reads a YAML job file. Unknown keys are rejected. Parameters
// missing from the file keep their defaults.
func LoadJob(path string) (model.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, err
	}
	return DecodeJob(data)
}

// DecodeJob parses a YAML job document.
func DecodeJob(data []byte) (model.Job, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.Job{}, fmt.Errorf("%w: empty job file", model.ErrSerialization)
	}
	job := model.NewJob()
	if err := yaml.UnmarshalStrict(data, &job); err != nil {
		return model.Job{}, fmt.Errorf("%w: %v", model.ErrSerialization, err)
	}
	if _, err := model.ParseStepPolicy(string(job.Parameters.RowStep)); err != nil {
		return model.Job{}, err
	}
	return job, nil
}
