package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/piwi3910/RodCut/internal/model"
)

// ErrNoCuts is returned when loading a job file without required cuts.
var ErrNoCuts = errors.New("job has no required cuts")

// SaveJob writes a job, including its last result if any, as JSON.
func SaveJob(path string, job model.Job) error {
	if err := writeJSON(path, job); err != nil {
		return fmt.Errorf("save job %s: %w", path, err)
	}
	return nil
}

// LoadJob reads a job file. Missing settings fields take the defaults and
// nil rod lists become empty.
func LoadJob(path string) (model.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, fmt.Errorf("load job: %w", err)
	}

	job := model.Job{Settings: model.DefaultSettings(), Unit: "cm"}
	if err := json.Unmarshal(data, &job); err != nil {
		return model.Job{}, fmt.Errorf("parse job %s: %w", path, err)
	}
	if len(job.Cuts) == 0 {
		return model.Job{}, fmt.Errorf("load job %s: %w", path, ErrNoCuts)
	}
	if job.Stocks == nil {
		job.Stocks = []model.RodSpec{}
	}
	if job.Leftovers == nil {
		job.Leftovers = []model.RodSpec{}
	}
	return job, nil
}
