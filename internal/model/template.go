package model

import (
	"time"

	"github.com/google/uuid"
)

// JobTemplate is a reusable cut list: the stock, cuts and settings of a job
// without its leftovers or result. A workshop keeps one per recurring
// product, e.g. a standard window frame.
type JobTemplate struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	Stocks      []RodSpec   `json:"stocks"`
	Cuts        []RodSpec   `json:"cuts"`
	Settings    CutSettings `json:"settings"`
}

// NewJobTemplate captures a job as a template.
func NewJobTemplate(name, description string, job Job) JobTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return JobTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Stocks:      copyRods(job.Stocks),
		Cuts:        copyRods(job.Cuts),
		Settings:    job.Settings,
	}
}

// ToJob creates a new job from this template. Rods get fresh IDs so the job
// is independent of the template.
func (t JobTemplate) ToJob(name string) Job {
	job := NewJob()
	job.Name = name
	job.Settings = t.Settings
	job.Stocks = renewRods(t.Stocks)
	job.Cuts = renewRods(t.Cuts)
	return job
}

// Scaled returns the template with every cut quantity multiplied by n, for
// building n units of the product in one job.
func (t JobTemplate) Scaled(n int) JobTemplate {
	out := t
	out.Cuts = copyRods(t.Cuts)
	for i := range out.Cuts {
		out.Cuts[i].Quantity *= n
	}
	return out
}

// TemplateStore holds a collection of job templates.
type TemplateStore struct {
	Templates []JobTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []JobTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t JobTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *JobTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *JobTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

func copyRods(rods []RodSpec) []RodSpec {
	if rods == nil {
		return []RodSpec{}
	}
	cp := make([]RodSpec, len(rods))
	copy(cp, rods)
	return cp
}

func renewRods(rods []RodSpec) []RodSpec {
	out := make([]RodSpec, len(rods))
	for i, r := range rods {
		out[i] = NewRodSpec(r.Label, r.Length, r.Quantity)
	}
	return out
}
