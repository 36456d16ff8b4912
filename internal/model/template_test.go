package model

import (
	"testing"
)

func frameJob() Job {
	job := NewJob()
	job.Settings.KerfWidth = 0.3
	job.Stocks = []RodSpec{NewRodSpec("Profile 650", 650, 6)}
	job.Cuts = []RodSpec{
		NewRodSpec("Head", 120, 2),
		NewRodSpec("Jamb", 210, 2),
	}
	job.Leftovers = []RodSpec{NewRodSpec("", 180, 1)}
	return job
}

func TestNewJobTemplate(t *testing.T) {
	tmpl := NewJobTemplate("Window 120x210", "Standard casement frame", frameJob())

	if tmpl.Name != "Window 120x210" {
		t.Errorf("expected name 'Window 120x210', got %q", tmpl.Name)
	}
	if tmpl.ID == "" {
		t.Error("expected non-empty ID")
	}
	if tmpl.CreatedAt == "" || tmpl.CreatedAt != tmpl.UpdatedAt {
		t.Errorf("expected equal non-empty timestamps, got %q / %q", tmpl.CreatedAt, tmpl.UpdatedAt)
	}
	if len(tmpl.Cuts) != 2 {
		t.Errorf("expected 2 cuts, got %d", len(tmpl.Cuts))
	}
	if len(tmpl.Stocks) != 1 {
		t.Errorf("expected 1 stock, got %d", len(tmpl.Stocks))
	}
	if tmpl.Settings.KerfWidth != 0.3 {
		t.Errorf("expected kerf 0.3, got %v", tmpl.Settings.KerfWidth)
	}
}

func TestJobTemplate_ToJob(t *testing.T) {
	tmpl := NewJobTemplate("Frame", "", frameJob())
	job := tmpl.ToJob("Order 17")

	if job.Name != "Order 17" {
		t.Errorf("expected job name 'Order 17', got %q", job.Name)
	}
	if len(job.Cuts) != 2 || job.Cuts[1].Label != "Jamb" {
		t.Fatalf("unexpected cuts %+v", job.Cuts)
	}
	if job.Cuts[0].ID == tmpl.Cuts[0].ID {
		t.Error("expected the job's cuts to get fresh IDs")
	}
	if len(job.Leftovers) != 0 {
		t.Errorf("templates carry no leftovers, got %d", len(job.Leftovers))
	}
	if job.Result != nil {
		t.Error("expected no result on a new job")
	}
	if job.Settings.KerfWidth != 0.3 {
		t.Errorf("expected kerf 0.3, got %v", job.Settings.KerfWidth)
	}
}

func TestJobTemplate_Scaled(t *testing.T) {
	tmpl := NewJobTemplate("Frame", "", frameJob())
	scaled := tmpl.Scaled(5)

	if scaled.Cuts[0].Quantity != 10 || scaled.Cuts[1].Quantity != 10 {
		t.Errorf("expected quantities of 10, got %+v", scaled.Cuts)
	}
	if tmpl.Cuts[0].Quantity != 2 {
		t.Error("scaling must not modify the original template")
	}
}

func TestTemplateStore_AddRemoveFind(t *testing.T) {
	store := NewTemplateStore()
	a := NewJobTemplate("A", "", frameJob())
	b := NewJobTemplate("B", "", frameJob())
	store.Add(a)
	store.Add(b)

	if len(store.Names()) != 2 || store.Names()[1] != "B" {
		t.Errorf("unexpected names %v", store.Names())
	}
	if found := store.FindByID(a.ID); found == nil || found.Name != "A" {
		t.Error("expected to find template A by ID")
	}
	if found := store.FindByName("B"); found == nil || found.ID != b.ID {
		t.Error("expected to find template B by name")
	}
	if !store.Remove(a.ID) {
		t.Error("expected Remove to succeed")
	}
	if store.Remove(a.ID) {
		t.Error("expected second Remove to fail")
	}
	if store.FindByName("A") != nil {
		t.Error("template A should be gone")
	}
}

func TestNewJobTemplate_NilSlices(t *testing.T) {
	job := NewJob()
	job.Stocks = nil
	job.Cuts = nil
	tmpl := NewJobTemplate("Empty", "", job)

	if tmpl.Stocks == nil || tmpl.Cuts == nil {
		t.Error("expected empty, non-nil slices")
	}
}
