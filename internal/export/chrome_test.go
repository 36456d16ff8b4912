package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestPrintHTMLToPDF_NoChrome(t *testing.T) {
	if DetectChromePath() != "" {
		t.Skip("chrome is installed")
	}
	_, err := PrintHTMLToPDF(context.Background(), "<html></html>", "")
	if !errors.Is(err, ErrNoChrome) {
		t.Fatalf("expected ErrNoChrome, got %v", err)
	}
}

func TestPrintPlan(t *testing.T) {
	path := DetectChromePath()
	if path == "" {
		t.Skip("chrome not installed")
	}
	pdf, err := PrintPlan(context.Background(), buildTestPlan(), DefaultOptions(), path)
	if err != nil {
		t.Fatalf("PrintPlan returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}
