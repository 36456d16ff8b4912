package importer

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Label,Length,Qty\nRail,55.5,4\nPost,120,2\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_SemicolonWithDecimalComma(t *testing.T) {
	data := []byte("Label;Length;Qty\nRail;55,5;4\nPost;120;2\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Label\tLength\tQty\nRail\t55.5\t4\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Label|Length|Qty\nRail|55.5|4\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Label", "Length", "Quantity"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Label != 0 || mapping.Length != 1 || mapping.Quantity != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"QTY", " Cut Length ", "Profile"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Quantity != 0 || mapping.Length != 1 || mapping.Label != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_Arabic(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"الطول", "الكمية"})
	if !isHeader {
		t.Fatal("expected Arabic header to be detected")
	}
	if mapping.Length != 0 || mapping.Quantity != 1 || mapping.Label != -1 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Rail", "55.5", "4"})
	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Label != 0 || mapping.Length != 1 || mapping.Quantity != 2 {
		t.Errorf("unexpected positional mapping %+v", mapping)
	}

	mapping, _ = DetectColumns([]string{"55.5", "4"})
	if mapping.Label != -1 || mapping.Length != 0 || mapping.Quantity != 1 {
		t.Errorf("unexpected two-column mapping %+v", mapping)
	}
}

// ─── ParseLength Tests ─────────────────────────────────────

func TestParseLength(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"55.5", 55.5, false},
		{"55,5", 55.5, false},
		{" 600 ", 600, false},
		{"0.125", 0.125, false},
		{"1,234.5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLength(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLength(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLength(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	if n, err := parseQuantity("3"); err != nil || n != 3 {
		t.Errorf("expected 3, got %d (%v)", n, err)
	}
	if n, err := parseQuantity("4.0"); err != nil || n != 4 {
		t.Errorf("expected 4, got %d (%v)", n, err)
	}
	if _, err := parseQuantity("2.5"); err == nil {
		t.Error("expected error for fractional quantity")
	}
}

// ─── CSV Reader Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label,Length,Qty\nRail,55.5,4\nPost,120,2\n"), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rods) != 2 {
		t.Fatalf("expected 2 rods, got %d", len(result.Rods))
	}
	r := result.Rods[0]
	if r.Label != "Rail" || r.Length != 55.5 || r.Quantity != 4 {
		t.Errorf("unexpected first rod %+v", r)
	}
	if r.ID == "" {
		t.Error("expected imported rod to have an ID")
	}
	if !result.OK() {
		t.Error("expected OK result")
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("600,10\n650,5\n"), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rods) != 2 {
		t.Fatalf("expected 2 rods, got %d", len(result.Rods))
	}
	if result.Rods[1].Length != 650 || result.Rods[1].Quantity != 5 {
		t.Errorf("unexpected rod %+v", result.Rods[1])
	}
}

func TestImportCSVFromReader_DecimalComma(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label;Length;Qty\nRail;55,5;50\n"), ';')

	if len(result.Rods) != 1 {
		t.Fatalf("expected 1 rod, got %d (errors %v)", len(result.Rods), result.Errors)
	}
	if result.Rods[0].Length != 55.5 {
		t.Errorf("expected 55.5, got %v", result.Rods[0].Length)
	}
}

func TestImportCSVFromReader_UnknownHeaderSkipped(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Foo,Bar,Baz\nRail,55.5,4\n"), ',')

	if len(result.Rods) != 1 {
		t.Fatalf("expected 1 rod, got %d", len(result.Rods))
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "header") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected header warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingQuantityDefaultsToOne(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label,Length,Qty\nRail,55.5,\n"), ',')

	if len(result.Rods) != 1 || result.Rods[0].Quantity != 1 {
		t.Fatalf("expected one rod with quantity 1, got %+v", result.Rods)
	}
	if len(result.Warnings) < 2 {
		t.Errorf("expected a defaulting warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_InvalidRows(t *testing.T) {
	input := "Label,Length,Qty\n" +
		"Good,100,1\n" +
		"BadLength,abc,1\n" +
		"BadQty,100,x\n" +
		"Negative,-5,1\n" +
		"Zero,100,0\n" +
		",,\n" +
		"Good2,200,2\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Rods) != 2 {
		t.Errorf("expected 2 valid rods, got %d", len(result.Rods))
	}
	if len(result.Errors) != 4 {
		t.Errorf("expected 4 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if result.OK() {
		t.Error("result with errors should not be OK")
	}
	if !strings.HasPrefix(result.Errors[0], "Line 3:") {
		t.Errorf("expected error to name line 3, got %q", result.Errors[0])
	}
}

func TestImportCSVFromReader_MissingLengthColumn(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label,Qty\nRail,4\n"), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Length") {
		t.Errorf("expected missing Length column error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyAndHeaderOnly(t *testing.T) {
	if result := ImportCSVFromReader(strings.NewReader(""), ','); len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
	if result := ImportCSVFromReader(strings.NewReader("Label,Length,Qty\n"), ','); len(result.Errors) == 0 {
		t.Error("expected error for header-only input")
	}
}

func TestImportCSVFromReader_Comments(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("# stock for job 12\n600,10\n"), ',')
	if len(result.Rods) != 1 {
		t.Fatalf("expected 1 rod, got %d (errors %v)", len(result.Rods), result.Errors)
	}
}

// ─── File Import Tests ─────────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cuts.csv")
	content := "Label;Length;Quantity\nRail;55,5;4\nPost;120;2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rods) != 2 {
		t.Fatalf("expected 2 rods, got %d", len(result.Rods))
	}
	if result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("expected delimiter warning first, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/cuts.csv")
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportCSV(path)
	if len(result.Errors) != 1 || result.Errors[0] != "File is empty" {
		t.Errorf("expected 'File is empty', got %v", result.Errors)
	}
}

func createTestExcel(t *testing.T, rows [][]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rods.xlsx")

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("failed to write row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]any{
		{"Name", "Length", "Qty"},
		{"Rail", 55.5, 4},
		{"Post", 120, 2},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rods) != 2 {
		t.Fatalf("expected 2 rods, got %d", len(result.Rods))
	}
	if result.Rods[0].Length != 55.5 || result.Rods[0].Quantity != 4 {
		t.Errorf("unexpected rod %+v", result.Rods[0])
	}
	if !strings.HasPrefix(result.Warnings[0], "Detected header") {
		t.Errorf("expected header warning, got %v", result.Warnings)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]any{{600, 10}, {650, 3}})

	result := ImportExcel(path)
	if len(result.Rods) != 2 {
		t.Fatalf("expected 2 rods, got %d (errors %v)", len(result.Rods), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/rods.xlsx")
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportFile_Dispatch(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "STOCK.CSV")
	if err := os.WriteFile(csvPath, []byte("600,10\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if result := ImportFile(csvPath); len(result.Rods) != 1 {
		t.Errorf("expected CSV import, got %+v", result)
	}

	result := ImportFile(filepath.Join(dir, "rods.pdf"))
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Unsupported") {
		t.Errorf("expected unsupported type error, got %v", result.Errors)
	}
}

func TestMerge(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("A,55.5,2\nB,120,1\nC,55.5,3\n"), ',')
	merged := Merge(result.Rods)

	if len(merged) != 2 {
		t.Fatalf("expected 2 merged rods, got %d", len(merged))
	}
	if merged[0].Label != "A" || merged[0].Quantity != 5 {
		t.Errorf("unexpected merged rod %+v", merged[0])
	}
	if math.Abs(merged[1].Length-120) > 1e-9 {
		t.Errorf("unexpected second rod %+v", merged[1])
	}
}
