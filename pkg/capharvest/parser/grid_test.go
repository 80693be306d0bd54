package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/gridwatch-in/capharvest/pkg/capharvest/models"
)

// saveWorkbook writes an excelize workbook fixture. Published report
// files keep a .xls name even when they hold ZIP workbook content,
// so fixtures use the same misleading extension on purpose; the
// bytes are written directly since excelize refuses to SaveAs .xls.
func saveWorkbook(t *testing.T, f *excelize.File, name string) string {
	t.Helper()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to serialize fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to save fixture: %v", err)
	}
	return path
}

func TestLoadGridZipWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "B2", "STATE")
	f.SetCellValue(sheet, "B3", "Punjab")
	f.SetCellValue(sheet, "C3", 1234.5)

	path := saveWorkbook(t, f, "capacity2-Northern-2025-06.xls")

	g, err := LoadGrid(path)
	if err != nil {
		t.Fatalf("LoadGrid failed: %v", err)
	}

	if got := g.Cell(1, 1).String(); got != "STATE" {
		t.Errorf("Cell(1,1) = %q, expected STATE", got)
	}
	if got := g.Cell(2, 1).String(); got != "Punjab" {
		t.Errorf("Cell(2,1) = %q, expected Punjab", got)
	}
	if got := g.Cell(2, 2).Float(); got != 1234.5 {
		t.Errorf("Cell(2,2).Float() = %v, expected 1234.5", got)
	}
}

func TestLoadGridSparseSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "x")

	path := saveWorkbook(t, f, "sparse.xls")

	if _, err := LoadGrid(path); !errors.Is(err, ErrNoTable) {
		t.Errorf("expected ErrNoTable, got %v", err)
	}
}

func TestLoadGridCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.xls")
	if err := os.WriteFile(path, []byte("this is not a workbook"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := LoadGrid(path); !errors.Is(err, ErrCorruptWorkbook) {
		t.Errorf("expected ErrCorruptWorkbook, got %v", err)
	}
}

func TestLoadGridTruncatedBIFF(t *testing.T) {
	// An OLE magic prefix with a truncated body must surface as a
	// structural failure, not a panic.
	data := append(append([]byte{}, oleMagic...), []byte("truncated")...)
	path := filepath.Join(t.TempDir(), "truncated.xls")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := LoadGrid(path); !errors.Is(err, ErrCorruptWorkbook) {
		t.Errorf("expected ErrCorruptWorkbook, got %v", err)
	}
}

func TestLoadGridMissingFile(t *testing.T) {
	if _, err := LoadGrid(filepath.Join(t.TempDir(), "absent.xls")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHasTable(t *testing.T) {
	dense := models.NewGrid([][]string{
		{"a", "b", "c"},
		{"d", "e", "f"},
	})
	if !hasTable(dense, defaultDensityParams()) {
		t.Error("dense grid should pass the table gate")
	}

	empty := models.NewGrid(nil)
	if hasTable(empty, defaultDensityParams()) {
		t.Error("empty grid should fail the table gate")
	}

	sparse := models.NewGrid([][]string{{"only"}})
	if hasTable(sparse, defaultDensityParams()) {
		t.Error("grid below the cell minimum should fail the table gate")
	}
}
