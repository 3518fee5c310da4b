package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/manustarter/manustarter/internal/core/testcase"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// SheetName is the worksheet written by WriteXLSX
const SheetName = "Test Cases"

var headers = []any{"ID", "Description", "Preconditions", "Steps"}

// WriteJSON writes c as indented JSON
func WriteJSON(w io.Writer, c *testcase.Collection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// WriteYAML writes c as a YAML document
func WriteYAML(w io.Writer, c *testcase.Collection) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// WriteXLSX writes c as a workbook with one row per test case
func WriteXLSX(w io.Writer, c *testcase.Collection) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"0EA5E9"}},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return err
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", "D1", headerStyle); err != nil {
		return err
	}

	for i, tc := range c.TestCases {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{tc.ID, tc.Description, tc.Preconditions, tc.Steps}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return err
		}
	}

	if n := len(c.TestCases); n > 0 {
		last, _ := excelize.CoordinatesToCellName(4, n+1)
		if err := f.SetCellStyle(SheetName, "A2", last, bodyStyle); err != nil {
			return err
		}
	}

	widths := map[string]float64{"A": 22, "B": 50, "C": 40, "D": 60}
	for col, width := range widths {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Writer returns the writer for a format name: json, yaml or xlsx
func Writer(format string) (func(io.Writer, *testcase.Collection) error, error) {
	switch strings.ToLower(format) {
	case "json":
		return WriteJSON, nil
	case "yaml", "yml":
		return WriteYAML, nil
	case "xlsx":
		return WriteXLSX, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s (supported: json, yaml, xlsx)", format)
	}
}

// ToFile writes c to path using the format implied by its extension
func ToFile(path string, c *testcase.Collection) error {
	write, err := Writer(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := write(file, c); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
