package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/manustarter/manustarter/internal/core/testcase"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

func sampleCollection() *testcase.Collection {
	count := 3
	req, err := testcase.Validate(testcase.RawRequest{
		TestCaseType: string(testcase.Regression),
		ModuleName:   "Cart",
		NumTestCases: &count,
		URL:          "https://shop.example.com/cart",
	})
	if err != nil {
		panic(err)
	}
	return testcase.NewCollection(testcase.Fallback(req, 3))
}

func TestWriteJSON(t *testing.T) {
	c := sampleCollection()
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, c))

	var got testcase.Collection
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 3, got.TotalCount)
	assert.Contains(t, buf.String(), `"test_case_id": "TC_CART_001"`)
}

func TestWriteYAML(t *testing.T) {
	c := sampleCollection()
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, c))

	assert.Contains(t, buf.String(), "test_case_id: TC_CART_002")
	assert.Contains(t, buf.String(), "total_count: 3")

	var got testcase.Collection
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	if diff := cmp.Diff(c, &got); diff != "" {
		t.Errorf("yaml content mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteXLSX(t *testing.T) {
	c := sampleCollection()
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, c))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"ID", "Description", "Preconditions", "Steps"}, rows[0])
	assert.Equal(t, "TC_CART_001", rows[1][0])
	assert.Equal(t, c.TestCases[2].Steps, rows[3][3])
}

func TestToFile(t *testing.T) {
	c := sampleCollection()
	dir := t.TempDir()

	for _, name := range []string{"cases.json", "cases.yaml", "cases.xlsx"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, ToFile(path, c))
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}

	err := ToFile(filepath.Join(dir, "cases.csv"), c)
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestRenderTable(t *testing.T) {
	c := sampleCollection()
	out := RenderTable("Regression Test Cases: Cart", c, 60)

	assert.Contains(t, out, "Regression Test Cases: Cart")
	for _, tc := range c.TestCases {
		assert.Contains(t, out, tc.ID)
	}
	assert.Contains(t, out, "3 test cases")

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 60, "line too wide: %q", line)
	}
}
