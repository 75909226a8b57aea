package sheet

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeXLSX stores a minimal two-sheet workbook. Names and statuses go
// through sharedStrings.xml, numbers are numeric cells.
func writeXLSX(t *testing.T, path string, rows [][3]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)

	var shared []string
	sharedIdx := map[string]int{}
	str := func(s string) int {
		if i, ok := sharedIdx[s]; ok {
			return i
		}
		sharedIdx[s] = len(shared)
		shared = append(shared, s)
		return sharedIdx[s]
	}
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?><worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`)
	for i, r := range rows {
		fmt.Fprintf(&sb, `<row r="%d">`, i+1)
		for j, cell := range r {
			ref := fmt.Sprintf("%c%d", 'A'+j, i+1)
			if cell == "" {
				continue
			}
			if j == 0 && i > 0 && !strings.ContainsAny(cell, "abcdefghijklmnopqrstuvwxyz?") {
				fmt.Fprintf(&sb, `<c r="%s"><v>%s</v></c>`, ref, cell)
				continue
			}
			fmt.Fprintf(&sb, `<c r="%s" t="s"><v>%d</v></c>`, ref, str(cell))
		}
		sb.WriteString(`</row>`)
	}
	sb.WriteString(`</sheetData></worksheet>`)

	var ss strings.Builder
	ss.WriteString(`<?xml version="1.0" encoding="UTF-8"?><sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)
	for _, s := range shared {
		fmt.Fprintf(&ss, `<si><t>%s</t></si>`, s)
	}
	ss.WriteString(`</sst>`)

	entries := map[string]string{
		"xl/workbook.xml": `<?xml version="1.0" encoding="UTF-8"?><workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets>` +
			`<sheet name="Notes" sheetId="2" r:id="rId2"/><sheet name="Status" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Target="/xl/worksheets/sheet1.xml"/><Relationship Id="rId2" Target="worksheets/sheet2.xml"/></Relationships>`,
		"xl/worksheets/sheet1.xml": sb.String(),
		"xl/worksheets/sheet2.xml": `<?xml version="1.0" encoding="UTF-8"?><worksheet><sheetData><row r="1"><c r="A1" t="inlineStr"><is><t>notes</t></is></c></row></sheetData></worksheet>`,
		"xl/sharedStrings.xml":     ss.String(),
	}
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"", StatusNotImpl},
		{"   ", StatusNotImpl},
		{"okay", StatusOkay},
		{"OKAY", StatusOkay},
		{"incomplete (flags)", StatusIncomplete},
		{"registration missing", StatusRegMiss},
		{"stubbed", StatusStubbed},
		{"planned for 0.6", StatusPlanned},
		{"in progress", StatusInProgress},
		{"broken", StatusBroken},
		{"okay but incomplete", StatusIncomplete},
		{"unknown", Status("UNKNOWN")},
	}
	for _, tt := range tests {
		if got := NormalizeStatus(tt.in); got != tt.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := map[string]int{"0": 0, "12": 12, "12.0": 12, " 7 ": 7, "n/a": -1, "": -1, "1.5": -1}
	for in, want := range tests {
		if got := parseNumber(in); got != want {
			t.Errorf("parseNumber(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestLoadXLSX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "status.xlsx")
	writeXLSX(t, p, [][3]string{
		{"rax", "name", "status"},
		{"0", "read", "okay"},
		{"1", "write", "okay"},
		{"2", "open", ""},
		{"?", "vm86", "registration missing"},
		{"4", "", "okay"},
	})

	sh, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sh.Len() != 4 {
		t.Fatalf("expected 4 rows, got %d: %+v", sh.Len(), sh.Syscalls)
	}
	want := []Syscall{
		{0, "read", StatusOkay},
		{1, "write", StatusOkay},
		{2, "open", StatusNotImpl},
		{-1, "vm86", StatusRegMiss},
	}
	for i, w := range want {
		if sh.Syscalls[i] != w {
			t.Errorf("row %d = %+v, want %+v", i, sh.Syscalls[i], w)
		}
	}
	if sc, ok := sh.Lookup("open"); !ok || sc.Number != 2 {
		t.Fatalf("lookup open: %+v %v", sc, ok)
	}
	if got := strings.Join(sh.Names(), ","); got != "read,write,open,vm86" {
		t.Fatalf("names: %s", got)
	}
}

func TestLoadXLSXSheetSelection(t *testing.T) {
	p := filepath.Join(t.TempDir(), "status.xlsx")
	writeXLSX(t, p, [][3]string{{"rax", "name", "status"}, {"0", "read", "okay"}})

	sh, err := Load(p, Options{SheetName: "status"})
	if err != nil {
		t.Fatalf("load by name: %v", err)
	}
	if sh.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", sh.Len())
	}
	sh, err = Load(p, Options{SheetIndex: 2})
	if err != nil {
		t.Fatalf("load by index: %v", err)
	}
	if sh.Len() != 0 {
		t.Fatalf("notes sheet has only a header, got %d rows", sh.Len())
	}
	_, err = Load(p, Options{SheetName: "missing"})
	if err == nil || !strings.Contains(err.Error(), "Available sheets: Notes, Status") {
		t.Fatalf("expected missing sheet error, got %v", err)
	}
}

func TestLoadCSV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "status.csv")
	content := "rax,name,status\n0,read,okay\n1,write,stubbed\n1,write,okay\nx,clone,\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sh, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sh.Len() != 3 {
		t.Fatalf("expected duplicates collapsed to 3 rows, got %d", sh.Len())
	}
	if sc, _ := sh.Lookup("write"); sc.Status != StatusStubbed {
		t.Fatalf("first row wins for duplicates, got %q", sc.Status)
	}
	if sc, _ := sh.Lookup("clone"); sc.Number != -1 || sc.Status != StatusNotImpl {
		t.Fatalf("clone: %+v", sc)
	}
}

func TestLoadUnsupported(t *testing.T) {
	if _, err := Load("status.xls", DefaultOptions()); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestNormalizeRelPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
	}
	for _, tt := range tests {
		if got := normalizeRelPath(tt.input); got != tt.expected {
			t.Errorf("normalizeRelPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestColIndexFromRef(t *testing.T) {
	tests := map[string]int{"A1": 0, "C12": 2, "Z3": 25, "AA1": 26, "ab9": 27}
	for in, want := range tests {
		if got := colIndexFromRef(in); got != want {
			t.Errorf("colIndexFromRef(%q) = %d, want %d", in, got, want)
		}
	}
}
