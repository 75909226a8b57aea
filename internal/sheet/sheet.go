package sheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Status is the implementation state of a system call.
type Status string

const (
	StatusOkay       Status = "OKAY"
	StatusAbsent     Status = "ABSENT"
	StatusNotImpl    Status = "NOT_IMPL"
	StatusIncomplete Status = "INCOMPLETE"
	StatusRegMiss    Status = "REG_MISS"
	StatusStubbed    Status = "STUBBED"
	StatusBroken     Status = "BROKEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusPlanned    Status = "PLANNED"
)

// Statuses lists every known status in reporting order.
var Statuses = []Status{
	StatusOkay,
	StatusAbsent,
	StatusNotImpl,
	StatusIncomplete,
	StatusRegMiss,
	StatusStubbed,
	StatusBroken,
	StatusInProgress,
	StatusPlanned,
}

// Syscall is one row of the status sheet.
type Syscall struct {
	Number int
	Name   string
	Status Status
}

// Sheet holds the status rows in sheet order.
type Sheet struct {
	Syscalls []Syscall
	index    map[string]int
}

// Options selects the worksheet inside an XLSX workbook and the CSV delimiter.
// SheetIndex is 1-based and only used when SheetName is empty.
type Options struct {
	SheetName  string
	SheetIndex int
	Delimiter  rune
}

// DefaultOptions returns options reading the first worksheet.
func DefaultOptions() Options {
	return Options{SheetIndex: 1}
}

// New builds a Sheet from rows, keeping the first row for duplicated names.
func New(rows []Syscall) *Sheet {
	s := &Sheet{index: make(map[string]int, len(rows))}
	for _, r := range rows {
		if _, dup := s.index[r.Name]; dup {
			continue
		}
		s.index[r.Name] = len(s.Syscalls)
		s.Syscalls = append(s.Syscalls, r)
	}
	return s
}

// Lookup returns the row for a syscall name.
func (s *Sheet) Lookup(name string) (Syscall, bool) {
	i, ok := s.index[name]
	if !ok {
		return Syscall{}, false
	}
	return s.Syscalls[i], true
}

// Names returns syscall names in sheet order.
func (s *Sheet) Names() []string {
	out := make([]string, len(s.Syscalls))
	for i, sc := range s.Syscalls {
		out[i] = sc.Name
	}
	return out
}

// Len returns the number of rows.
func (s *Sheet) Len() int { return len(s.Syscalls) }

// NormalizeStatus maps the free-form status column to a Status.
func NormalizeStatus(raw string) Status {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case v == "":
		return StatusNotImpl
	case strings.Contains(v, "incomplete"):
		return StatusIncomplete
	case strings.Contains(v, "registration missing"):
		return StatusRegMiss
	case strings.Contains(v, "stubbed"):
		return StatusStubbed
	case strings.Contains(v, "planned"):
		return StatusPlanned
	case strings.Contains(v, "progress"):
		return StatusInProgress
	case strings.Contains(v, "broken"):
		return StatusBroken
	case strings.Contains(v, "okay"):
		return StatusOkay
	}
	return Status(strings.ToUpper(strings.TrimSpace(raw)))
}

// parseNumber reads the syscall number cell; anything that is not a whole
// number becomes -1.
func parseNumber(cell string) int {
	v := strings.TrimSpace(cell)
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return -1
	}
	return int(f)
}

// fromRecords converts raw rows (header already removed) into a Sheet.
func fromRecords(records [][]string) *Sheet {
	rows := make([]Syscall, 0, len(records))
	for _, rec := range records {
		cells := make([]string, 3)
		copy(cells, rec)
		name := strings.TrimSpace(cells[1])
		if name == "" {
			continue
		}
		rows = append(rows, Syscall{
			Number: parseNumber(cells[0]),
			Name:   name,
			Status: NormalizeStatus(cells[2]),
		})
	}
	return New(rows)
}

// Load reads a status sheet from an .xlsx workbook or a .csv/.tsv file.
func Load(path string, opt Options) (*Sheet, error) {
	lower := strings.ToLower(path)
	var (
		records [][]string
		err     error
	)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		records, err = readXLSX(path, opt.SheetName, opt.SheetIndex)
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".tsv"):
		records, err = readCSV(path, opt.Delimiter)
	default:
		return nil, fmt.Errorf("unsupported sheet format: %s (use .xlsx, .csv or .tsv)", path)
	}
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		records = records[1:]
	}
	return fromRecords(records), nil
}
