// Package support reports how well the syscalls used by each application are
// covered by the implementation status sheet.
package support

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gaulthiergain/syscalls-heatmap/internal/sheet"
	"github.com/gaulthiergain/syscalls-heatmap/internal/usage"
)

// App holds the syscalls of one application bucketed by status.
type App struct {
	Name     string
	ByStatus map[sheet.Status][]string
}

// Count returns the number of syscalls with status st.
func (a *App) Count(st sheet.Status) int { return len(a.ByStatus[st]) }

// Total returns the number of syscalls reported in the status columns,
// absent ones excepted. Statuses outside the known set are not counted.
func (a *App) Total() int {
	n := 0
	for _, st := range appsColumns {
		if st != sheet.StatusAbsent {
			n += a.Count(st)
		}
	}
	return n
}

// Usage lists the applications using a syscall.
type Usage struct {
	Name   string
	Status sheet.Status
	Apps   []string
}

// Report is the result of Analyze.
type Report struct {
	Apps      []*App
	Syscalls  []*Usage
	Undefined []*Usage

	known   map[string]*Usage
	unknown map[string]*Usage
}

// NewReport prepares an empty report for the given sheet.
func NewReport(sh *sheet.Sheet) *Report {
	r := &Report{
		known:   make(map[string]*Usage, sh.Len()),
		unknown: map[string]*Usage{},
	}
	for _, sc := range sh.Syscalls {
		u := &Usage{Name: sc.Name, Status: sc.Status}
		r.known[sc.Name] = u
		r.Syscalls = append(r.Syscalls, u)
	}
	return r
}

// Add records the syscalls of one application.
func (r *Report) Add(app string, symbols []string) {
	a := &App{Name: app, ByStatus: map[sheet.Status][]string{}}
	for _, s := range symbols {
		if u, ok := r.known[s]; ok {
			a.ByStatus[u.Status] = append(a.ByStatus[u.Status], s)
			u.Apps = append(u.Apps, app)
			continue
		}
		a.ByStatus[sheet.StatusAbsent] = append(a.ByStatus[sheet.StatusAbsent], s)
		u, ok := r.unknown[s]
		if !ok {
			u = &Usage{Name: s, Status: sheet.StatusAbsent}
			r.unknown[s] = u
			r.Undefined = append(r.Undefined, u)
		}
		u.Apps = append(u.Apps, app)
	}
	r.Apps = append(r.Apps, a)
}

// Analyze builds a report from every application report below dir.
func Analyze(sh *sheet.Sheet, dir string) (*Report, error) {
	r := NewReport(sh)
	err := usage.WalkApps(dir, func(file string, rep *usage.AppReport) error {
		symbols, err := rep.Symbols()
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		r.Add(rep.Name, symbols)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", dir, err)
	}
	return r, nil
}

var appsHeader = []string{
	"app", "total", "okay", "not_impl", "reg_miss", "incomplete",
	"stubbed", "planned", "broken", "in_progress", "absent",
}

var appsColumns = []sheet.Status{
	sheet.StatusOkay, sheet.StatusNotImpl, sheet.StatusRegMiss, sheet.StatusIncomplete,
	sheet.StatusStubbed, sheet.StatusPlanned, sheet.StatusBroken, sheet.StatusInProgress,
	sheet.StatusAbsent,
}

// WriteAppsCSV prints per-application support counts.
func (r *Report) WriteAppsCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(appsHeader); err != nil {
		return err
	}
	for _, a := range r.Apps {
		rec := []string{a.Name, strconv.Itoa(a.Total())}
		for _, st := range appsColumns {
			rec = append(rec, strconv.Itoa(a.Count(st)))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSyscallsCSV prints the popularity of every syscall: sheet rows
// first, then syscalls unknown to the sheet in first-seen order.
func (r *Report) WriteSyscallsCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"syscall", "status", "num_apps"}); err != nil {
		return err
	}
	for _, group := range [][]*Usage{r.Syscalls, r.Undefined} {
		for _, u := range group {
			if err := cw.Write([]string{u.Name, string(u.Status), strconv.Itoa(len(u.Apps))}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
