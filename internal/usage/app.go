package usage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// section is one analysis pass (static or dynamic) of an application.
type section struct {
	SystemCalls json.RawMessage `json:"system_calls"`
}

// AppReport is the per-application output of the syscall analysis tool.
type AppReport struct {
	Name    string   `json:"-"`
	Static  *section `json:"static_data"`
	Dynamic *section `json:"dynamic_data"`
}

// ParseApp decodes an application report.
func ParseApp(r io.Reader) (*AppReport, error) {
	var rep AppReport
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decode app report: %w", err)
	}
	return &rep, nil
}

// Symbols returns the sorted union of static and dynamic syscalls.
func (a *AppReport) Symbols() ([]string, error) {
	set := map[string]struct{}{}
	for _, s := range []*section{a.Static, a.Dynamic} {
		if s == nil {
			continue
		}
		names, err := syscallNames(s.SystemCalls)
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			set[n] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}

// syscallNames accepts either an object keyed by syscall name or an array
// of names.
func syscallNames(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	switch raw[0] {
	case '{':
		var m map[string]json.RawMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decode system_calls: %w", err)
		}
		out := make([]string, 0, len(m))
		for k := range m {
			out = append(out, k)
		}
		return out, nil
	case '[':
		var l []string
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("decode system_calls: %w", err)
		}
		return l, nil
	}
	return nil, fmt.Errorf("decode system_calls: expected object or array")
}

// WalkApps visits every *.json file below dir in lexical order. The report
// name is the file base name without the extension.
func WalkApps(dir string, fn func(file string, rep *AppReport) error) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		b, err := readFile(path)
		if err != nil {
			return err
		}
		rep, err := ParseApp(bytes.NewReader(b))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		rep.Name = strings.TrimSuffix(d.Name(), ".json")
		return fn(path, rep)
	})
}
