package usage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/gaulthiergain/syscalls-heatmap/internal/utils"
)

func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

// AggregateFolder counts, for every syscall in counts, how many application
// reports below dir use it. Each report contributes at most one per syscall.
// It returns the number of reports processed.
func AggregateFolder(dir string, counts *Counts, logger zerolog.Logger) (int, error) {
	nb := 0
	err := WalkApps(dir, func(file string, rep *AppReport) error {
		symbols, err := rep.Symbols()
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		for _, s := range symbols {
			if !counts.Inc(s) {
				logger.Warn().
					Str("symbol", s).
					Str("file", filepath.Base(file)).
					Msg("symbol is not present in the status sheet")
			}
		}
		logger.Debug().Str("app", rep.Name).Int("syscalls", len(symbols)).Msg("aggregated")
		nb++
		return nil
	})
	if err != nil {
		return nb, fmt.Errorf("aggregate %s: %w", dir, err)
	}
	return nb, nil
}

// ReadAggregated loads a {syscall: usage} file into counts. Usage values may
// be written as integers or floats. Entries unknown to the sheet are
// reported in name order and skipped.
func ReadAggregated(path string, counts *Counts, logger zerolog.Logger) error {
	b, err := readFile(path)
	if err != nil {
		return err
	}
	var m map[string]float64
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&m); err != nil {
		return fmt.Errorf("decode aggregated file %s: %w", path, err)
	}
	for _, n := range counts.Names() {
		if v, ok := m[n]; ok {
			counts.Set(n, int(math.Round(v)))
			delete(m, n)
		}
	}
	unknown := make([]string, 0, len(m))
	for k := range m {
		unknown = append(unknown, k)
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		logger.Warn().Str("symbol", k).Str("file", filepath.Base(path)).
			Msg("symbol is not present in the status sheet")
	}
	return nil
}

// WriteAggregated stores counts as 4-space indented JSON in sheet order.
func WriteAggregated(path string, counts *Counts) error {
	b, err := utils.PrettyJSON(counts, "    ")
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, append(b, '\n'))
}
