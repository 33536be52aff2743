package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-spikes/dsp/core"
	"github.com/cwbudde/algo-spikes/neuro/align"
	"github.com/cwbudde/algo-spikes/neuro/psth"
	"github.com/cwbudde/algo-spikes/neuro/signal"
)

var (
	errNoColumns     = errors.New("event file has no header")
	errUnknownColumn = errors.New("unknown event column")
	errBadWindow     = errors.New("window must be start,end")
)

func parseWindow(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", errBadWindow, s)
	}
	start, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", errBadWindow, s)
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", errBadWindow, s)
	}
	return start, end, nil
}

func loadSpikes(path string) (signal.Spikes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	spikes, err := readSpikes(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spikes, nil
}

// readSpikes reads the first column of every row. A non-numeric first row
// is taken as a header.
func readSpikes(r io.Reader) (signal.Spikes, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out signal.Spikes
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}

		t, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, t)
	}

	sort.Float64s(out)
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func loadEvents(path, column string) ([]signal.Events, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	events, err := readEvents(f, column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

// readEvents reads one named event series per header column, or only
// column when it is not empty. Blank and NaN cells are missing events.
func readEvents(r io.Reader, column string) ([]signal.Events, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errNoColumns
	}
	if err != nil {
		return nil, err
	}

	cols := make([]int, 0, len(header))
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		if column == "" || header[i] == column {
			cols = append(cols, i)
		}
	}
	if len(cols) == 0 {
		if column != "" {
			return nil, fmt.Errorf("%w: %q", errUnknownColumn, column)
		}
		return nil, errNoColumns
	}

	events := make([]signal.Events, len(cols))
	for k, c := range cols {
		events[k].Name = header[c]
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for k, c := range cols {
			v := signal.Missing()
			if c < len(rec) {
				if v, err = parseCell(rec[c]); err != nil {
					return nil, fmt.Errorf("line %d, column %q: %w", line, header[c], err)
				}
			}
			events[k].Times = append(events[k].Times, v)
		}
	}
	return events, nil
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return signal.Missing(), nil
	}
	return strconv.ParseFloat(s, 64)
}

type summaryRow struct {
	Event          string
	Trials         int
	Missing        int
	SpikesPerTrial float64
	PeakRate       float64
	PeakTime       float64
}

func summarize(spikes signal.Spikes, events []signal.Events, w signal.Window, binWidth, smoothWidth float64) ([]summaryRow, error) {
	rows := make([]summaryRow, 0, len(events))
	for _, ev := range events {
		trials, err := align.Spikes(spikes, ev.Times, w)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ev.Name, err)
		}
		res, err := psth.Compute(spikes, ev.Times, w, binWidth, smoothWidth)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ev.Name, err)
		}

		rate, at := peak(res.Centers, psth.Mean(res.Rates))
		rows = append(rows, summaryRow{
			Event:          ev.Name,
			Trials:         ev.Len(),
			Missing:        ev.MissingCount(),
			SpikesPerTrial: core.NaNMean(align.Counts(trials)),
			PeakRate:       rate,
			PeakTime:       at,
		})
	}
	return rows, nil
}

// peak returns the largest defined value of ys and its x, or NaN.
func peak(xs, ys []float64) (float64, float64) {
	masked := make([]float64, len(ys))
	for i, y := range ys {
		masked[i] = y
		if math.IsNaN(y) {
			masked[i] = math.Inf(-1)
		}
	}
	if len(masked) == 0 {
		return math.NaN(), math.NaN()
	}
	i := floats.MaxIdx(masked)
	if math.IsInf(masked[i], -1) {
		return math.NaN(), math.NaN()
	}
	return ys[i], xs[i]
}
