// Command psthplot computes peri-stimulus time histograms from CSV files and
// optionally renders them.
//
// Usage:
//
//	psthplot -spikes spikes.csv -events events.csv [flags]
//
// The spike file holds one spike time in seconds per row (first column). The
// event file starts with a header row naming the alignment events; every
// further row is one trial. Blank or NaN cells mark missing events.
//
// Examples:
//
//	psthplot -spikes unit1.csv -events trials.csv
//	psthplot -spikes unit1.csv -events trials.csv -event-col stim -window -0.5,1 -out psth.png
//	psthplot -spikes unit1.csv -events trials.csv -bin 0.01 -smooth 0.05 -stat ci -out psth.pdf
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-spikes/neuro/signal"
	"github.com/cwbudde/algo-spikes/plot/figures"
	"github.com/cwbudde/algo-spikes/plot/render"
	"github.com/cwbudde/algo-spikes/stats/trial"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("psthplot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	spikesPath := fs.String("spikes", "", "CSV file with one spike time (s) per row")
	eventsPath := fs.String("events", "", "CSV file with a header row and one trial per row")
	windowFlag := fs.String("window", "-1,1", "analysis window around each event, start,end in seconds")
	bin := fs.Float64("bin", 0.001, "bin width in seconds")
	smooth := fs.Float64("smooth", 0.01, "causal smoothing width in seconds (0 disables)")
	statFlag := fs.String("stat", "sem", "band around the mean: sem, ci, std or percentile")
	out := fs.String("out", "", "render the figure to this file (.png .pdf .svg .eps .jpg .tif)")
	title := fs.String("title", "", "figure title")
	eventCol := fs.String("event-col", "", "align to this event column only (default: all columns)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: psthplot -spikes FILE -events FILE [flags]\n\n")
		fmt.Fprintf(stderr, "Prints a PSTH summary per alignment event and optionally renders the figure.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *spikesPath == "" || *eventsPath == "" {
		fmt.Fprintf(stderr, "error: -spikes and -events are required\n")
		fs.Usage()
		return 2
	}

	start, end, err := parseWindow(*windowFlag)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	stat, err := trial.ParseStat(*statFlag)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	spikes, err := loadSpikes(*spikesPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	events, err := loadEvents(*eventsPath, *eventCol)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	w := signal.Window{Start: start, End: end}
	rows, err := summarize(spikes, events, w, *bin, *smooth)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if err := printSummary(stdout, rows); err != nil {
		fmt.Fprintf(stderr, "error: failed to write summary: %v\n", err)
		return 1
	}

	if *out == "" {
		return 0
	}
	_, err = figures.PSTH(spikes, events,
		figures.WithWindow(start, end),
		figures.WithBinWidth(*bin),
		figures.WithSmoothWidth(*smooth),
		figures.WithStat(stat),
		figures.WithTitle(*title),
		figures.WithRenderer(render.NewGonumRenderer()),
		figures.WithOutput(*out),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %s\n", *out)
	return 0
}

func printSummary(w io.Writer, rows []summaryRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Event\tTrials\tMissing\tSpikes/Trial\tPeak [Hz]\tPeak Time [s]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-----\t------\t-------\t------------\t---------\t-------------\n"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%d\t%.3f\t%.3f\t%.4f\n",
			r.Event,
			r.Trials,
			r.Missing,
			r.SpikesPerTrial,
			r.PeakRate,
			r.PeakTime,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}
