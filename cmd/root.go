package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kumaryash6352/csvpshmem-viewer/collector"
	"github.com/kumaryash6352/csvpshmem-viewer/config"
	"github.com/kumaryash6352/csvpshmem-viewer/ui"
)

// Version is set at build time via ldflags.
var Version = "0.2.0"

func printUsage() {
	fmt.Fprintf(os.Stderr, `csvpshmem-viewer v%s — timeline and bandwidth viewer for pperf traces

Usage:
  csvpshmem-viewer [OPTIONS] [DIR]

Positional:
  DIR               Trace directory containing pperf.<pe>.csv files
                    (default: current directory)

Options:
  -version          Print version and exit

The viewer merges every pperf.<pe>.csv in DIR into one timeline. Defaults
for the aggregation window, playback speed and filters are read from
~/.config/csvpshmem-viewer/config.yaml when present.
`, Version)
}

// Run parses flags, loads the trace directory and starts the TUI.
func Run() error {
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("csvpshmem-viewer v%s\n", Version)
		return nil
	}

	dir := "."
	if args := flag.Args(); len(args) > 0 {
		dir = args[0]
	}

	cfg := config.Load()

	profile, loadErr := collector.Load(dir)
	if loadErr != nil {
		// The UI renders the failure as its terminal screen; nothing
		// partial is ever shown.
		log.Printf("csvpshmem-viewer: %v", loadErr)
	}

	m := ui.NewModel(profile, cfg, loadErr)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
