package main

import (
	"fmt"
	"os"
	"time"

	"github.com/HyperCogWizard/mork-go/ingest/csv"
	"github.com/HyperCogWizard/mork-go/ingest/json"
	"github.com/HyperCogWizard/mork-go/sexpr"
	"github.com/HyperCogWizard/mork-go/space"
	"github.com/HyperCogWizard/mork-go/symbol"
	"github.com/google/uuid"
	"sigs.k8s.io/yaml"
)

// loadStep is one ingest action in a bench manifest.
type loadStep struct {
	Format string `json:"format"`
	Path   string `json:"path"`
}

// manifest describes a scripted load-then-query benchmark run, decoded
// with sigs.k8s.io/yaml the way the pack's own manifest-driven configs
// are (see DESIGN.md).
type manifest struct {
	Name    string   `json:"name"`
	Load    []loadStep `json:"load"`
	Queries []string `json:"queries"`
}

func runBench(manifestPath string) {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		exitf("%s", err)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		exitf("parsing manifest: %s", err)
	}

	runID := uuid.New().String()
	fmt.Printf("bench %q run %s\n", m.Name, runID)

	s := space.New(symbol.NewTable())
	start := time.Now()

	loaded := 0
	for _, step := range m.Load {
		f, err := os.Open(step.Path)
		if err != nil {
			exitf("%s", err)
		}
		var n int
		switch step.Format {
		case "json":
			n, err = json.Convert(f, s)
		case "csv":
			n, err = csv.Convert(f, s)
		case "sexpr":
			n, err = sexpr.Load(s, f)
		default:
			err = fmt.Errorf("unknown load format %q", step.Format)
		}
		f.Close()
		if err != nil {
			exitf("loading %s: %s", step.Path, err)
		}
		loaded += n
	}
	loadElapsed := time.Since(start)

	queryStart := time.Now()
	totalMatches := 0
	for _, q := range m.Queries {
		exprs := parseAll(s, []string{q})
		n, err := s.Query(exprs, func([][]byte) error { return nil })
		if err != nil {
			exitf("query %q: %s", q, err)
		}
		totalMatches += n
	}
	queryElapsed := time.Since(queryStart)

	fmt.Printf("loaded %d records in %s\n", loaded, loadElapsed)
	fmt.Printf("ran %d queries (%d total matches) in %s\n", len(m.Queries), totalMatches, queryElapsed)
}
