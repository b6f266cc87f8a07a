package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/HyperCogWizard/mork-go/arena"
	"github.com/HyperCogWizard/mork-go/expr"
	csvingest "github.com/HyperCogWizard/mork-go/ingest/csv"
	jsoningest "github.com/HyperCogWizard/mork-go/ingest/json"
	"github.com/HyperCogWizard/mork-go/sexpr"
	"github.com/HyperCogWizard/mork-go/space"
	"github.com/HyperCogWizard/mork-go/symbol"
)

// parseAll parses each text S-expression in texts, interning symbols
// through s's own interner so queries/transforms reference the same
// symbol handles as the stored data.
func parseAll(s *space.Space, texts []string) []expr.Expression {
	out := make([]expr.Expression, len(texts))
	for i, t := range texts {
		e, err := sexpr.Parse([]byte(t), sexpr.InternOf(s.Interner()))
		if err != nil {
			exitf("parsing %q: %s", t, err)
		}
		out[i] = e
	}
	return out
}

func openSpace() *space.Space {
	if dashSpace == "" {
		exitf("-space is required")
	}
	if _, err := os.Stat(dashSpace); err == nil {
		s, err := arena.Load(dashSpace, symbol.NewTable())
		if err != nil {
			exitf("loading %s: %s", dashSpace, err)
		}
		return s
	}
	return space.New(symbol.NewTable())
}

func saveSpace(s *space.Space) {
	if err := arena.Save(dashSpace, s, true); err != nil {
		exitf("saving %s: %s", dashSpace, err)
	}
}

func runLoad(format, path string) {
	s := openSpace()
	f, err := os.Open(path)
	if err != nil {
		exitf("%s", err)
	}
	defer f.Close()

	var n int
	switch {
	case format == "json":
		n, err = jsoningest.Convert(f, s)
	case format == "sexpr":
		n, err = sexpr.Load(s, f)
	case format == "csv":
		n, err = csvingest.Convert(f, s)
	case strings.HasPrefix(format, "csv:"):
		delim := strings.TrimPrefix(format, "csv:")
		r := rune(',')
		if delim == "tab" {
			r = '\t'
		} else if len(delim) == 1 {
			r = rune(delim[0])
		}
		n, err = csvingest.Chopper{Delimiter: r}.Convert(f, s)
	default:
		exitf("unknown format %q (want json, csv, csv:<delim>, or sexpr)", format)
	}
	if err != nil {
		exitf("loading %s: %s", path, err)
	}
	saveSpace(s)
	fmt.Printf("inserted %d records (Space now holds %d)\n", n, s.Len())
}

func runQuery(patternTexts []string) {
	s := openSpace()
	exprs := parseAll(s, patternTexts)
	n, err := s.Query(exprs, func(refs [][]byte) error {
		parts := make([]string, len(refs))
		for i, r := range refs {
			parts[i] = string(r)
		}
		fmt.Printf("match: [%s]\n", strings.Join(parts, ", "))
		return nil
	})
	if err != nil {
		exitf("query: %s", err)
	}
	fmt.Printf("%d match(es)\n", n)
}

func runTransform(patternText, templateText string) {
	s := openSpace()
	exprs := parseAll(s, []string{patternText})
	tmpl := parseAll(s, []string{templateText})
	n, err := s.Transform(exprs[0], tmpl[0])
	if err != nil {
		exitf("transform: %s", err)
	}
	saveSpace(s)
	fmt.Printf("%d rewrite(s)\n", n)
}

func runDump() {
	s := openSpace()
	if err := sexpr.Dump(s, os.Stdout); err != nil {
		exitf("dump: %s", err)
	}
}
