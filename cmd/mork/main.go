// Command mork is the load/query/transform/dump/bench command surface
// of spec §6.4 ("out of scope except for contract"): a single flag-based
// subcommand dispatcher in the teacher's cmd/sdb/main.go shape (flag.Parse
// then a switch over flag.Args()[0]), rather than a cobra/urfave CLI
// framework — none of the example repos pull in one.
package main

import (
	"flag"
	"fmt"
	"os"
)

var dashSpace string

func init() {
	flag.StringVar(&dashSpace, "space", "", "path to an arena-encoded Space file (created if missing)")
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage:\n")
	fmt.Fprintf(os.Stderr, "    %s -space <file> load <json|csv|csv:tab|sexpr> <path>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        ingest a file's records into the Space\n")
	fmt.Fprintf(os.Stderr, "    %s -space <file> query <pattern...>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        print every match of pattern (text S-expression syntax)\n")
	fmt.Fprintf(os.Stderr, "    %s -space <file> transform <pattern> <template>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        rewrite every match of pattern into template, in place\n")
	fmt.Fprintf(os.Stderr, "    %s -space <file> dump\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        print every stored fact as text S-expressions\n")
	fmt.Fprintf(os.Stderr, "    %s bench <manifest.yaml>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        run a scripted load+query benchmark, tagged with a run id\n")
	flag.Usage()
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	switch args[0] {
	case "load":
		if len(args) != 3 {
			exitf("usage: load <json|csv|csv:tab|sexpr> <path>")
		}
		runLoad(args[1], args[2])
	case "query":
		if len(args) < 2 {
			exitf("usage: query <pattern...>")
		}
		runQuery(args[1:])
	case "transform":
		if len(args) != 3 {
			exitf("usage: transform <pattern> <template>")
		}
		runTransform(args[1], args[2])
	case "dump":
		runDump()
	case "bench":
		if len(args) != 2 {
			exitf("usage: bench <manifest.yaml>")
		}
		runBench(args[1])
	default:
		usage()
		os.Exit(1)
	}
}
