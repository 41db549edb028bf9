package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/maayan2299/assembler/assembler"
	"github.com/maayan2299/assembler/config"
	"github.com/maayan2299/assembler/encoder"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		verboseMode = flag.Bool("verbose", false, "Verbose output")
		configPath  = flag.String("config", "", "Configuration file (default: platform config path)")
		outDir      = flag.String("outdir", "", "Directory for generated files (default: next to the source)")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("assembler %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		os.Exit(0)
	}

	if *showHelp || flag.NArg() == 0 {
		printHelp()
		os.Exit(0)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if *outDir != "" {
		cfg.Output.Directory = *outDir
	}
	if *verboseMode {
		cfg.Diagnostics.Verbose = true
	}

	// Each input file is assembled in a fresh state; failures are
	// reported per file and do not affect the exit status.
	for _, base := range flag.Args() {
		base = strings.TrimSuffix(base, assembler.SourceExt)

		if cfg.Diagnostics.Verbose {
			fmt.Printf("Assembling %s%s\n", base, assembler.SourceExt)
		}

		asm := assembler.New(base, cfg, os.Stderr)
		ok := asm.Run()

		if cfg.Diagnostics.Verbose {
			if ok {
				fmt.Printf("%s: %d code words, %d data words, %d symbols\n",
					base, asm.ICF-encoder.CodeOrigin, asm.DCF, asm.Symbols.Len())
			} else {
				fmt.Printf("%s: assembly failed, output suppressed\n", base)
			}
		}
	}

	os.Exit(0)
}

func printHelp() {
	fmt.Printf(`assembler %s

Usage: assembler [options] <file1> <file2> ...

Each argument is a base name; the tool reads <name>.as, writes the
macro-expanded <name>.am and, on success, writes <name>.ob, <name>.ext
and <name>.ent.

Options:
  -help          Show this help message
  -version       Show version information
  -verbose       Verbose output
  -config FILE   Configuration file (default: platform config path)
  -outdir DIR    Directory for generated files

Examples:
  assembler prog
  assembler -verbose -outdir build prog1 prog2
`, Version)
}
