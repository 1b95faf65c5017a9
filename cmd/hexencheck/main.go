// Command hexencheck is the CLI front end for the Hexen semantic analyzer.
// It has no lexer or parser of its own (spec §6): a program to check is
// supplied as the JSON AST form internal/ast.Print produces, not as Hexen
// source text.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"gopkg.in/yaml.v3"

	"github.com/hexen-lang/hexen/internal/analyzer"
	"github.com/hexen-lang/hexen/internal/ast"
	"github.com/hexen-lang/hexen/internal/errors"
)

var (
	// Version info, set by ldflags during build.
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
		interactive = flag.Bool("i", false, "Start an interactive check session")
		configPath  = flag.String("config", "", "Path to a YAML config file (default: .hexencheck.yml in the current directory, if present)")
		jsonOut     = flag.Bool("json", false, "Emit diagnostics as JSON instead of colored text")
	)
	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}

	if *helpFlag || (!*interactive && flag.NArg() == 0) {
		printHelp()
		return
	}

	cfg := loadConfig(*configPath)

	if *interactive {
		runInteractive(cfg)
		return
	}

	command := flag.Arg(0)
	switch command {
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: hexencheck check <file.json>")
			os.Exit(1)
		}
		checkFile(flag.Arg(1), cfg, *jsonOut)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("%s %s\n", bold("hexencheck"), Version)
	fmt.Printf("commit: %s, built: %s\n", Commit, BuildTime)
}

func printHelp() {
	fmt.Println(bold("hexencheck - semantic analyzer for Hexen"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  hexencheck check <file.json>   analyze a program given as a JSON AST")
	fmt.Println("  hexencheck -i                  start an interactive check session")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

// loadConfig reads an analyzer.Config from path, or from .hexencheck.yml in
// the current directory when path is empty and that file exists, otherwise
// returns analyzer.DefaultConfig().
func loadConfig(path string) *analyzer.Config {
	if path == "" {
		if _, err := os.Stat(".hexencheck.yml"); err == nil {
			path = ".hexencheck.yml"
		} else {
			return analyzer.DefaultConfig()
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read config %q: %v\n", yellow("Warning"), path, err)
		return analyzer.DefaultConfig()
	}

	cfg := analyzer.DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%s: malformed config %q: %v\n", yellow("Warning"), path, err)
		return analyzer.DefaultConfig()
	}
	return cfg
}

// checkFile reads filename as a JSON AST (internal/ast.Decode), analyzes it,
// and prints its diagnostics. Mirrors the reference checkFile's read-parse-
// report shape, with "parse" replaced by "decode the JSON AST" since there
// is no Hexen lexer/parser in this repository (spec §6).
func checkFile(filename string, cfg *analyzer.Config, jsonOut bool) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file %q: %v\n", red("Error"), filename, err)
		os.Exit(1)
	}

	prog, err := ast.Decode(content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	fmt.Printf("%s Analyzing %s...\n", cyan("→"), filename)

	result := analyzer.New(cfg).AnalyzeProgram(prog)
	reportResult(result, jsonOut)

	if !result.Accepted {
		os.Exit(1)
	}
}

func reportResult(result *analyzer.Result, jsonOut bool) {
	if jsonOut {
		for _, d := range result.Diagnostics {
			js, err := d.ToJSON(true)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
				continue
			}
			fmt.Println(js)
		}
		return
	}

	for _, d := range result.Diagnostics {
		printDiagnostic(d)
	}

	if result.Accepted {
		fmt.Printf("\n%s No errors found!\n", green("✓"))
	} else {
		fmt.Printf("\n%s %d diagnostic(s)\n", red("✗"), len(result.Diagnostics))
	}
}

func printDiagnostic(d *errors.Report) {
	loc := ""
	if d.Span != nil {
		loc = dim(" @ " + d.Span.Start.String())
	}
	fmt.Printf("%s [%s]%s %s\n", red(d.Code), d.Phase, loc, d.Message)
	if d.Fix != nil {
		fmt.Printf("    %s %s: %s\n", yellow("fix:"), d.Fix.Description, bold(d.Fix.Suggestion))
	}
}

// runInteractive starts a liner-backed loop that reads one JSON AST program
// per input block (terminated by a blank line), analyzes it with a fresh
// throwaway Analyzer each time, and prints its diagnostics. Grounded on the
// reference REPL's readline/history handling, with the eval pipeline
// replaced by an analyzer run since Hexen has no evaluator in scope here.
func runInteractive(cfg *analyzer.Config) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".hexencheck_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("%s %s\n", bold("hexencheck"), bold(Version))
	fmt.Fprintln(os.Stdout, dim("Paste a JSON AST program, then a blank line to analyze it. :quit to exit."))
	fmt.Fprintln(os.Stdout, dim("Use the ↑/↓ arrows to navigate history."))
	fmt.Fprintln(os.Stdout)

	for {
		block, ok := readBlock(line, os.Stdout)
		if !ok {
			fmt.Fprintln(os.Stdout, green("\nGoodbye!"))
			break
		}
		if strings.TrimSpace(block) == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(block), ":quit") || strings.HasPrefix(strings.TrimSpace(block), ":q") {
			fmt.Fprintln(os.Stdout, green("Goodbye!"))
			break
		}

		line.AppendHistory(block)

		prog, err := ast.Decode([]byte(block))
		if err != nil {
			fmt.Fprintf(os.Stdout, "%s: %v\n", red("Error"), err)
			continue
		}
		result := analyzer.New(cfg).AnalyzeProgram(prog)
		reportResult(result, false)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// readBlock reads lines via liner.Prompt until a blank line or EOF, joining
// them with newlines. Returns ok=false on EOF with no input collected, or
// on any other prompt error.
func readBlock(line *liner.State, out io.Writer) (string, bool) {
	var lines []string
	prompt := "hexen> "
	for {
		input, err := line.Prompt(prompt)
		if err == io.EOF {
			if len(lines) == 0 {
				return "", false
			}
			return strings.Join(lines, "\n"), true
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			return "", false
		}
		if strings.TrimSpace(input) == "" {
			if len(lines) == 0 {
				continue
			}
			return strings.Join(lines, "\n"), true
		}
		lines = append(lines, input)
		prompt = "...    "
	}
}
