/*
Command geophrase builds and queries a phrase search index: an
approximate/exact multi-word phrase engine over a lexicon, a bounded
edit-distance fuzzy index, and a phrase acceptor supporting combinatorial
and sliding-window search.

# Usage

Build an index from a newline-delimited phrase file:

	geophrase -build phrases.txt -index ./index

Query an already-built index interactively:

	geophrase -index ./index

# Configuration

Build-time defaults (max edit distance, output directory, cache size) are
read from a TOML config file, following a fallback-priority chain: an
explicit -config path, then the platform config directory (created with a
default config.toml if missing), then built-in defaults. Since -config's
value isn't known until after flags are parsed, but its resolved config
is what supplies other flags' defaults, the config path is scanned out of
os.Args once before flag.Parse runs.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/geophrase/internal/cli"
	"github.com/bastiangx/geophrase/internal/utils"
	"github.com/bastiangx/geophrase/pkg/config"
	"github.com/bastiangx/geophrase/pkg/glue"
)

const (
	Version = "0.1.0"
	AppName = "geophrase"
	gh      = "https://github.com/bastiangx/geophrase"
)

// earlyConfigPath scans raw CLI args for -config/--config before flag.Parse
// runs, since the resolved config supplies the defaults for other flags and
// must be known before they're declared.
func earlyConfigPath(args []string) string {
	for i, a := range args {
		switch {
		case a == "-config" || a == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "-config="):
			return strings.TrimPrefix(a, "-config=")
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		}
	}
	return ""
}

// sigHandler exits cleanly on interrupt or SIGTERM.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()

	resolvedConfig, configSrc, _ := config.LoadConfigWithPriority(earlyConfigPath(os.Args[1:]))

	showVersion := flag.Bool("version", false, "Show current version")
	buildFile := flag.String("build", "", "Build an index from a newline-delimited phrase file, then exit")
	indexDir := flag.String("index", resolvedConfig.Build.OutputDir, "Index directory to build into or query from")
	configPath := flag.String("config", "", "Custom config file path")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	maxEditDistance := flag.Int("max-edit-distance", resolvedConfig.Build.MaxEditDistance, "Build-time maximum edit distance for FuzzyIndex")
	maxWordD := flag.Int("max-word-d", resolvedConfig.Build.MaxEditDistance, "Query-time per-token maximum edit distance")
	maxTotalD := flag.Int("max-total-d", 2, "Query-time total edit distance budget")
	cacheSize := flag.Int("cache", resolvedConfig.Cache.MaxEntries, "Variant-resolution cache size")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if configSrc != "" {
		log.Debugf("using config: %s", configSrc)
	}

	locator, err := utils.NewIndexLocator()
	if err != nil {
		log.Fatalf("Failed to locate executable: %v", err)
	}

	if *buildFile != "" {
		runBuild(*buildFile, *indexDir, *maxEditDistance)
		return
	}

	resolvedIndexDir, err := locator.GetIndexDir(*indexDir)
	if err != nil {
		log.Fatalf("Failed to resolve index dir: %v", err)
	}

	log.SetReportTimestamp(false)
	instance, err := glue.Open(resolvedIndexDir, *cacheSize)
	if err != nil {
		log.Fatalf("Failed to open index at %s: %v", resolvedIndexDir, err)
	}
	defer instance.Close()

	showStartupInfo(resolvedIndexDir, config.GetActiveConfigPath(*configPath), instance)

	handler := cli.NewInputHandler(instance, *maxWordD, *maxTotalD)
	if err := handler.Start(); err != nil {
		log.Fatalf("REPL error: %v", err)
	}
}

// runBuild reads newline-delimited, whitespace-tokenized phrases from
// srcPath and finalizes an index at outDir.
func runBuild(srcPath, outDir string, maxEditDistance int) {
	f, err := os.Open(srcPath)
	if err != nil {
		log.Fatalf("Failed to open phrase source: %v", err)
	}
	defer f.Close()

	b := glue.NewBuilder(maxEditDistance)
	b.SetSourceFile(srcPath)

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		words := glue.Tokenize(line)
		if len(words) == 0 {
			continue
		}
		if err := b.AddPhrase(words); err != nil {
			log.Fatalf("Failed to add phrase at line %d: %v", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Failed to read phrase source: %v", err)
	}

	meta, err := b.Finalize(outDir)
	if err != nil {
		log.Fatalf("Failed to finalize index: %v", err)
	}

	log.SetLevel(log.InfoLevel)
	log.Infof("Built index at %s: %d words, %d phrases, max_edit_distance=%d",
		outDir, meta.WordCount, meta.PhraseCount, meta.MaxEditDistance)
}

func showStartupInfo(indexDir, configPath string, instance *glue.Instance) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	meta := instance.Metadata()
	println("=============")
	println(" geophrase ")
	println("=============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("index dir: ( %s )", indexDir)
	log.Infof("config: ( %s )", configPath)
	log.Infof("words=%d phrases=%d max_edit_distance=%d", meta.WordCount, meta.PhraseCount, meta.MaxEditDistance)
	log.Info("status: ready")
	println("=============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print(fmt.Sprintf("[ %s ] Approximate/exact multi-word phrase search", AppName))
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
