package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	figmavuegen "github.com/hellenic-development/figma-vuegen"
	"github.com/hellenic-development/figma-vuegen/pkg/config"
	"github.com/hellenic-development/figma-vuegen/pkg/figma"
	"github.com/hellenic-development/figma-vuegen/pkg/watcher"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const version = figma.Version

var (
	// import flags
	targetDir     string
	componentsDir string
	rootFile      string
	noBackup      bool
	watchInput    bool
	quiet         bool

	// export flags
	figmaURL    string
	accessToken string
	nodeIDs     string
	outputFile  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "figma-vuegen",
		Short: "Turn Figma designs into Vue single-file components",
		Long:  "A tool to export per-frame code from Figma files and synthesize Vue single-file components from the exported text",
	}

	importCmd := &cobra.Command{
		Use:   "import [input-file]",
		Short: "Synthesize Vue components from an exported interchange file",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}
	importCmd.Flags().StringVarP(&targetDir, "target", "t", "", "Target Vue application directory")
	importCmd.Flags().StringVar(&componentsDir, "components", "", "Components directory, relative to the target")
	importCmd.Flags().StringVar(&rootFile, "root-file", "", "Root application file, relative to the target")
	importCmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the pre-import backup of the target directory")
	importCmd.Flags().BoolVarP(&watchInput, "watch", "w", false, "Keep running and re-import whenever the input file changes")
	importCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export per-frame code from a Figma file to interchange text",
		Run:   runExport,
	}
	exportCmd.Flags().StringVarP(&figmaURL, "url", "u", "", "Figma file URL (required)")
	exportCmd.Flags().StringVarP(&accessToken, "token", "t", "", "Figma Personal Access Token (defaults to FIGMA_TOKEN)")
	exportCmd.Flags().StringVarP(&nodeIDs, "node-ids", "n", "", "Comma-separated node IDs to export (overrides the URL's node-id)")
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (defaults to a name derived from the frame)")
	exportCmd.MarkFlagRequired("url")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("figma-vuegen version %s\n", version)
		},
	}

	rootCmd.AddCommand(importCmd, exportCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runImport(cmd *cobra.Command, args []string) {
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n🧩 Figma Vue Importer")
	cyan.Println("=====================")
	cyan.Println()

	cfg, err := config.Load()
	if err != nil {
		red.Fprintf(color.Error, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags beat the config file, which beats the defaults.
	input := cfg.Input
	if len(args) > 0 {
		input = args[0]
	}
	if cmd.Flags().Changed("target") {
		cfg.Target.Dir = targetDir
	}
	if cmd.Flags().Changed("components") {
		cfg.Target.ComponentsDir = componentsDir
	}
	if cmd.Flags().Changed("root-file") {
		cfg.Target.RootFile = rootFile
	}
	skipBackup := !cfg.Backup.Enabled
	if cmd.Flags().Changed("no-backup") {
		skipBackup = noBackup
	}

	var logger figmavuegen.Logger
	if !quiet {
		logger = &cliLogger{}
	}

	opts := figmavuegen.ImportOptions{
		InputPath:     input,
		TargetDir:     cfg.Target.Dir,
		ComponentsDir: cfg.Target.ComponentsDir,
		RootFile:      cfg.Target.RootFile,
		SkipBackup:    skipBackup,
		Logger:        logger,
		Progress:      &barReporter{quiet: quiet},
	}

	if !watchInput {
		result, err := figmavuegen.RunImport(opts)
		if err != nil {
			red.Fprintf(color.Error, "Error: %v\n", err)
			os.Exit(1)
		}
		printImportSummary(result)
		return
	}

	// Watch mode. The first import backs up the target; re-imports write
	// over the previous run's output and skip the backup. A failed import
	// keeps watching so a fixed input file picks right back up.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if result, err := figmavuegen.RunImport(opts); err != nil {
		red.Fprintf(color.Error, "Error: %v\n", err)
	} else {
		printImportSummary(result)
	}

	w, err := watcher.New(input)
	if err != nil {
		red.Fprintf(color.Error, "Error: %v\n", err)
		os.Exit(1)
	}
	defer w.Close()

	reOpts := opts
	reOpts.SkipBackup = true

	cyan.Printf("\n👀 Watching %s for changes (Ctrl+C to stop)\n", w.Path())
	err = w.Run(ctx, func() {
		cyan.Printf("\n🔄 %s changed, re-importing...\n", input)
		if result, err := figmavuegen.RunImport(reOpts); err != nil {
			red.Fprintf(color.Error, "Error: %v\n", err)
		} else {
			printImportSummary(result)
		}
	})
	if err != nil {
		red.Fprintf(color.Error, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printImportSummary(result *figmavuegen.ImportResult) {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n📦 Import Summary:")
	fmt.Printf("  • Components parsed: %d\n", result.Parsed)
	fmt.Printf("  • Components written: %d\n", len(result.Components))
	if len(result.Skipped) > 0 {
		fmt.Printf("  • Skipped (no template code): %s\n", strings.Join(result.Skipped, ", "))
	}
	if result.BackupDir != "" {
		fmt.Printf("  • Backup: %s\n", result.BackupDir)
	}

	green.Printf("\n✨ Successfully imported %d component(s), rewrote %s\n", len(result.Components), result.RootFile)
}

func runExport(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n🎨 Figma Vue Exporter")
	cyan.Println("=====================")
	cyan.Println()

	cfg, err := config.Load()
	if err != nil {
		red.Fprintf(color.Error, "Error: %v\n", err)
		os.Exit(1)
	}

	token := accessToken
	if token == "" {
		token = os.Getenv("FIGMA_TOKEN")
	}
	if token == "" {
		red.Fprintln(color.Error, "Error: no access token; pass --token or set FIGMA_TOKEN")
		os.Exit(1)
	}

	var parsedNodeIDs []string
	if nodeIDs != "" {
		parsedNodeIDs = figmavuegen.ParseNodeIDs(nodeIDs)
	}

	result, err := figmavuegen.RunExport(figmavuegen.ExportOptions{
		AccessToken: token,
		FileURL:     figmaURL,
		NodeIDs:     parsedNodeIDs,
		Logger:      &cliLogger{},
	})
	if err != nil {
		red.Fprintf(color.Error, "Error: %v\n", err)
		os.Exit(1)
	}

	out := result.FileName
	if cmd.Flags().Changed("output") {
		out = outputFile
	} else if cfg.Export.Output != "" {
		out = cfg.Export.Output
	}

	cyan.Println("\n📊 Export Summary:")
	fmt.Printf("  • Frame: %s\n", result.FrameName)
	fmt.Printf("  • Components: %d\n", result.Components)
	if result.Skipped > 0 {
		fmt.Printf("  • Skipped children: %d\n", result.Skipped)
	}

	green.Printf("\n💾 Writing to %s... ", out)
	if err := os.WriteFile(out, []byte(result.Text), 0644); err != nil {
		red.Printf("✗\n")
		red.Fprintf(color.Error, "Error: %v\n", err)
		os.Exit(1)
	}
	green.Println("✓")

	green.Printf("\n✨ Successfully exported %d component(s) to %s\n\n", result.Components, out)
}

// cliLogger implements figmavuegen.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}

// barReporter implements figmavuegen.ProgressReporter with a terminal
// progress bar.
type barReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

func (r *barReporter) Start(total int) {
	if r.quiet {
		return
	}
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Writing components"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (r *barReporter) Step(name string) {
	if r.bar == nil {
		return
	}
	r.bar.Add(1)
}

func (r *barReporter) Finish() {
	if r.bar == nil {
		return
	}
	r.bar.Finish()
}
