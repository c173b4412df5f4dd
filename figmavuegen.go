package figmavuegen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hellenic-development/figma-vuegen/pkg/codefile"
	"github.com/hellenic-development/figma-vuegen/pkg/exporter"
	"github.com/hellenic-development/figma-vuegen/pkg/figma"
	"github.com/hellenic-development/figma-vuegen/pkg/scaffold"
	"github.com/hellenic-development/figma-vuegen/pkg/sfc"
)

// Default locations used when the corresponding option is left empty.
const (
	DefaultInputFile     = "downloaded-components.txt"
	DefaultTargetDir     = "my-vue-app"
	DefaultComponentsDir = "src/components"
	DefaultRootFile      = "src/App.vue"
)

// Errors reported by RunImport before anything is written.
var (
	ErrNoComponents           = errors.New("no components found in input")
	ErrNoRenderableComponents = errors.New("no components with template code found in input")
)

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// ProgressReporter observes component writing. A nil reporter means no
// progress output.
type ProgressReporter interface {
	Start(total int)
	Step(name string)
	Finish()
}

// ImportOptions configures an import run.
type ImportOptions struct {
	InputPath     string           // interchange text produced by an export; empty = DefaultInputFile
	TargetDir     string           // Vue application root; empty = DefaultTargetDir
	ComponentsDir string           // relative to TargetDir; empty = DefaultComponentsDir
	RootFile      string           // relative to TargetDir; empty = DefaultRootFile
	SkipBackup    bool             // skip the pre-import copy of TargetDir
	Logger        Logger           // nil = no logging
	Progress      ProgressReporter // nil = no progress output
}

// ImportResult contains the import output.
type ImportResult struct {
	Parsed     int                      // components parsed from the input
	Components []scaffold.ComponentFile // component files written
	Skipped    []string                 // names of components without template code
	BackupDir  string                   // empty when the backup was skipped
	RootFile   string                   // path of the rewritten root file
}

func (o *ImportOptions) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *ImportOptions) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *ImportOptions) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

func (o *ImportOptions) progressStart(total int) {
	if o.Progress != nil {
		o.Progress.Start(total)
	}
}

func (o *ImportOptions) progressStep(name string) {
	if o.Progress != nil {
		o.Progress.Step(name)
	}
}

func (o *ImportOptions) progressFinish() {
	if o.Progress != nil {
		o.Progress.Finish()
	}
}

// RunImport executes the import pipeline and returns the result.
//
// Names are resolved before any file is written: each component claims a
// collision-free name up front and every artifact derived from it (file
// name, import identifier, default export) uses that final name. The
// target is backed up before the first write unless SkipBackup is set.
//
// Component files are written before the root file is rewritten, so a
// failed rewrite still leaves valid components on disk; in that case the
// returned result lists them alongside the error.
func RunImport(opts ImportOptions) (*ImportResult, error) {
	// Apply defaults.
	if opts.InputPath == "" {
		opts.InputPath = DefaultInputFile
	}
	if opts.TargetDir == "" {
		opts.TargetDir = DefaultTargetDir
	}
	if opts.ComponentsDir == "" {
		opts.ComponentsDir = DefaultComponentsDir
	}
	if opts.RootFile == "" {
		opts.RootFile = DefaultRootFile
	}

	opts.logInfo("Reading %s...", opts.InputPath)
	data, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}

	target := scaffold.Target{
		Dir:           opts.TargetDir,
		ComponentsDir: opts.ComponentsDir,
		RootFile:      opts.RootFile,
	}
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("validate target: %w", err)
	}

	opts.logInfo("Parsing components...")
	components := codefile.Parse(string(data))
	if len(components) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoComponents, opts.InputPath)
	}
	opts.logInfo("Parsed %d component(s)", len(components))

	renderable := 0
	for _, c := range components {
		if sfc.HasTemplate(c) {
			renderable++
		}
	}
	if renderable == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRenderableComponents, opts.InputPath)
	}

	result := &ImportResult{
		Parsed:   len(components),
		RootFile: filepath.Join(opts.TargetDir, opts.RootFile),
	}

	if opts.SkipBackup {
		opts.logInfo("Skipping backup")
	} else {
		opts.logInfo("Backing up %s...", opts.TargetDir)
		backupDir, err := target.Backup()
		if err != nil {
			return nil, fmt.Errorf("back up target: %w", err)
		}
		opts.logInfo("Backup created at %s", backupDir)
		result.BackupDir = backupDir
	}

	opts.logInfo("Writing %d component(s) to %s...", renderable, filepath.Join(opts.TargetDir, opts.ComponentsDir))
	opts.progressStart(renderable)

	names := sfc.NewNameTable()
	for i, comp := range components {
		if !sfc.HasTemplate(comp) {
			name := sfc.BaseName(comp.Name, i)
			opts.logWarn("Skipping %s: no template code", name)
			result.Skipped = append(result.Skipped, name)
			continue
		}

		final := names.Claim(sfc.BaseName(comp.Name, i))
		file := scaffold.ComponentFile{
			Name:       final,
			Identifier: sfc.Identifier(final),
			FileName:   final + ".vue",
			Content:    sfc.Build(comp, final),
		}
		if _, err := target.WriteComponent(file); err != nil {
			return nil, fmt.Errorf("write component %s: %w", file.FileName, err)
		}
		result.Components = append(result.Components, file)
		opts.progressStep(file.FileName)
	}
	opts.progressFinish()

	opts.logInfo("Rewriting %s...", result.RootFile)
	if err := target.RewriteRoot(result.Components); err != nil {
		opts.logError("Root file rewrite failed: %v", err)
		return result, fmt.Errorf("rewrite root file: %w", err)
	}

	return result, nil
}

// ExportOptions configures an export run.
type ExportOptions struct {
	AccessToken string
	FileURL     string                 // Figma file URL
	NodeIDs     []string               // empty = derive from URL, else first page
	Generator   exporter.CodeGenerator // nil = built-in markup and style generator
	Logger      Logger                 // nil = no logging
}

// ExportResult contains the export output.
type ExportResult struct {
	FrameName  string // name of the first exported container
	FileName   string // output filename derived from FrameName
	Text       string // interchange text, ready to write to disk
	Components int    // components exported
	Skipped    int    // children skipped after generator failures
}

func (o *ExportOptions) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *ExportOptions) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// RunExport executes the export pipeline and returns the result.
func RunExport(opts ExportOptions) (*ExportResult, error) {
	// Extract file key from URL.
	opts.logInfo("Extracting file key from URL...")
	fileKey, err := figma.ExtractFileKey(opts.FileURL)
	if err != nil {
		return nil, fmt.Errorf("extract file key: %w", err)
	}
	opts.logInfo("File key: %s", fileKey)

	// Extract node IDs from URL unless explicit ones were given.
	var targetNodeIDs []string
	if len(opts.NodeIDs) > 0 {
		opts.logInfo("Using %d explicit node ID(s)", len(opts.NodeIDs))
		targetNodeIDs = opts.NodeIDs
	} else {
		opts.logInfo("Checking URL for node IDs...")
		urlNodeIDs, err := figma.ExtractNodeIDs(opts.FileURL)
		if err != nil {
			return nil, fmt.Errorf("extract node IDs from URL: %w", err)
		}
		if len(urlNodeIDs) > 0 {
			targetNodeIDs = urlNodeIDs
			opts.logInfo("Found %d node(s) in URL", len(targetNodeIDs))
		} else {
			opts.logInfo("No node IDs found, will export the first page")
		}
	}

	opts.logInfo("Authenticating with Figma API...")
	client := figma.NewClient(opts.AccessToken)

	var (
		components []codefile.Component
		skipped    int
		frameName  string
	)

	// Choose the containers to walk based on whether node IDs are known.
	if len(targetNodeIDs) > 0 {
		opts.logInfo("Fetching %d node(s) from Figma...", len(targetNodeIDs))
		nodesResp, err := client.GetFileNodes(fileKey, targetNodeIDs)
		if err != nil {
			return nil, fmt.Errorf("fetch nodes: %w", err)
		}
		opts.logInfo("Retrieved %d node(s)", len(nodesResp.Nodes))

		for _, id := range targetNodeIDs {
			nd, ok := nodesResp.Nodes[id]
			if !ok || nd.Document.ID == "" {
				opts.logWarn("Node %s not found in file", id)
				continue
			}
			if frameName == "" {
				frameName = nd.Document.Name
			}
			doc := nd.Document
			opts.logInfo("Exporting %q (%d children)...", doc.Name, len(doc.Children))
			res := exporter.Export(&doc, generatorFor(opts.Generator, nd.Components))
			for _, skip := range res.Skipped {
				opts.logWarn("Skipped: %v", skip)
			}
			skipped += len(res.Skipped)
			components = append(components, res.Components...)
		}
	} else {
		opts.logInfo("Fetching file data from Figma...")
		fileResp, err := client.GetFile(fileKey)
		if err != nil {
			return nil, fmt.Errorf("fetch file: %w", err)
		}
		opts.logInfo("File: %s", fileResp.Name)

		page := firstPage(&fileResp.Document)
		if page == nil {
			return nil, fmt.Errorf("file %q has no pages", fileResp.Name)
		}
		frameName = page.Name

		opts.logInfo("Exporting %q (%d children)...", page.Name, len(page.Children))
		res := exporter.Export(page, generatorFor(opts.Generator, fileResp.Components))
		for _, skip := range res.Skipped {
			opts.logWarn("Skipped: %v", skip)
		}
		skipped = len(res.Skipped)
		components = res.Components
	}

	if len(components) == 0 {
		opts.logWarn("No components exported; the output file will be empty")
	}

	opts.logInfo("Serializing %d component(s)...", len(components))
	return &ExportResult{
		FrameName:  frameName,
		FileName:   exporter.FileName(frameName),
		Text:       codefile.Marshal(components),
		Components: len(components),
		Skipped:    skipped,
	}, nil
}

func generatorFor(gen exporter.CodeGenerator, components map[string]figma.Component) exporter.CodeGenerator {
	if gen != nil {
		return gen
	}
	return exporter.DefaultGenerator{Components: components}
}

// firstPage returns the document's first page node.
func firstPage(document *figma.Node) *figma.Node {
	for i := range document.Children {
		if document.Children[i].Type == "CANVAS" {
			return &document.Children[i]
		}
	}
	return nil
}

// ParseNodeIDs parses a comma-separated string of node IDs and returns a slice.
func ParseNodeIDs(nodeIDsStr string) []string {
	parts := strings.Split(nodeIDsStr, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
