// Package figmavuegen turns Figma designs into Vue single-file components.
//
// The pipeline has two halves. The export half walks a selected Figma
// container via the Figma API and serializes one named, language-tagged
// code component per child frame into a plain text interchange file. The
// import half parses that file, synthesizes a .vue component for every
// entry that carries template code, and rewires a target Vue application
// to render them all.
//
// The CLI lives in cmd/figma-vuegen; this root package exposes the same
// pipeline as a Go API so that callers can embed either half in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmavuegen:
//
//	import "github.com/hellenic-development/figma-vuegen" // package figmavuegen
//
// # Quick start
//
//	export, err := figmavuegen.RunExport(figmavuegen.ExportOptions{
//	    AccessToken: os.Getenv("FIGMA_TOKEN"),
//	    FileURL:     "https://www.figma.com/design/ABC123/My-Design?node-id=1-2",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(export.FileName, []byte(export.Text), 0644)
//
//	result, err := figmavuegen.RunImport(figmavuegen.ImportOptions{
//	    InputPath: export.FileName,
//	    TargetDir: "my-vue-app",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Printf("wrote %d components", len(result.Components))
//
// # Logging
//
// Pass a [Logger] implementation in [ImportOptions.Logger] or
// [ExportOptions.Logger] to receive progress messages. A nil Logger
// silences all output.
//
//	type myLogger struct{}
//	func (l *myLogger) Infof(f string, a ...any)  { log.Printf("[INFO]  "+f, a...) }
//	func (l *myLogger) Warnf(f string, a ...any)  { log.Printf("[WARN]  "+f, a...) }
//	func (l *myLogger) Errorf(f string, a ...any) { log.Printf("[ERROR] "+f, a...) }
//
// # Selecting a container
//
// To export a specific frame rather than the file's first page, populate
// [ExportOptions.NodeIDs] or include a node-id query parameter in the
// Figma URL. Each node ID is exported as its own container and the
// components accumulate in document order.
//
// # Safety
//
// RunImport copies the target directory to a timestamped sibling before
// the first write unless [ImportOptions.SkipBackup] is set, and it never
// creates the target directory itself: importing into a mistyped path
// fails instead of scaffolding a skeleton in the wrong place.
package figmavuegen
