// Package scaffold writes synthesized components into a Vue application
// directory: one file per component under the components directory, a
// rewritten root file importing them all, and a timestamped backup of the
// target taken before anything is touched.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ComponentFile is one synthesized component ready to be written: its
// final name, the identifier used in import statements, its filename under
// the components directory, and the full file content.
type ComponentFile struct {
	Name       string
	Identifier string
	FileName   string
	Content    string
}

// Target locates the application directory the importer writes into.
// ComponentsDir and RootFile are relative to Dir.
type Target struct {
	Dir           string
	ComponentsDir string
	RootFile      string
}

// Validate confirms the target directory exists. It runs before any write
// so a mistyped path fails the whole run instead of creating a skeleton in
// the wrong place.
func (t Target) Validate() error {
	info, err := os.Stat(t.Dir)
	if err != nil {
		return fmt.Errorf("target directory %q not found: %w", t.Dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("target %q is not a directory", t.Dir)
	}
	return nil
}

// WriteComponent writes one component file under the components directory,
// creating the directory on first use, and returns the written path.
func (t Target) WriteComponent(file ComponentFile) (string, error) {
	dir := filepath.Join(t.Dir, t.ComponentsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create components directory: %w", err)
	}

	path := filepath.Join(dir, file.FileName)
	if err := os.WriteFile(path, []byte(file.Content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", file.FileName, err)
	}
	return path, nil
}

// RewriteRoot overwrites the root application file with an import per
// component and a preview section rendering each one under a labeled
// heading. The previous content is discarded entirely; Backup is the
// safety net. The root file's parent directory is not created, so a target
// that never had the expected layout fails here rather than gaining one.
func (t Target) RewriteRoot(files []ComponentFile) error {
	path := filepath.Join(t.Dir, t.RootFile)
	if err := os.WriteFile(path, []byte(t.rootContent(files)), 0644); err != nil {
		return fmt.Errorf("failed to rewrite root file: %w", err)
	}
	return nil
}

func (t Target) rootContent(files []ComponentFile) string {
	importDir, err := filepath.Rel(filepath.Dir(t.RootFile), t.ComponentsDir)
	if err != nil {
		importDir = t.ComponentsDir
	}
	importDir = filepath.ToSlash(importDir)

	var sb strings.Builder

	sb.WriteString("<script setup>\n")
	for _, f := range files {
		sb.WriteString(fmt.Sprintf("import %s from './%s/%s'\n", f.Identifier, importDir, f.FileName))
	}
	sb.WriteString("</script>\n")

	sb.WriteString("\n<template>\n")
	sb.WriteString("  <main class=\"imported-components\">\n")
	for _, f := range files {
		sb.WriteString("    <section class=\"component-preview\">\n")
		sb.WriteString(fmt.Sprintf("      <h2>%s</h2>\n", f.Name))
		sb.WriteString(fmt.Sprintf("      <%s />\n", f.Identifier))
		sb.WriteString("    </section>\n")
	}
	sb.WriteString("  </main>\n")
	sb.WriteString("</template>\n")

	return sb.String()
}
