package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Target:
// - Validate() accepts an existing directory
// - Validate() rejects a missing directory and a plain file
// - WriteComponent() creates the components directory and writes content
// - RewriteRoot() emits one import and one preview section per component
// - RewriteRoot() resolves the import path relative to the root file
// - RewriteRoot() fails when the root file's parent directory is missing
// - Backup() copies the tree to a timestamped sibling
// - Backup() skips dependency directories

func newTestTarget(t *testing.T) Target {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "my-vue-app")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0755))
	return Target{
		Dir:           dir,
		ComponentsDir: "src/components",
		RootFile:      "src/App.vue",
	}
}

func TestValidate_ExistingDirectory(t *testing.T) {
	target := newTestTarget(t)
	assert.NoError(t, target.Validate())
}

func TestValidate_MissingDirectory(t *testing.T) {
	target := Target{Dir: filepath.Join(t.TempDir(), "nope")}
	assert.Error(t, target.Validate())
}

func TestValidate_FileIsNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	target := Target{Dir: file}
	assert.Error(t, target.Validate())
}

func TestWriteComponent_CreatesDirectoryAndFile(t *testing.T) {
	target := newTestTarget(t)

	path, err := target.WriteComponent(ComponentFile{
		Name:       "Card",
		Identifier: "Card",
		FileName:   "Card.vue",
		Content:    "<template>\n  <div>card</div>\n</template>\n",
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(target.Dir, "src/components/Card.vue"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<div>card</div>")
}

func TestRewriteRoot_Content(t *testing.T) {
	target := newTestTarget(t)
	files := []ComponentFile{
		{Name: "Card", Identifier: "Card", FileName: "Card.vue"},
		{Name: "My_Button", Identifier: "My_Button", FileName: "My_Button.vue"},
	}

	require.NoError(t, target.RewriteRoot(files))

	content, err := os.ReadFile(filepath.Join(target.Dir, "src/App.vue"))
	require.NoError(t, err)
	root := string(content)

	assert.Contains(t, root, "import Card from './components/Card.vue'")
	assert.Contains(t, root, "import My_Button from './components/My_Button.vue'")
	assert.Contains(t, root, "<h2>Card</h2>")
	assert.Contains(t, root, "<Card />")
	assert.Contains(t, root, "<My_Button />")
	assert.True(t, strings.HasPrefix(root, "<script setup>\n"))
}

func TestRewriteRoot_OverwritesExistingContent(t *testing.T) {
	target := newTestTarget(t)
	rootPath := filepath.Join(target.Dir, "src/App.vue")
	require.NoError(t, os.WriteFile(rootPath, []byte("original app"), 0644))

	require.NoError(t, target.RewriteRoot([]ComponentFile{
		{Name: "Card", Identifier: "Card", FileName: "Card.vue"},
	}))

	content, err := os.ReadFile(rootPath)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "original app")
}

func TestRewriteRoot_MissingParentDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bare-app")
	require.NoError(t, os.MkdirAll(dir, 0755))

	target := Target{Dir: dir, ComponentsDir: "src/components", RootFile: "src/App.vue"}
	err := target.RewriteRoot([]ComponentFile{{Name: "Card", Identifier: "Card", FileName: "Card.vue"}})
	assert.Error(t, err)
}

func TestBackup_CopiesTree(t *testing.T) {
	target := newTestTarget(t)
	require.NoError(t, os.WriteFile(filepath.Join(target.Dir, "src/App.vue"), []byte("app content"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(target.Dir, "package.json"), []byte("{}"), 0644))

	backupDir, err := target.Backup()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(backupDir), "my-vue-app-backup-"))

	copied, err := os.ReadFile(filepath.Join(backupDir, "src/App.vue"))
	require.NoError(t, err)
	assert.Equal(t, "app content", string(copied))
	assert.FileExists(t, filepath.Join(backupDir, "package.json"))

	// The original tree is untouched.
	assert.FileExists(t, filepath.Join(target.Dir, "src/App.vue"))
}

func TestBackup_SkipsDependencyDirectories(t *testing.T) {
	target := newTestTarget(t)
	require.NoError(t, os.MkdirAll(filepath.Join(target.Dir, "node_modules/leftpad"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(target.Dir, "node_modules/leftpad/index.js"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(target.Dir, "src/App.vue"), []byte("app"), 0644))

	backupDir, err := target.Backup()
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(backupDir, "node_modules"))
	assert.FileExists(t, filepath.Join(backupDir, "src/App.vue"))
}
