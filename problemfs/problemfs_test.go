package problemfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/algotide/backend/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "problem.toml"), `
short_id = "add-two"
title = "Add Two Numbers"
difficulty = "medium"
tags = ["math", "intro"]

[[solutions]]
filename = "main.cpp"
language = "c++"
`)
	writeFile(t, filepath.Join(dir, "statement.md"), "Read two integers and print their sum.\n")

	writeFile(t, filepath.Join(dir, "examples", "001.in"), "1\n1\n")
	writeFile(t, filepath.Join(dir, "examples", "001.out"), "2\n")
	writeFile(t, filepath.Join(dir, "examples", "001.md"), "1+1=2\n")

	writeFile(t, filepath.Join(dir, "tests", "001.in"), "1\n2\n")
	writeFile(t, filepath.Join(dir, "tests", "001.out"), "3\n")
	writeFile(t, filepath.Join(dir, "tests", "002.in"), "2\n3\n")
	writeFile(t, filepath.Join(dir, "tests", "002.out"), "5\n")

	writeFile(t, filepath.Join(dir, "solutions", "main.cpp"), "int main() { return 0; }\n")

	return dir
}

func TestReadProblemDir(t *testing.T) {
	dir := writeFixture(t)

	p, err := Read(dir)
	require.NoError(t, err)

	assert.Equal(t, "add-two", p.ShortID)
	assert.Equal(t, "Add Two Numbers", p.Title)
	assert.Equal(t, problem.DifficultyMedium, p.Difficulty)
	assert.Equal(t, []string{"math", "intro"}, p.Tags)
	assert.Equal(t, "Read two integers and print their sum.\n", p.Statement)

	require.Len(t, p.VisibleTests, 1)
	assert.Equal(t, "1\n1", p.VisibleTests[0].Input)
	assert.Equal(t, "2", p.VisibleTests[0].Answer)
	assert.Equal(t, "1+1=2", p.VisibleTests[0].Explanation)

	require.Len(t, p.HiddenTests, 2)
	assert.Equal(t, "1\n2", p.HiddenTests[0].Input)
	assert.Equal(t, "3", p.HiddenTests[0].Answer)
	assert.Equal(t, "2\n3", p.HiddenTests[1].Input)
	assert.Equal(t, "5", p.HiddenTests[1].Answer)

	require.Len(t, p.Solutions, 1)
	assert.Equal(t, "c++", p.Solutions[0].Language)
}

func TestReadMissingOutFile(t *testing.T) {
	dir := writeFixture(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "tests", "002.out")))

	_, err := Read(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002")
}

func TestReadMissingManifest(t *testing.T) {
	_, err := Read(t.TempDir())
	require.Error(t, err)
}
