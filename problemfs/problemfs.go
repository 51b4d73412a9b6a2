// Package problemfs reads problems from their on-disk directory
// format:
//
//	<dir>/
//	  problem.toml   manifest: short id, title, difficulty, tags
//	  statement.md   problem statement in markdown
//	  examples/      visible tests: NNN.in / NNN.out / NNN.md (note)
//	  tests/         hidden tests:  NNN.in / NNN.out
//	  solutions/     reference solutions named in the manifest
package problemfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/algotide/backend/problem"
	"github.com/pelletier/go-toml/v2"
)

type ProblemTOML struct {
	ShortID    string         `toml:"short_id"`
	Title      string         `toml:"title"`
	Difficulty string         `toml:"difficulty"`
	Tags       []string       `toml:"tags"`
	Solutions  []TomlSolution `toml:"solutions"`
}

type TomlSolution struct {
	Filename string `toml:"filename"`
	Language string `toml:"language"`
}

// Read parses a problem directory into its domain form.
func Read(dirPath string) (*problem.Problem, error) {
	manifestBytes, err := os.ReadFile(filepath.Join(dirPath, "problem.toml"))
	if err != nil {
		return nil, fmt.Errorf("failed to read problem.toml: %w", err)
	}

	var manifest ProblemTOML
	if err := toml.Unmarshal(manifestBytes, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse problem.toml: %w", err)
	}

	statement, err := os.ReadFile(filepath.Join(dirPath, "statement.md"))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read statement.md: %w", err)
	}

	visible, err := readTestsDir(filepath.Join(dirPath, "examples"), true)
	if err != nil {
		return nil, err
	}
	hidden, err := readTestsDir(filepath.Join(dirPath, "tests"), false)
	if err != nil {
		return nil, err
	}

	solutions, err := readSolutions(dirPath, manifest.Solutions)
	if err != nil {
		return nil, err
	}

	return &problem.Problem{
		ShortID:      manifest.ShortID,
		Title:        manifest.Title,
		Difficulty:   problem.Difficulty(manifest.Difficulty),
		Statement:    string(statement),
		Tags:         manifest.Tags,
		VisibleTests: visible,
		HiddenTests:  hidden,
		Solutions:    solutions,
	}, nil
}

// readTestsDir pairs NNN.in with NNN.out by shared base name, in
// lexicographic order. An optional NNN.md note becomes the test's
// explanation when notes are allowed.
func readTestsDir(dirPath string, withNotes bool) ([]problem.TestCase, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read tests directory %s: %w", dirPath, err)
	}

	byBase := make(map[string]map[string]string) // base -> ext -> filename
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		base := strings.TrimSuffix(entry.Name(), ext)
		if byBase[base] == nil {
			byBase[base] = make(map[string]string)
		}
		byBase[base][ext] = entry.Name()
	}

	bases := make([]string, 0, len(byBase))
	for base := range byBase {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	var tests []problem.TestCase
	for _, base := range bases {
		files := byBase[base]
		inName, ok := files[".in"]
		if !ok {
			return nil, fmt.Errorf("test %s in %s has no .in file", base, dirPath)
		}
		outName, ok := files[".out"]
		if !ok {
			return nil, fmt.Errorf("test %s in %s has no .out file", base, dirPath)
		}

		input, err := os.ReadFile(filepath.Join(dirPath, inName))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", inName, err)
		}
		answer, err := os.ReadFile(filepath.Join(dirPath, outName))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", outName, err)
		}

		tc := problem.TestCase{
			Input:  strings.TrimRight(string(input), "\n"),
			Answer: strings.TrimRight(string(answer), "\n"),
		}
		if withNotes {
			if noteName, ok := files[".md"]; ok {
				note, err := os.ReadFile(filepath.Join(dirPath, noteName))
				if err != nil {
					return nil, fmt.Errorf("failed to read %s: %w", noteName, err)
				}
				tc.Explanation = strings.TrimSpace(string(note))
			}
		}
		tests = append(tests, tc)
	}
	return tests, nil
}

func readSolutions(dirPath string, manifest []TomlSolution) ([]problem.Solution, error) {
	var solutions []problem.Solution
	for _, s := range manifest {
		src, err := os.ReadFile(filepath.Join(dirPath, "solutions", s.Filename))
		if err != nil {
			return nil, fmt.Errorf("failed to read solution %s: %w", s.Filename, err)
		}
		solutions = append(solutions, problem.Solution{
			Language: s.Language,
			SrcCode:  string(src),
		})
	}
	return solutions, nil
}
