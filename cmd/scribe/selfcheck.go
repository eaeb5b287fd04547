package main

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/scribe/pkg/generator"
	"github.com/entrhq/scribe/pkg/locator"
	"github.com/entrhq/scribe/pkg/recording"
)

//go:embed demo/inventory_recording.ts
var demoRecording string

//go:embed demo/manifest.yaml
var demoManifest []byte

// checkManifest describes the properties the demo artifacts must have.
type checkManifest struct {
	FeatureName        string   `yaml:"feature_name"`
	PageURL            string   `yaml:"page_url"`
	ActionCount        int      `yaml:"action_count"`
	PageObjectContains []string `yaml:"page_object_contains"`
	FeatureContains    []string `yaml:"feature_contains"`
	StepDefsContains   []string `yaml:"step_defs_contains"`
}

var (
	stepLineRe    = regexp.MustCompile(`^\s*(?:Given|When|Then|And|But)\s+(.*)$`)
	stepPatternRe = regexp.MustCompile("ctx\\.Step\\(`([^`]+)`")
)

// runSelfCheck generates artifacts from the embedded demo recording into
// a temp directory and checks them against the embedded manifest.
func runSelfCheck(cli *CLIConfig) error {
	var manifest checkManifest
	if err := yaml.Unmarshal(demoManifest, &manifest); err != nil {
		return fmt.Errorf("failed to parse self-check manifest: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "scribe-selfcheck-")
	if err != nil {
		return fmt.Errorf("failed to create self-check dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	extractor := recording.NewExtractor()
	actions := extractor.Extract(demoRecording)
	if len(actions) != manifest.ActionCount {
		return fmt.Errorf("self-check: extracted %d actions, expected %d", len(actions), manifest.ActionCount)
	}

	gen := generator.New(locator.NewResolver(nil), generator.Options{
		FeatureName: manifest.FeatureName,
		PageURL:     manifest.PageURL,
		OutputDir:   tempDir,
	})

	set, err := gen.Generate(actions)
	if err != nil {
		return fmt.Errorf("self-check generation failed: %w", err)
	}

	if err := checkContains("page object", set.PageObject, manifest.PageObjectContains); err != nil {
		return err
	}
	if err := checkContains("feature file", set.Feature, manifest.FeatureContains); err != nil {
		return err
	}
	if err := checkContains("step definitions", set.StepDefinitions, manifest.StepDefsContains); err != nil {
		return err
	}

	if err := checkStepCoverage(set.Feature, set.StepDefinitions); err != nil {
		return err
	}

	report, err := gen.Write(set)
	if err != nil {
		return fmt.Errorf("self-check write failed: %w", err)
	}
	for _, path := range []string{report.PageObjectPath, report.FeaturePath, report.StepDefsPath} {
		if _, statErr := os.Stat(path); statErr != nil {
			return fmt.Errorf("self-check: artifact %s not written: %w", path, statErr)
		}
	}

	fmt.Printf("Self-check passed: %d actions, 3 artifacts, all steps defined\n", len(actions))
	return nil
}

func checkContains(artifact, content string, wants []string) error {
	for _, want := range wants {
		if !strings.Contains(content, want) {
			return fmt.Errorf("self-check: %s missing %q", artifact, want)
		}
	}
	return nil
}

// checkStepCoverage verifies every feature step phrase is matched by a
// registered step pattern.
func checkStepCoverage(feature, stepDefs string) error {
	var patterns []*regexp.Regexp
	for _, m := range stepPatternRe.FindAllStringSubmatch(stepDefs, -1) {
		re, err := regexp.Compile(m[1])
		if err != nil {
			return fmt.Errorf("self-check: invalid step pattern %q: %w", m[1], err)
		}
		patterns = append(patterns, re)
	}

	for _, line := range strings.Split(feature, "\n") {
		m := stepLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		phrase := strings.TrimSpace(m[1])

		covered := false
		for _, re := range patterns {
			if re.MatchString(phrase) {
				covered = true
				break
			}
		}
		if !covered {
			return fmt.Errorf("self-check: feature step %q has no step definition", phrase)
		}
	}
	return nil
}
