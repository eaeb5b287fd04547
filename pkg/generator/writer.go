package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// WriteReport records where the artifacts landed and whether the
// page-object write was skipped by the never-clobber guard.
type WriteReport struct {
	PageObjectPath    string
	FeaturePath       string
	StepDefsPath      string
	PageObjectSkipped bool
}

// Write persists the artifact set under the output directory. An
// existing page-object file for this feature is never overwritten: the
// write is skipped entirely and reported, protecting hand-edited code.
// Writes are not transactional; a failure on a later artifact leaves
// earlier artifacts on disk, and the error names the artifact that
// failed.
func (g *Generator) Write(set *ArtifactSet) (*WriteReport, error) {
	stem := fileStem(set.FeatureName)
	report := &WriteReport{
		PageObjectPath: filepath.Join(g.opts.OutputDir, "pages", stem+"_page.go"),
		FeaturePath:    filepath.Join(g.opts.OutputDir, "features", stem+".feature"),
		StepDefsPath:   filepath.Join(g.opts.OutputDir, "steps", stem+"_steps.go"),
	}

	if _, err := os.Stat(report.PageObjectPath); err == nil {
		g.log.Infof("page object %s already exists, skipping generation", report.PageObjectPath)
		report.PageObjectSkipped = true
	} else {
		if err := writeArtifact(report.PageObjectPath, set.PageObject); err != nil {
			return report, fmt.Errorf("writing page object: %w", err)
		}
	}

	if err := writeArtifact(report.FeaturePath, set.Feature); err != nil {
		return report, fmt.Errorf("writing feature file: %w", err)
	}
	if err := writeArtifact(report.StepDefsPath, set.StepDefinitions); err != nil {
		return report, fmt.Errorf("writing step definitions: %w", err)
	}

	return report, nil
}

func writeArtifact(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// fileStem lowercases a PascalCase feature name into a snake_case file
// stem: "SignUp" becomes "sign_up".
func fileStem(feature string) string {
	var b strings.Builder
	for i, r := range feature {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(rune(feature[i-1])) {
			b.WriteRune('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
