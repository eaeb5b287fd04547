package generator

import (
	"fmt"
	"strings"
)

// gherkinKeywords are the line-leading keywords a feature file may use.
var gherkinKeywords = []string{
	"Feature:", "Scenario:", "Scenario Outline:", "Background:",
	"Given ", "When ", "Then ", "And ", "But ", "Examples:", "|", "#", "@",
}

// validate runs the structural sanity checks on all three artifacts.
// A failed check is fatal for the run: nothing is written.
func (g *Generator) validate(set *ArtifactSet) error {
	if err := validatePageObject(set.PageObject); err != nil {
		return fmt.Errorf("%w: page object: %v", ErrInvalidArtifact, err)
	}
	if err := validateFeature(set.Feature); err != nil {
		return fmt.Errorf("%w: feature file: %v", ErrInvalidArtifact, err)
	}
	if err := validateStepDefs(set.StepDefinitions); err != nil {
		return fmt.Errorf("%w: step definitions: %v", ErrInvalidArtifact, err)
	}
	return nil
}

func validatePageObject(src string) error {
	if strings.TrimSpace(src) == "" {
		return fmt.Errorf("empty content")
	}
	if !strings.Contains(src, "package pages") {
		return fmt.Errorf("missing package declaration")
	}
	if !strings.Contains(src, "*scribepages.BasePage") {
		return fmt.Errorf("page object does not embed the base page runtime")
	}
	if !strings.Contains(src, "func New") {
		return fmt.Errorf("missing constructor")
	}
	return nil
}

func validateFeature(src string) error {
	if strings.TrimSpace(src) == "" {
		return fmt.Errorf("empty content")
	}
	lines := strings.Split(src, "\n")
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), "Feature:") {
		return fmt.Errorf("first line must be a Feature declaration")
	}
	if !strings.Contains(src, "Scenario") {
		return fmt.Errorf("missing Scenario declaration")
	}
	if strings.Contains(src, "Scenario Outline:") && !strings.Contains(src, "Examples:") {
		return fmt.Errorf("Scenario Outline requires an Examples table")
	}

	// Every non-blank line after the description block must open with a
	// known Gherkin keyword.
	inBody := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "Scenario") {
			inBody = true
		}
		if !inBody {
			continue // Feature description text
		}
		ok := false
		for _, kw := range gherkinKeywords {
			if strings.HasPrefix(trimmed, kw) {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("line %d is not valid Gherkin: %q", i+1, trimmed)
		}
	}
	return nil
}

func validateStepDefs(src string) error {
	if strings.TrimSpace(src) == "" {
		return fmt.Errorf("empty content")
	}
	if !strings.Contains(src, "package steps") {
		return fmt.Errorf("missing package declaration")
	}
	if !strings.Contains(src, "godog.ScenarioContext") {
		return fmt.Errorf("missing scenario context registration")
	}
	if !strings.Contains(src, "ctx.Step(") {
		return fmt.Errorf("no step registrations present")
	}
	return nil
}
