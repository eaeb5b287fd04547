// Package bdd runs generated feature files with godog, wiring the browser
// session that generated step definitions expect.
package bdd

import (
	"fmt"
	"io"
	"os"

	"github.com/cucumber/godog"

	"github.com/entrhq/scribe/pkg/logging"
	"github.com/entrhq/scribe/pkg/pages"
)

// Registrar registers one feature's step definitions against a scenario
// context. Generated Initialize<Feature>Scenario functions have this shape.
type Registrar func(ctx *godog.ScenarioContext, session *pages.Session)

// SuiteOptions carries the godog settings the harness exposes.
type SuiteOptions struct {
	// Format is the godog output format. Defaults to "pretty".
	Format string
	// Paths are the feature files or directories to run. Defaults to
	// generated/features.
	Paths []string
	// Tags filters scenarios by tag expression.
	Tags string
	// Output receives the formatted run output. Defaults to stdout.
	Output io.Writer
	// Strict fails the suite on pending or undefined steps.
	Strict bool
}

func (o *SuiteOptions) withDefaults() SuiteOptions {
	out := *o
	if out.Format == "" {
		out.Format = "pretty"
	}
	if len(out.Paths) == 0 {
		out.Paths = []string{"generated/features"}
	}
	if out.Output == nil {
		out.Output = os.Stdout
	}
	return out
}

// Harness owns the browser session shared by every registered feature and
// runs them as one godog suite.
type Harness struct {
	name        string
	sessionOpts pages.SessionOptions
	suiteOpts   SuiteOptions
	registrars  []Registrar
	log         *logging.Logger
}

// NewHarness builds a harness. The session options are applied when Run
// opens the browser.
func NewHarness(name string, sessionOpts pages.SessionOptions, suiteOpts SuiteOptions) *Harness {
	log, _ := logging.NewLogger("bdd")
	return &Harness{
		name:        name,
		sessionOpts: sessionOpts,
		suiteOpts:   suiteOpts.withDefaults(),
		log:         log,
	}
}

// Register adds a feature's step registrar to the suite.
func (h *Harness) Register(registrars ...Registrar) {
	h.registrars = append(h.registrars, registrars...)
}

// Run opens a browser session, executes the suite, and closes the session.
// Returns an error when the suite fails or the browser cannot start.
func (h *Harness) Run() error {
	session, err := pages.NewSession(h.sessionOpts)
	if err != nil {
		return fmt.Errorf("failed to open browser session: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			h.log.Warnf("Failed to close browser session: %v", cerr)
		}
	}()

	suite := godog.TestSuite{
		Name: h.name,
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			for _, register := range h.registrars {
				register(ctx, session)
			}
		},
		Options: &godog.Options{
			Format: h.suiteOpts.Format,
			Paths:  h.suiteOpts.Paths,
			Tags:   h.suiteOpts.Tags,
			Output: h.suiteOpts.Output,
			Strict: h.suiteOpts.Strict,
		},
	}

	h.log.Infof("Running suite %s over %v", h.name, h.suiteOpts.Paths)
	if status := suite.Run(); status != 0 {
		return fmt.Errorf("suite %s failed with status %d", h.name, status)
	}
	return nil
}
