// Package replay drives a browser through a resolved action sequence to
// smoke-verify the locators that will be baked into generated artifacts.
package replay

import (
	"fmt"
	"strings"

	"github.com/entrhq/scribe/pkg/logging"
	"github.com/entrhq/scribe/pkg/pages"
	"github.com/entrhq/scribe/pkg/recording"
)

// Finding records one action whose locator failed to resolve on the live
// page, or whose interaction errored.
type Finding struct {
	Action  recording.Action
	Missing bool
	Err     error
}

// Report summarizes a verification run.
type Report struct {
	Total    int
	Findings []Finding
}

// Passed reports whether every action resolved and executed.
func (r *Report) Passed() bool {
	return len(r.Findings) == 0
}

// Summary renders the findings for logs or a defect description.
func (r *Report) Summary() string {
	if r.Passed() {
		return fmt.Sprintf("all %d actions verified", r.Total)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d actions failed verification:\n", len(r.Findings), r.Total)
	for _, f := range r.Findings {
		if f.Missing {
			fmt.Fprintf(&b, "* action %d (%s): no element matches %q\n",
				f.Action.Sequence, f.Action.Kind, f.Action.ResolvedLocator)
			continue
		}
		fmt.Fprintf(&b, "* action %d (%s) on %q: %v\n",
			f.Action.Sequence, f.Action.Kind, f.Action.ResolvedLocator, f.Err)
	}
	return strings.TrimRight(b.String(), "\n")
}

// DefectFiler files a bug from a failed verification run. *jira.Client
// satisfies it.
type DefectFiler interface {
	FileBug(storyKey, summary, description string) (string, error)
}

// Verifier replays actions against a live browser session.
type Verifier struct {
	page *pages.BasePage
	log  *logging.Logger

	// fillValue is substituted for parameterized fill values during
	// replay. Recorded values are preferred when present.
	fillValue string
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithFillValue sets the value typed into fields whose recorded value was
// lifted into an example parameter.
func WithFillValue(value string) VerifierOption {
	return func(v *Verifier) {
		v.fillValue = value
	}
}

// NewVerifier builds a Verifier over an open browser session.
func NewVerifier(session *pages.Session, opts ...VerifierOption) *Verifier {
	log, _ := logging.NewLogger("replay")
	v := &Verifier{
		page:      pages.NewBasePage(session),
		log:       log,
		fillValue: "verification",
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify replays the actions in order. Locator misses and interaction
// errors are collected as findings rather than aborting the run, so one
// broken locator does not mask the rest. Navigation failures do abort:
// nothing later can be meaningfully checked on the wrong page.
func (v *Verifier) Verify(actions []recording.Action) (*Report, error) {
	report := &Report{Total: len(actions)}

	for _, action := range actions {
		if action.Kind == recording.Navigate {
			if err := v.page.Open(action.Value); err != nil {
				return report, fmt.Errorf("verification aborted: %w", err)
			}
			continue
		}

		count, err := v.page.Count(action.ResolvedLocator)
		if err != nil {
			report.Findings = append(report.Findings, Finding{Action: action, Err: err})
			continue
		}
		if count == 0 {
			v.log.Warnf("No element matches %q (action %d)", action.ResolvedLocator, action.Sequence)
			report.Findings = append(report.Findings, Finding{Action: action, Missing: true})
			continue
		}

		if err := v.perform(action); err != nil {
			report.Findings = append(report.Findings, Finding{Action: action, Err: err})
		}
	}

	v.log.Infof("Verification finished: %s", report.Summary())
	return report, nil
}

// VerifyAndFile runs Verify and, when findings exist and a filer is
// provided, files one bug covering all of them. Returns the bug key when
// one was created.
func (v *Verifier) VerifyAndFile(actions []recording.Action, storyKey, featureName string, filer DefectFiler) (*Report, string, error) {
	report, err := v.Verify(actions)
	if err != nil {
		return report, "", err
	}
	if report.Passed() || filer == nil {
		return report, "", nil
	}

	summary := fmt.Sprintf("Broken locators in generated artifacts for %s", featureName)
	key, err := filer.FileBug(storyKey, summary, report.Summary())
	if err != nil {
		return report, "", fmt.Errorf("failed to file verification bug: %w", err)
	}
	return report, key, nil
}

func (v *Verifier) perform(action recording.Action) error {
	switch action.Kind {
	case recording.Click:
		return v.page.Click(action.ResolvedLocator)
	case recording.Fill:
		value := action.Value
		if value == "" {
			value = v.fillValue
		}
		return v.page.Fill(action.ResolvedLocator, value)
	case recording.Select:
		return v.page.Select(action.ResolvedLocator, action.Value)
	case recording.Check:
		return v.page.Check(action.ResolvedLocator)
	case recording.Press:
		return v.page.Press(action.ResolvedLocator, action.Value)
	default:
		return fmt.Errorf("unsupported action kind %q", action.Kind)
	}
}
