package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/scribe/pkg/locator"
	"github.com/entrhq/scribe/pkg/recording"
)

func newTestGenerator(t *testing.T, opts Options) *Generator {
	t.Helper()
	if opts.FeatureName == "" {
		opts.FeatureName = "Login Flow"
	}
	if opts.PageURL == "" {
		opts.PageURL = "https://app.example.com/login"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = t.TempDir()
	}
	return New(locator.NewResolver(nil), opts)
}

func loginActions() []recording.Action {
	return []recording.Action{
		{Sequence: 1, Kind: recording.Navigate, Value: "https://app.example.com/login"},
		{Sequence: 2, Kind: recording.Fill, RawLocator: "#username", Value: "qa-user"},
		{Sequence: 3, Kind: recording.Fill, RawLocator: "#password", Value: "secret"},
		{Sequence: 4, Kind: recording.Click, RawLocator: "text=Sign In"},
	}
}

func TestGenerateLoginFlow(t *testing.T) {
	g := newTestGenerator(t, Options{})

	set, err := g.Generate(loginActions())
	require.NoError(t, err)
	assert.Equal(t, "LoginFlow", set.FeatureName)

	t.Run("page object", func(t *testing.T) {
		po := set.PageObject
		assert.Contains(t, po, "type LoginFlowPage struct")
		assert.Contains(t, po, "*scribepages.BasePage")
		assert.Contains(t, po, "func NewLoginFlowPage(session *scribepages.Session)")
		assert.Contains(t, po, `const LoginFlowPageURL = "https://app.example.com/login"`)

		assert.Contains(t, po, "USERNAME = ")
		assert.Contains(t, po, "PASSWORD = ")
		assert.Contains(t, po, "SIGN_IN = ")

		assert.Contains(t, po, "func (p *LoginFlowPage) EnterUsername(value string) error")
		assert.Contains(t, po, "func (p *LoginFlowPage) EnterPassword(value string) error")
		assert.Contains(t, po, "func (p *LoginFlowPage) ClickSignIn() error")
		assert.Contains(t, po, "func (p *LoginFlowPage) NavigateTo() error")
	})

	t.Run("feature file", func(t *testing.T) {
		feature := set.Feature
		lines := strings.Split(feature, "\n")
		assert.Equal(t, "Feature: Login Flow", lines[0])

		assert.Contains(t, feature, "Scenario Outline:")
		assert.Contains(t, feature, "Given the user navigates to the LoginFlow page")
		assert.Contains(t, feature, `And the user enters "<username>" into Username`)
		assert.Contains(t, feature, `And the user enters "<password>" into Password`)
		assert.Contains(t, feature, "When the user clicks Sign In")

		assert.Contains(t, feature, "Examples:")
		assert.Contains(t, feature, "| username | password |")
		assert.Contains(t, feature, "| qa-user | secret |")
	})

	t.Run("step definitions", func(t *testing.T) {
		steps := set.StepDefinitions
		assert.Contains(t, steps, "package steps")
		assert.Contains(t, steps, "func InitializeLoginFlowScenario(ctx *godog.ScenarioContext, session *scribepages.Session)")
		assert.Contains(t, steps, "page := pages.NewLoginFlowPage(session)")

		assert.Contains(t, steps, "page.NavigateTo")
		assert.Contains(t, steps, "page.EnterUsername")
		assert.Contains(t, steps, "page.EnterPassword")
		assert.Contains(t, steps, "page.ClickSignIn")
	})

	t.Run("every feature step has a definition", func(t *testing.T) {
		assert.Empty(t, missingDefinitions(set.Feature, set.StepDefinitions))
	})
}

func TestGenerateEmptyInput(t *testing.T) {
	g := newTestGenerator(t, Options{})

	_, err := g.Generate(nil)
	assert.Error(t, err)
}

func TestGenerateSyntheticNavigation(t *testing.T) {
	// An unreadable recording degrades to a single synthetic Navigate;
	// generation must still yield valid artifacts.
	g := newTestGenerator(t, Options{})

	set, err := g.Generate([]recording.Action{{Sequence: 1, Kind: recording.Navigate}})
	require.NoError(t, err)

	assert.Contains(t, set.Feature, "Scenario:")
	assert.NotContains(t, set.Feature, "Scenario Outline:")
	assert.Contains(t, set.Feature, "Given the user navigates to the LoginFlow page")
	assert.Contains(t, set.PageObject, "func (p *LoginFlowPage) NavigateTo() error")
}

func TestGenerateRepeatedLocatorSharesConstant(t *testing.T) {
	g := newTestGenerator(t, Options{FeatureName: "Search"})

	actions := []recording.Action{
		{Sequence: 1, Kind: recording.Navigate, Value: "https://app.example.com"},
		{Sequence: 2, Kind: recording.Fill, RawLocator: "#search-input", Value: "widgets"},
		{Sequence: 3, Kind: recording.Press, RawLocator: "#search-input", Value: "Enter"},
	}

	set, err := g.Generate(actions)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(set.PageObject, "SEARCH = "),
		"repeated resolved locator must reuse the existing constant")
	assert.Contains(t, set.PageObject, "func (p *SearchPage) Search(value string) error")
	assert.Contains(t, set.PageObject, "func (p *SearchPage) PressKeyOnSearch() error")
	assert.Contains(t, set.PageObject, `p.Press(SEARCH, "Enter")`)
}

func TestGenerateExamplesEscapesTableCells(t *testing.T) {
	// A recorded value carrying a pipe or newline must not break the
	// Examples table it lands in.
	g := newTestGenerator(t, Options{FeatureName: "Notes"})

	actions := []recording.Action{
		{Sequence: 1, Kind: recording.Navigate, Value: "https://app.example.com"},
		{Sequence: 2, Kind: recording.Fill, RawLocator: "#notes", Value: "a|b\nc"},
	}

	set, err := g.Generate(actions)
	require.NoError(t, err)

	assert.Contains(t, set.Feature, `| a\|b\nc |`)
	assert.NotContains(t, set.Feature, "| a|b")

	// Every Examples row must stay a single well-formed line.
	for _, line := range strings.Split(set.Feature, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "|") {
			assert.True(t, strings.HasSuffix(trimmed, "|"), "table row %q is not terminated", line)
		}
	}
}

func TestEscapeTableCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a|b", `a\|b`},
		{"a\nb", `a\nb`},
		{"a\r\nb", `a\nb`},
		{`a\b`, `a\\b`},
	}

	for _, tt := range tests {
		if got := escapeTableCell(tt.in); got != tt.want {
			t.Errorf("escapeTableCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateRepeatedActionSharesMethod(t *testing.T) {
	g := newTestGenerator(t, Options{FeatureName: "Cart"})

	actions := []recording.Action{
		{Sequence: 1, Kind: recording.Navigate, Value: "https://app.example.com/cart"},
		{Sequence: 2, Kind: recording.Click, RawLocator: "#add-btn"},
		{Sequence: 3, Kind: recording.Click, RawLocator: "#add-btn"},
	}

	set, err := g.Generate(actions)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(set.PageObject, "func (p *CartPage) ClickAdd() error"),
		"same kind on the same constant must emit one method")
	assert.Equal(t, 1, strings.Count(set.Feature, "the user clicks Add"),
		"duplicate step phrases must collapse in the feature")
}

func TestGenerateNavigationEmittedOnce(t *testing.T) {
	g := newTestGenerator(t, Options{})

	actions := []recording.Action{
		{Sequence: 1, Kind: recording.Navigate, Value: "https://app.example.com/login"},
		{Sequence: 2, Kind: recording.Navigate, Value: "https://app.example.com/login"},
		{Sequence: 3, Kind: recording.Click, RawLocator: "text=Sign In"},
	}

	set, err := g.Generate(actions)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(set.PageObject, "func (p *LoginFlowPage) NavigateTo() error"))
	assert.Equal(t, 1, strings.Count(set.Feature, "the user navigates to the LoginFlow page"))
}

func TestGenerateNameCollisionDisambiguated(t *testing.T) {
	g := newTestGenerator(t, Options{FeatureName: "Profile"})

	// Two distinct elements deriving to the same readable name.
	actions := []recording.Action{
		{Sequence: 1, Kind: recording.Navigate, Value: "https://app.example.com"},
		{Sequence: 2, Kind: recording.Click, RawLocator: "#save-btn"},
		{Sequence: 3, Kind: recording.Click, RawLocator: "text=Save"},
	}

	set, err := g.Generate(actions)
	require.NoError(t, err)

	assert.Contains(t, set.PageObject, "SAVE = ")
	assert.Contains(t, set.PageObject, "SAVE3 = ", "colliding constant must gain a sequence suffix")
	assert.Contains(t, set.PageObject, "func (p *ProfilePage) ClickSave() error")
	assert.Contains(t, set.PageObject, "func (p *ProfilePage) ClickSave3() error")
}

func TestGenerateValueNameBanned(t *testing.T) {
	g := newTestGenerator(t, Options{FeatureName: "Form"})

	actions := []recording.Action{
		{Sequence: 1, Kind: recording.Navigate, Value: "https://app.example.com"},
		{Sequence: 2, Kind: recording.Click, RawLocator: "input[value='Value']"},
	}

	set, err := g.Generate(actions)
	require.NoError(t, err)

	assert.NotContains(t, set.PageObject, "func (p *FormPage) ClickValue()")
	assert.Contains(t, set.PageObject, "func (p *FormPage) PerformAction2() error")
}

func TestGenerateDuplicateColumnSuffixed(t *testing.T) {
	g := newTestGenerator(t, Options{FeatureName: "Transfer"})

	// Two distinct fields deriving to the same column name.
	actions := []recording.Action{
		{Sequence: 1, Kind: recording.Navigate, Value: "https://app.example.com"},
		{Sequence: 2, Kind: recording.Fill, RawLocator: "#amount", Value: "10"},
		{Sequence: 3, Kind: recording.Fill, RawLocator: "input[name='amount']", Value: "20"},
	}

	set, err := g.Generate(actions)
	require.NoError(t, err)

	assert.Contains(t, set.Feature, "<amount>")
	assert.Contains(t, set.Feature, "<amount3>", "colliding Examples column must gain a sequence suffix")
	assert.Contains(t, set.Feature, "| amount | amount3 |")
	assert.Contains(t, set.Feature, "| 10 | 20 |")
}

func TestSanitizeFeatureName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaced", "Login Flow", "LoginFlow"},
		{"punctuated", "Login flow - happy path!", "LoginFlowHappyPath"},
		{"already pascal", "Checkout", "Checkout"},
		{"leading digit", "2fa setup", "Feature2faSetup"},
		{"non-ascii letter", "übersicht", "Übersicht"},
		{"non-ascii multi word", "Übersicht dashboard", "ÜbersichtDashboard"},
		{"empty", "", "Recorded"},
		{"symbols only", "***", "Recorded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFeatureName(tt.in); got != tt.want {
				t.Errorf("sanitizeFeatureName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUpperSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Username", "USERNAME"},
		{"SignIn", "SIGN_IN"},
		{"AddToCart", "ADD_TO_CART"},
		{"", "ELEMENT"},
	}

	for _, tt := range tests {
		if got := upperSnake(tt.in); got != tt.want {
			t.Errorf("upperSnake(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSpacedName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SignIn", "Sign In"},
		{"AddToCart", "Add To Cart"},
		{"Username", "Username"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := spacedName(tt.in); got != tt.want {
			t.Errorf("spacedName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
