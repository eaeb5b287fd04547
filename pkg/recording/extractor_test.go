package recording

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Action
	}{
		{
			name: "navigate",
			line: `await page.goto("https://app.example.com/login");`,
			want: Action{Kind: Navigate, Value: "https://app.example.com/login"},
		},
		{
			name: "java navigate",
			line: `page.navigate("https://app.example.com");`,
			want: Action{Kind: Navigate, Value: "https://app.example.com"},
		},
		{
			name: "modern locator fill",
			line: `await page.locator("#username").fill("qa-user");`,
			want: Action{Kind: Fill, RawLocator: "#username", Value: "qa-user"},
		},
		{
			name: "modern locator click",
			line: `await page.locator("button.submit").click();`,
			want: Action{Kind: Click, RawLocator: "button.submit"},
		},
		{
			name: "modern locator press",
			line: `await page.locator("#search").press("Enter");`,
			want: Action{Kind: Press, RawLocator: "#search", Value: "Enter"},
		},
		{
			name: "by role with name",
			line: `await page.getByRole("button", { name: "Sign in" }).click();`,
			want: Action{Kind: Click, RawLocator: "role=button[name='Sign in']"},
		},
		{
			name: "java by role constant",
			line: `page.getByRole(AriaRole.BUTTON).click();`,
			want: Action{Kind: Click, RawLocator: "role=button"},
		},
		{
			name: "by text",
			line: `await page.getByText("Checkout").click();`,
			want: Action{Kind: Click, RawLocator: "text=Checkout"},
		},
		{
			name: "by label",
			line: `await page.getByLabel("Email address").fill("qa@example.com");`,
			want: Action{Kind: Fill, RawLocator: "label=Email address", Value: "qa@example.com"},
		},
		{
			name: "by placeholder",
			line: `await page.getByPlaceholder("Search products").fill("widgets");`,
			want: Action{Kind: Fill, RawLocator: "placeholder=Search products", Value: "widgets"},
		},
		{
			name: "legacy two arg fill",
			line: `page.fill("#password", "secret");`,
			want: Action{Kind: Fill, RawLocator: "#password", Value: "secret"},
		},
		{
			name: "legacy select",
			line: `page.selectOption("#country", "NZ");`,
			want: Action{Kind: Select, RawLocator: "#country", Value: "NZ"},
		},
		{
			name: "legacy one arg click",
			line: `page.click("text=Sign In");`,
			want: Action{Kind: Click, RawLocator: "text=Sign In"},
		},
		{
			name: "legacy check",
			line: `page.check("#remember-me");`,
			want: Action{Kind: Check, RawLocator: "#remember-me"},
		},
		{
			name: "type maps to fill",
			line: `page.locator("#comment").type("hello");`,
			want: Action{Kind: Fill, RawLocator: "#comment", Value: "hello"},
		},
		{
			name: "uncheck maps to check",
			line: `page.locator("#opt-in").uncheck();`,
			want: Action{Kind: Check, RawLocator: "#opt-in"},
		},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := e.Extract(tt.line)
			require.Len(t, actions, 1)

			got := actions[0]
			assert.Equal(t, 1, got.Sequence)
			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.Equal(t, tt.want.RawLocator, got.RawLocator)
			assert.Equal(t, tt.want.Value, got.Value)
		})
	}
}

func TestExtractOrdering(t *testing.T) {
	text := `
		// login flow
		await page.goto("https://app.example.com/login");
		await page.locator("#username").fill("qa-user");
		await page.locator("#password").fill("secret");
		await page.getByRole("button", { name: "Sign in" }).click();
	`

	actions := NewExtractor().Extract(text)
	require.Len(t, actions, 4)

	for i, action := range actions {
		assert.Equal(t, i+1, action.Sequence, "sequence must follow recording order")
	}
	assert.Equal(t, Navigate, actions[0].Kind)
	assert.Equal(t, Fill, actions[1].Kind)
	assert.Equal(t, Fill, actions[2].Kind)
	assert.Equal(t, Click, actions[3].Kind)
}

func TestExtractSkipsNoise(t *testing.T) {
	text := `
		package tests
		import org.junit.Test
		// a comment
		# another comment
		/* block */
		* continuation
		@Test
		public void testLogin() {
		{
		}
		);
		from playwright.sync_api import sync_playwright
		await page.locator("#only-real-line").click();
	`

	actions := NewExtractor().Extract(text)
	require.Len(t, actions, 1)
	assert.Equal(t, "#only-real-line", actions[0].RawLocator)
}

func TestExtractEmptyRecording(t *testing.T) {
	t.Run("empty text yields synthetic navigation", func(t *testing.T) {
		actions := NewExtractor().Extract("")
		require.Len(t, actions, 1)
		assert.Equal(t, Navigate, actions[0].Kind)
		assert.Equal(t, 1, actions[0].Sequence)
		assert.Empty(t, actions[0].Value)
	})

	t.Run("unrecognized lines yield synthetic navigation", func(t *testing.T) {
		actions := NewExtractor().Extract("some freeform note\nanother line")
		require.Len(t, actions, 1)
		assert.Equal(t, Navigate, actions[0].Kind)
	})
}

func TestExtractFile(t *testing.T) {
	t.Run("reads recording from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "recording.ts")
		content := `await page.goto("https://app.example.com");` + "\n" +
			`await page.locator("#username").fill("qa");`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		actions, err := NewExtractor().ExtractFile(path)
		require.NoError(t, err)
		assert.Len(t, actions, 2)
	})

	t.Run("missing file is fatal", func(t *testing.T) {
		_, err := NewExtractor().ExtractFile(filepath.Join(t.TempDir(), "missing.ts"))
		assert.ErrorIs(t, err, ErrUnreadable)
	})
}

func TestKindNeedsValue(t *testing.T) {
	assert.True(t, Fill.NeedsValue())
	assert.True(t, Select.NeedsValue())
	assert.True(t, Press.NeedsValue())
	assert.False(t, Click.NeedsValue())
	assert.False(t, Check.NeedsValue())
}
