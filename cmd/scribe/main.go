// Package main provides the scribe command line tool. It turns a browser
// recording into a page object, a Gherkin feature file, and godog step
// definitions, optionally driven by a JIRA story and verified against a
// live browser.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/entrhq/scribe/pkg/config"
	"github.com/entrhq/scribe/pkg/generator"
	"github.com/entrhq/scribe/pkg/jira"
	"github.com/entrhq/scribe/pkg/locator"
	"github.com/entrhq/scribe/pkg/logging"
	"github.com/entrhq/scribe/pkg/pages"
	"github.com/entrhq/scribe/pkg/recording"
	"github.com/entrhq/scribe/pkg/replay"
)

const version = "0.1.0"

// noStory marks the story-id positional as absent.
const noStory = "-"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	OutputDir   string
	LabelsPath  string
	Verbose     bool
	Verify      bool
	ShowVersion bool
	Args        []string
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("scribe v%s\n", version)
		return
	}

	if err := run(cli); err != nil {
		log.Printf("scribe failed: %v", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	cli := &CLIConfig{}

	flag.StringVar(&cli.ConfigPath, "config", "", "Path to configuration file (defaults to ~/.scribe/config.json)")
	flag.StringVar(&cli.OutputDir, "out", "", "Output directory for generated artifacts (overrides config)")
	flag.StringVar(&cli.LabelsPath, "labels", "", "Path to label mapping YAML file (overrides config)")
	flag.BoolVar(&cli.Verbose, "v", false, "Enable debug logging")
	flag.BoolVar(&cli.Verify, "verify", false, "Replay the recording against a live browser after generation")
	flag.BoolVar(&cli.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Scribe - Test Artifact Generator\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  scribe [options] <recording> <feature-name> <page-url> <story-id>\n")
		fmt.Fprintf(os.Stderr, "  scribe [options] <story-id>\n")
		fmt.Fprintf(os.Stderr, "  scribe [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Generate from a local recording, no story link\n")
		fmt.Fprintf(os.Stderr, "  scribe login_recording.java \"Login flow\" https://app.example.com/login -\n\n")
		fmt.Fprintf(os.Stderr, "  # Generate from the recording attached to a story\n")
		fmt.Fprintf(os.Stderr, "  scribe QA-42\n\n")
		fmt.Fprintf(os.Stderr, "  # Self-check with the embedded demo recording\n")
		fmt.Fprintf(os.Stderr, "  scribe\n\n")
	}

	flag.Parse()
	cli.Args = flag.Args()
	return cli
}

// run dispatches on the positional argument shape.
func run(cli *CLIConfig) error {
	if cli.Verbose {
		logging.SetVerbose(true)
	}

	if err := config.Initialize(cli.ConfigPath); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	switch len(cli.Args) {
	case 0:
		return runSelfCheck(cli)
	case 1:
		return runStory(cli, cli.Args[0])
	case 4:
		return runGenerate(cli, cli.Args[0], cli.Args[1], cli.Args[2], cli.Args[3])
	default:
		flag.Usage()
		return fmt.Errorf("expected 0, 1, or 4 arguments, got %d", len(cli.Args))
	}
}

// runGenerate is the full local pipeline: extract, resolve, emit, write,
// and optionally verify and link back to a story.
func runGenerate(cli *CLIConfig, recordingPath, featureName, pageURL, storyID string) error {
	actions, report, err := generate(cli, recordingPath, featureName, pageURL)
	if err != nil {
		return err
	}

	printReport(report)

	if cli.Verify || config.GetApp().VerifyAfterwards {
		if err := verify(actions, storyID, featureName); err != nil {
			return err
		}
	}

	if storyID != noStory && storyID != "" {
		if err := commentArtifacts(storyID, report); err != nil {
			return err
		}
	}

	return nil
}

// runStory fetches the story's recording attachment and feeds it through
// the same pipeline, deriving the feature name and page URL from the
// issue fields.
func runStory(cli *CLIConfig, storyID string) error {
	client, err := jira.NewClient(config.GetJira())
	if err != nil {
		return err
	}

	downloadDir := filepath.Join(os.TempDir(), "scribe-recordings")
	story, err := client.FetchStory(storyID, downloadDir)
	if err != nil {
		return err
	}

	pageURL := story.PageURL
	if pageURL == "" {
		pageURL = config.GetApp().BaseURL
	}
	if pageURL == "" {
		return fmt.Errorf("story %s has no page URL and no base URL is configured", storyID)
	}

	return runGenerate(cli, story.RecordingPath, story.Summary, pageURL, story.Key)
}

// generate runs extraction through artifact writing and returns the
// parsed actions for optional replay.
func generate(cli *CLIConfig, recordingPath, featureName, pageURL string) ([]recording.Action, *generator.WriteReport, error) {
	genConfig := config.GetGenerator()

	outputDir := genConfig.OutputDir
	if cli.OutputDir != "" {
		outputDir = cli.OutputDir
	}

	labelsPath := genConfig.LabelMapPath
	if cli.LabelsPath != "" {
		labelsPath = cli.LabelsPath
	}

	var labels map[string]string
	if labelsPath != "" {
		var err error
		labels, err = locator.LoadLabelMap(labelsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load label map: %w", err)
		}
	}

	extractor := recording.NewExtractor()
	actions, err := extractor.ExtractFile(recordingPath)
	if err != nil {
		return nil, nil, err
	}

	resolver := locator.NewResolver(labels)
	gen := generator.New(resolver, generator.Options{
		FeatureName: featureName,
		PageURL:     pageURL,
		OutputDir:   outputDir,
		PagesImport: genConfig.PagesImport,
		ReuseLogin:  genConfig.ReuseLogin,
	})

	set, err := gen.Generate(actions)
	if err != nil {
		return nil, nil, err
	}

	report, err := gen.Write(set)
	if err != nil {
		return nil, nil, err
	}

	// Resolve onto the returned actions so a replay pass drives the
	// same locators the artifacts carry.
	for i := range actions {
		if actions[i].Kind == recording.Navigate {
			continue
		}
		resolution := resolver.Resolve(actions[i].RawLocator)
		actions[i].ResolvedLocator = resolution.Locator
	}

	return actions, report, nil
}

// verify replays the actions in a headless browser and files a bug when
// locators are broken and defect filing is enabled.
func verify(actions []recording.Action, storyID, featureName string) error {
	app := config.GetApp()

	session, err := pages.NewSession(pages.SessionOptions{
		Headless: app.Headless,
		BaseURL:  app.BaseURL,
		Credentials: pages.Credentials{
			Username: app.Username,
			Password: app.Password,
		},
		LoginLocators: pages.LoginLocators{
			Username: app.UsernameLocator,
			Password: app.PasswordLocator,
			SignIn:   app.SignInLocator,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to open browser for verification: %w", err)
	}
	defer session.Close()

	var filer replay.DefectFiler
	jiraConfig := config.GetJira()
	if jiraConfig.FileBugs && jiraConfig.Configured() {
		client, err := jira.NewClient(jiraConfig)
		if err != nil {
			return err
		}
		filer = client
	}

	verifier := replay.NewVerifier(session)
	story := storyID
	if story == noStory {
		story = ""
	}

	report, bugKey, err := verifier.VerifyAndFile(actions, story, featureName, filer)
	if err != nil {
		return err
	}

	fmt.Println(report.Summary())
	if bugKey != "" {
		fmt.Printf("Filed %s for the broken locators\n", bugKey)
	}
	return nil
}

// commentArtifacts posts the generated paths back onto the story.
func commentArtifacts(storyID string, report *generator.WriteReport) error {
	jiraConfig := config.GetJira()
	if !jiraConfig.Configured() {
		log.Printf("story %s given but jira is not configured, skipping comment", storyID)
		return nil
	}

	client, err := jira.NewClient(jiraConfig)
	if err != nil {
		return err
	}

	paths := []string{report.FeaturePath, report.StepDefsPath}
	if !report.PageObjectSkipped {
		paths = append([]string{report.PageObjectPath}, paths...)
	}

	return client.CommentArtifacts(storyID, paths)
}

func printReport(report *generator.WriteReport) {
	if report.PageObjectSkipped {
		fmt.Printf("Page object:      %s (existing, kept)\n", report.PageObjectPath)
	} else {
		fmt.Printf("Page object:      %s\n", report.PageObjectPath)
	}
	fmt.Printf("Feature file:     %s\n", report.FeaturePath)
	fmt.Printf("Step definitions: %s\n", report.StepDefsPath)
}
