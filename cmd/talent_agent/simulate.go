package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talenthq/onboarding-engine/internal/config"
	"github.com/talenthq/onboarding-engine/internal/cvparse"
	"github.com/talenthq/onboarding-engine/internal/dialogue"
	"github.com/talenthq/onboarding-engine/internal/observability"
	"github.com/talenthq/onboarding-engine/internal/types"
)

var simulateVerbose bool

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Drive a dialogue from stdin",
	Long: `Run the onboarding dialogue in the terminal. Plain lines are free-text
answers; commands steer the flow:

  /begin            leave the welcome screen
  /cv <path>        upload a CV (requires GEMINI_API_KEY)
  /choose <v[,v]>   pick choice value(s) for the current stage
  /skip             skip the current optional stage
  /confirm          confirm the current review/interpretation stage
  /tweak <text>     add context to the interpretation
  /finish           finish the evidence stage
  /draft            print the current draft
  /quit             stop`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().BoolVar(&simulateVerbose, "verbose", false, "Print the draft after every operation")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	cfg.ApplyEnv()

	var parser dialogue.CVParser
	if cfg.APIKey != "" {
		p, err := cvparse.NewParser(cmd.Context(), cfg.APIKey, cfg.Model)
		if err != nil {
			return fmt.Errorf("failed to create CV parser: %w", err)
		}
		defer func() { _ = p.Close() }()
		parser = p
	}

	printer := observability.NewPrinter(os.Stdout)
	controller := dialogue.New(parser, nil)

	printed := 0
	flush := func() {
		entries := controller.Transcript()
		for _, m := range entries[printed:] {
			printer.PrintMessage(m)
		}
		printed = len(entries)
		if simulateVerbose {
			printer.PrintDraft(controller.Draft())
		}
	}
	flush()

	scanner := bufio.NewScanner(os.Stdin)
	for !controller.Stage().Terminal() && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			break
		}
		if err := dispatch(cmd, controller, line); err != nil {
			fmt.Fprintf(os.Stderr, "! %v\n", err)
		}
		flush()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	printer.PrintDraft(controller.Draft())
	return nil
}

// dispatch maps one input line to a controller operation.
func dispatch(cmd *cobra.Command, c *dialogue.Controller, line string) error {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch verb {
	case "/begin":
		return c.Begin()
	case "/cv":
		return c.SubmitCV(cmd.Context(), rest)
	case "/choose":
		return choose(c, rest)
	case "/skip":
		switch c.Stage() {
		case dialogue.StageCVUpload:
			return c.SkipCV()
		case dialogue.StageDecisionConstraints:
			return c.SkipConstraints()
		case dialogue.StageEvidence:
			return c.SkipEvidence(cmd.Context())
		}
		return fmt.Errorf("stage %q is not skippable", c.Stage())
	case "/confirm":
		switch c.Stage() {
		case dialogue.StageBasicsReview:
			return c.ConfirmBasics()
		case dialogue.StageDecisionInterpretation:
			return c.ConfirmInterpretation()
		}
		return fmt.Errorf("stage %q is not confirmable", c.Stage())
	case "/tweak":
		if rest == "" {
			return c.RequestTweak()
		}
		return c.SubmitTweak(rest)
	case "/finish":
		return c.Finish(cmd.Context())
	case "/draft":
		observability.NewPrinter(os.Stdout).PrintDraft(c.Draft())
		return nil
	}

	return c.SubmitAnswer(c.Stage(), line)
}

// choose parses comma-separated values into the choice the current stage
// expects.
func choose(c *dialogue.Controller, rest string) error {
	switch c.Stage() {
	case dialogue.StageIntentAvailability:
		return c.ChooseAvailability(types.Availability(rest))
	case dialogue.StageIntentWorkTypes:
		var selected []types.WorkType
		for _, v := range strings.Split(rest, ",") {
			if v = strings.TrimSpace(v); v != "" {
				selected = append(selected, types.WorkType(v))
			}
		}
		return c.ChooseWorkTypes(selected)
	case dialogue.StageIntentWorkStyle:
		return c.ChooseWorkStyle(types.WorkStyleChoice(rest))
	}
	return fmt.Errorf("stage %q does not take a choice", c.Stage())
}
