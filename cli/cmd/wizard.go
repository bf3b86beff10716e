// ABOUTME: Wizard command for evse-calc CLI
// ABOUTME: Collects an installation interactively and prints its assessment

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/markalston/evse-calc/backend/models"
	"github.com/markalston/evse-calc/cli/internal/client"
	reportview "github.com/markalston/evse-calc/cli/internal/tui/report"
	"github.com/markalston/evse-calc/cli/internal/tui/wizard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Describe an installation interactively",
	Long:  `Step through the charger, supply and cable run questions, then print the installation report.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWizard(ctx, os.Stdout, func(ref *models.ReferenceData) (models.InstallationInput, error) {
			return wizard.New(ref).Run()
		})
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(wizardCmd)
}

// collectFunc gathers an installation input. The command uses the huh form;
// tests substitute a fixed input.
type collectFunc func(ref *models.ReferenceData) (models.InstallationInput, error)

// runWizard collects the input, assesses it and returns exit code
func runWizard(ctx context.Context, w io.Writer, collect collectFunc) int {
	if err := validateOutputFormat(); err != nil {
		printError(w, err)
		return exitError
	}

	engine, err := newEngine()
	if err != nil {
		printError(w, err)
		return exitError
	}

	// Options come from the same tables the assessment will use
	ref, err := engine.Reference(ctx)
	if err != nil {
		printError(w, err)
		return exitError
	}

	input, err := collect(ref)
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(w, "Cancelled")
		return exitOK
	}
	if err != nil {
		printError(w, err)
		return exitError
	}

	return renderAssessment(ctx, w, engine, input)
}

func renderAssessment(ctx context.Context, w io.Writer, engine client.Engine, input models.InstallationInput) int {
	report, err := engine.AssessInstallation(ctx, input)
	if err != nil {
		printError(w, err)
		return exitError
	}

	if handled, err := writeStructured(w, report); handled {
		if err != nil {
			printError(w, err)
			return exitError
		}
		return exitOK
	}

	body := formatReportHuman(report)
	if interactive(w) {
		err := reportview.Run("Installation Report", body, report.Result.Compliant)
		if err == nil {
			return exitOK
		}
		slog.Debug("Report viewer unavailable, printing instead", "error", err)
	}

	fmt.Fprintln(w, body)
	return exitOK
}

// interactive reports whether w is a terminal the report viewer can take over.
func interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
