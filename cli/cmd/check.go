// ABOUTME: Check command for evse-calc CLI
// ABOUTME: Gates CI pipelines on installation compliance via exit codes

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/markalston/evse-calc/backend/models"
	"github.com/markalston/evse-calc/cli/internal/tui/styles"
	"github.com/spf13/cobra"
)

var checkOpts installFlags

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check an installation for compliance",
	Long: `Assess an installation and exit non-zero if it is not compliant.

Exit codes:
  0 - Compliant
  1 - One or more compliance checks failed
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCheck(ctx, os.Stdout, &checkOpts, cmd.Flags().Changed("ze"))
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkOpts.bind(checkCmd)
}

// checkResult represents the result of a single compliance check
type checkResult struct {
	name   string
	value  float64
	limit  float64
	unit   string
	passed bool
}

// runCheck executes the compliance checks and returns exit code
func runCheck(ctx context.Context, w io.Writer, f *installFlags, zeSet bool) int {
	report, code := assess(ctx, w, f, zeSet)
	if report == nil {
		return code
	}

	results := performChecks(report.Result)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	if !report.Result.Compliant {
		return exitFailed
	}
	return exitOK
}

// performChecks lists each sub-check with the figure it was judged on
func performChecks(r models.InstallationResult) []checkResult {
	return []checkResult{
		{
			name:   "Cable capacity",
			value:  r.DeratedCurrentA,
			limit:  r.Selection.Cable.CapacityA,
			unit:   "A",
			passed: r.Checks.CapacityOK,
		},
		{
			name:   "Voltage drop",
			value:  r.VoltageDropPct,
			limit:  r.MaxVoltageDropPct,
			unit:   "%",
			passed: r.Checks.VoltageDropOK,
		},
		{
			name:   "Earth fault loop impedance",
			value:  r.Zs,
			limit:  r.MaxZs,
			unit:   "Ω",
			passed: r.Checks.ZsOK,
		},
	}
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var output string

	for _, r := range results {
		output += styles.Verdict(r.passed, fmt.Sprintf("%s: %.2f%s (limit: %.2f%s)",
			r.name, r.value, r.unit, r.limit, r.unit)) + "\n"
	}

	passed, failed := countResults(results)
	if failed > 0 {
		output += fmt.Sprintf("\nFAILED: %d check(s) not met", failed)
	} else {
		output += fmt.Sprintf("\nPASSED: All %d check(s) met", passed)
	}

	return output
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]any, len(results))
	for i, r := range results {
		checks[i] = map[string]any{
			"name":   r.name,
			"value":  r.value,
			"limit":  r.limit,
			"unit":   r.unit,
			"passed": r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	output := map[string]any{
		"status": status,
		"checks": checks,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
