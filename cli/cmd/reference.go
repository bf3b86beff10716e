// ABOUTME: Reference command for evse-calc CLI
// ABOUTME: Shows the reference tables or exports them as an editable YAML file

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/markalston/evse-calc/backend/models"
	"github.com/markalston/evse-calc/cli/internal/tui/styles"
	"github.com/spf13/cobra"
)

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Show the reference tables",
	Long: `Show the charger profiles, earthing systems and cable catalogue the engine uses.

Use "-o yaml" to export the full tables as a starting point for a --reference
override file.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runReference(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(referenceCmd)
}

// runReference fetches the tables and returns exit code
func runReference(ctx context.Context, w io.Writer) int {
	if err := validateOutputFormat(); err != nil {
		printError(w, err)
		return exitError
	}

	engine, err := newEngine()
	if err != nil {
		printError(w, err)
		return exitError
	}

	ref, err := engine.Reference(ctx)
	if err != nil {
		printError(w, err)
		return exitError
	}

	if handled, err := writeStructured(w, ref); handled {
		if err != nil {
			printError(w, err)
			return exitError
		}
		return exitOK
	}

	fmt.Fprintln(w, formatReferenceHuman(ref))
	return exitOK
}

// formatReferenceHuman renders the main tables for the terminal
func formatReferenceHuman(ref *models.ReferenceData) string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Reference Tables"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Version " + ref.Version))
	sb.WriteString("\n\n")

	sb.WriteString(styles.Heading.Render("Chargers"))
	sb.WriteString("\n")
	for _, p := range ref.LoadProfiles {
		kind := "AC"
		if p.DC {
			kind = "DC"
		}
		sb.WriteString(styles.Row(string(p.Key), fmt.Sprintf("%gkW %s %gV %dφ  %s", p.RatedPowerKW, kind, p.Voltage, p.Phases, p.Label)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(styles.Heading.Render("Earthing"))
	sb.WriteString("\n")
	for _, e := range ref.EarthingSystems {
		sb.WriteString(styles.Row(string(e.Key), fmt.Sprintf("max Zs %gΩ, typical Ze %gΩ", e.MaxZs, e.EstimatedZe)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(styles.Heading.Render("Cables"))
	sb.WriteString("\n")
	for _, c := range ref.Cables {
		sb.WriteString(styles.Row(c.Label, fmt.Sprintf("%gA, %g mΩ/m", c.CapacityA, c.ImpedanceMOhmPerM)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	s := ref.Safety
	sb.WriteString(styles.Heading.Render("Policy"))
	sb.WriteString("\n")
	sb.WriteString(styles.Row("Design factor", fmt.Sprintf("%g", s.DesignCurrentFactor)) + "\n")
	sb.WriteString(styles.Row("Max voltage drop", fmt.Sprintf("%g%%", s.MaxVoltageDropPct)) + "\n")
	sb.WriteString(styles.Row("Managed diversity cap", fmt.Sprintf("%g", s.LoadManagedDiversityCap)))

	return sb.String()
}
