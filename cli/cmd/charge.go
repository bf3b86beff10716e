// ABOUTME: Charge command for evse-calc CLI
// ABOUTME: Estimates energy, duration and cost for a single charge session

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

var chargeOpts struct {
	inputFile string
	charger   string
	capacity  float64
	current   float64
	target    float64
	rate      float64
}

var chargeCmd = &cobra.Command{
	Use:   "charge",
	Short: "Estimate a charge session",
	Long:  `Estimate the energy, time and cost to charge a battery from one level to another.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCharge(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(chargeCmd)
	fs := chargeCmd.Flags()
	fs.StringVarP(&chargeOpts.inputFile, "input", "f", "", "Read the session from a YAML or JSON file")
	fs.StringVar(&chargeOpts.charger, "charger", string(models.ChargerFast7kW), "Charger type key")
	fs.Float64Var(&chargeOpts.capacity, "battery", 60, "Battery capacity in kWh")
	fs.Float64Var(&chargeOpts.current, "from", 20, "Current state of charge (%)")
	fs.Float64Var(&chargeOpts.target, "to", 80, "Target state of charge (%)")
	fs.Float64Var(&chargeOpts.rate, "rate", 0, "Electricity rate in pence per kWh (0 omits cost)")
}

func chargingInput() (models.ChargingInput, error) {
	var in models.ChargingInput
	if chargeOpts.inputFile != "" {
		err := loadInputFile(chargeOpts.inputFile, &in)
		return in, err
	}
	return models.ChargingInput{
		Charger:            models.ChargerType(chargeOpts.charger),
		BatteryCapacityKWh: chargeOpts.capacity,
		CurrentLevelPct:    chargeOpts.current,
		TargetLevelPct:     chargeOpts.target,
		RatePencePerKWh:    chargeOpts.rate,
	}, nil
}

// runCharge executes the estimate and returns exit code
func runCharge(ctx context.Context, w io.Writer) int {
	if err := validateOutputFormat(); err != nil {
		printError(w, err)
		return exitError
	}

	input, err := chargingInput()
	if err != nil {
		printError(w, err)
		return exitError
	}

	engine, err := newEngine()
	if err != nil {
		printError(w, err)
		return exitError
	}

	result, err := engine.EstimateCharging(ctx, input)
	if err != nil {
		printError(w, err)
		return exitError
	}

	if handled, err := writeStructured(w, result); handled {
		if err != nil {
			printError(w, err)
			return exitError
		}
		return exitOK
	}

	fmt.Fprintln(w, formatChargingHuman(result))
	return exitOK
}

// formatDuration renders minutes as "5h 35m".
func formatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// formatChargingHuman renders a charge session estimate for the terminal
func formatChargingHuman(r *models.ChargingResult) string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Charge Session Estimate"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s, %.0fkWh battery, %.0f%% → %.0f%%",
		r.Profile.Label, r.Input.BatteryCapacityKWh, r.Input.CurrentLevelPct, r.Input.TargetLevelPct)))
	sb.WriteString("\n\n")

	sb.WriteString(styles.Row("Effective power", fmt.Sprintf("%.2f kW", r.EffectivePowerKW)) + "\n")
	sb.WriteString(styles.Row("Supply current", fmt.Sprintf("%.1f A", r.DesignCurrentA)) + "\n")

	if !r.Computable {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusWarning.Render("Nothing to charge: target is not above the current level"))
		sb.WriteString("\n")
	} else {
		sb.WriteString(styles.Row("Energy", fmt.Sprintf("%.1f kWh", r.EnergyKWh)) + "\n")
		sb.WriteString(styles.Row("Duration", formatDuration(r.DurationMinutes)) + "\n")
		if r.CostIncluded {
			sb.WriteString(styles.Row("Cost", fmt.Sprintf("£%.2f", r.CostGBP)) + "\n")
		}
	}
	sb.WriteString("\n")

	sb.WriteString(bulletList("Warnings", r.Advisory.Warnings))
	sb.WriteString(bulletList("Recommendations", r.Advisory.Recommendations))

	return strings.TrimRight(sb.String(), "\n")
}
