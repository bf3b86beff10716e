// ABOUTME: Install command for evse-calc CLI
// ABOUTME: Runs a full installation assessment and renders the report

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

// installFlags holds the flag-bound installation parameters.
type installFlags struct {
	inputFile      string
	charger        string
	count          int
	earthing       string
	measuredZe     float64
	cableLength    float64
	ambient        float64
	location       string
	diversity      float64
	loadManagement bool
	existingLoad   float64
	mainFuse       float64
}

func (f *installFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.inputFile, "input", "f", "", "Read the installation from a YAML or JSON file")
	fs.StringVar(&f.charger, "charger", string(models.ChargerFast7kW), "Charger type key")
	fs.IntVar(&f.count, "count", 1, "Number of chargers")
	fs.StringVar(&f.earthing, "earthing", string(models.EarthingTNCS), "Earthing arrangement: tn-c-s, tn-s or tt")
	fs.Float64Var(&f.measuredZe, "ze", 0, "Measured Ze in ohms (typical value used when omitted)")
	fs.Float64Var(&f.cableLength, "length", 20, "Cable run length in metres")
	fs.Float64Var(&f.ambient, "ambient", 30, "Ambient temperature in °C")
	fs.StringVar(&f.location, "location", string(models.LocationIndoor), "Installation location: indoor, outdoor or underground")
	fs.Float64Var(&f.diversity, "diversity", 100, "Diversity percentage")
	fs.BoolVar(&f.loadManagement, "load-management", false, "Load management is fitted")
	fs.Float64Var(&f.existingLoad, "existing-load", 0, "Existing maximum demand in amps")
	fs.Float64Var(&f.mainFuse, "main-fuse", 0, "Main fuse rating in amps (0 skips the headroom check)")
}

// resolve builds the input from --input, or from the individual flags.
// zeSet reports whether --ze was given explicitly.
func (f *installFlags) resolve(zeSet bool) (models.InstallationInput, error) {
	if f.inputFile != "" {
		var in models.InstallationInput
		if err := loadInputFile(f.inputFile, &in); err != nil {
			return in, err
		}
		return in, nil
	}

	in := models.InstallationInput{
		Charger:        models.ChargerType(f.charger),
		ChargerCount:   f.count,
		Earthing:       models.EarthingType(f.earthing),
		CableLengthM:   f.cableLength,
		AmbientTempC:   f.ambient,
		Location:       models.Location(f.location),
		LoadManagement: f.loadManagement,
		ExistingLoadA:  f.existingLoad,
		MainFuseA:      f.mainFuse,
	}
	diversity := f.diversity
	in.DiversityPct = &diversity
	if zeSet {
		ze := f.measuredZe
		in.MeasuredZe = &ze
	}
	return in, nil
}

var installOpts installFlags

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Assess a charge point installation",
	Long: `Size the circuit for a charge point installation and check it for compliance.

The report covers design current, cable selection, voltage drop, earth fault
loop impedance and the protective device, followed by warnings and
recommendations.

Exit codes:
  0 - Report produced (compliant or not)
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runInstall(ctx, os.Stdout, &installOpts, cmd.Flags().Changed("ze"))
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
	installOpts.bind(installCmd)
}

// runInstall executes the assessment and returns exit code
func runInstall(ctx context.Context, w io.Writer, f *installFlags, zeSet bool) int {
	report, code := assess(ctx, w, f, zeSet)
	if report == nil {
		return code
	}

	if handled, err := writeStructured(w, report); handled {
		if err != nil {
			printError(w, err)
			return exitError
		}
		return exitOK
	}

	fmt.Fprintln(w, formatReportHuman(report))
	return exitOK
}

// assess resolves the input and runs it through the engine. On failure the
// error is printed and the exit code returned with a nil report.
func assess(ctx context.Context, w io.Writer, f *installFlags, zeSet bool) (*models.InstallationReport, int) {
	if err := validateOutputFormat(); err != nil {
		printError(w, err)
		return nil, exitError
	}

	input, err := f.resolve(zeSet)
	if err != nil {
		printError(w, err)
		return nil, exitError
	}

	engine, err := newEngine()
	if err != nil {
		printError(w, err)
		return nil, exitError
	}

	report, err := engine.AssessInstallation(ctx, input)
	if err != nil {
		printError(w, err)
		return nil, exitError
	}
	return report, exitOK
}

// formatReportHuman renders an installation report for the terminal
func formatReportHuman(report *models.InstallationReport) string {
	r := report.Result
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("EV Charge Point Installation Report"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d × %s, %s earthing, %.0fm %s run",
		r.Input.ChargerCount, r.Profile.Label, r.Earthing.Label, r.Input.CableLengthM, r.Input.Location)))
	sb.WriteString("\n\n")

	sb.WriteString(styles.Heading.Render("Load"))
	sb.WriteString("\n")
	sb.WriteString(styles.Row("Connected demand", fmt.Sprintf("%.1f kW", r.TotalDemandKW)) + "\n")
	sb.WriteString(styles.Row("Design current", fmt.Sprintf("%.1f A", r.DesignCurrentA)) + "\n")
	sb.WriteString(styles.Row("Adjusted current", fmt.Sprintf("%.1f A (demand factor %.2f)", r.AdjustedCurrentA, r.DemandFactor)) + "\n")
	sb.WriteString(styles.Row("Derated current", fmt.Sprintf("%.1f A (temperature factor %.2f)", r.DeratedCurrentA, r.TemperatureFactor)) + "\n\n")

	cable := r.Selection.Cable
	loading := 0.0
	if cable.CapacityA > 0 {
		loading = r.DeratedCurrentA / cable.CapacityA * 100
	}
	sb.WriteString(styles.Heading.Render("Cable"))
	sb.WriteString("\n")
	sb.WriteString(styles.Row("Selected", fmt.Sprintf("%s (%.0f A, %.1f A derated)", cable.Label, cable.CapacityA, r.CableProtectedA)) + "\n")
	sb.WriteString(styles.Row("Loading", fmt.Sprintf("%s %.0f%%", styles.LoadingBar(loading, 20), loading)) + "\n")
	sb.WriteString(styles.Row("Voltage drop", fmt.Sprintf("%.2f V (%.2f%%, limit %.1f%%)", r.VoltageDropV, r.VoltageDropPct, r.MaxVoltageDropPct)) + "\n\n")

	zeSource := "measured"
	if r.ZeEstimated {
		zeSource = "typical"
	}
	sb.WriteString(styles.Heading.Render("Earth fault loop"))
	sb.WriteString("\n")
	sb.WriteString(styles.Row("Ze", fmt.Sprintf("%.2f Ω (%s)", r.Ze, zeSource)) + "\n")
	sb.WriteString(styles.Row("Zs", fmt.Sprintf("%.3f Ω (max %.2f Ω)", r.Zs, r.MaxZs)) + "\n")
	sb.WriteString(styles.Row("Fault current", fmt.Sprintf("%.0f A", r.FaultCurrentA)) + "\n\n")

	sb.WriteString(styles.Heading.Render("Protection"))
	sb.WriteString("\n")
	sb.WriteString(styles.Row("Device", fmt.Sprintf("%.0f A curve %s", r.Device.RatingA, r.Device.Curve)) + "\n")
	sb.WriteString(styles.Row("RCD", fmt.Sprintf("%d mA Type %s", r.Device.RCDSensitivityMA, r.Device.RCDType)) + "\n")
	sb.WriteString(styles.Subtitle.Render(r.Device.Description))
	sb.WriteString("\n\n")

	sb.WriteString(formatChecks(r.Checks))
	sb.WriteString("\n\n")
	sb.WriteString(formatVerdict(r))
	sb.WriteString("\n\n")

	sb.WriteString(bulletList("Warnings", report.Advisory.Warnings))
	sb.WriteString(bulletList("Recommendations", report.Advisory.Recommendations))

	return strings.TrimRight(sb.String(), "\n")
}

func formatChecks(c models.ComplianceChecks) string {
	return strings.Join([]string{
		styles.Verdict(c.CapacityOK, "Capacity"),
		styles.Verdict(c.VoltageDropOK, "Voltage drop"),
		styles.Verdict(c.ZsOK, "Earth fault loop"),
	}, "   ")
}

func formatVerdict(r models.InstallationResult) string {
	if r.Compliant {
		return styles.StatusOK.Render("COMPLIANT")
	}
	return styles.StatusCritical.Render("NON-COMPLIANT: " + strings.Join(r.FailedChecks, ", "))
}
