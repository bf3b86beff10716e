// ABOUTME: Lightning command for evse-calc CLI
// ABOUTME: Runs a lightning protection risk assessment for a structure

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

var lightningOpts struct {
	inputFile string
	length    float64
	width     float64
	height    float64
	ng        float64
	location  string
	structure string
}

var lightningCmd = &cobra.Command{
	Use:   "lightning",
	Short: "Assess lightning protection need for a structure",
	Long: `Compare the expected lightning strike frequency for a structure with the
tolerable frequency for its use, and size a protection system when needed.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLightning(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(lightningCmd)
	fs := lightningCmd.Flags()
	fs.StringVarP(&lightningOpts.inputFile, "input", "f", "", "Read the structure from a YAML or JSON file")
	fs.Float64Var(&lightningOpts.length, "length", 10, "Structure length in metres")
	fs.Float64Var(&lightningOpts.width, "width", 8, "Structure width in metres")
	fs.Float64Var(&lightningOpts.height, "height", 7, "Structure height in metres")
	fs.Float64Var(&lightningOpts.ng, "flash-density", 1, "Ground flash density (flashes/km²/year)")
	fs.StringVar(&lightningOpts.location, "location", string(models.LocationSurroundedSimilar), "Relative location key")
	fs.StringVar(&lightningOpts.structure, "structure", string(models.StructureDomestic), "Structure class key")
}

func lightningInput() (models.LightningInput, error) {
	var in models.LightningInput
	if lightningOpts.inputFile != "" {
		err := loadInputFile(lightningOpts.inputFile, &in)
		return in, err
	}
	return models.LightningInput{
		LengthM:            lightningOpts.length,
		WidthM:             lightningOpts.width,
		HeightM:            lightningOpts.height,
		GroundFlashDensity: lightningOpts.ng,
		Location:           models.LocationFactor(lightningOpts.location),
		Structure:          models.StructureClass(lightningOpts.structure),
	}, nil
}

// runLightning executes the assessment and returns exit code
func runLightning(ctx context.Context, w io.Writer) int {
	if err := validateOutputFormat(); err != nil {
		printError(w, err)
		return exitError
	}

	input, err := lightningInput()
	if err != nil {
		printError(w, err)
		return exitError
	}

	engine, err := newEngine()
	if err != nil {
		printError(w, err)
		return exitError
	}

	result, err := engine.AssessLightning(ctx, input)
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

	fmt.Fprintln(w, formatLightningHuman(result))
	return exitOK
}

// formatLightningHuman renders a lightning assessment for the terminal
func formatLightningHuman(r *models.LightningResult) string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Lightning Protection Risk Assessment"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%.0f × %.0f × %.0fm %s structure, %s",
		r.Input.LengthM, r.Input.WidthM, r.Input.HeightM, r.Input.Structure, r.Input.Location)))
	sb.WriteString("\n\n")

	sb.WriteString(styles.Row("Collection area", fmt.Sprintf("%.0f m²", r.CollectionAreaM2)) + "\n")
	sb.WriteString(styles.Row("Expected strikes", fmt.Sprintf("%.2e /year", r.ExpectedStrikesPerYear)) + "\n")
	sb.WriteString(styles.Row("Tolerable strikes", fmt.Sprintf("%.2e /year", r.TolerableStrikesPerYear)) + "\n\n")

	if !r.ProtectionRequired {
		sb.WriteString(styles.StatusOK.Render("Protection not required"))
		sb.WriteString("\n\n")
	} else {
		sb.WriteString(styles.StatusWarning.Render("Protection required"))
		sb.WriteString("\n")
		sb.WriteString(styles.Row("Required efficiency", fmt.Sprintf("%.3f", r.RequiredEfficiency)) + "\n")
		sb.WriteString(styles.Row("Protection class", r.Class) + "\n")
		sb.WriteString(styles.Row("Mesh size", fmt.Sprintf("%.0f m", r.MeshSizeM)) + "\n")
		sb.WriteString(styles.Row("Down conductors", fmt.Sprintf("%d", r.DownConductors)) + "\n\n")
	}

	sb.WriteString(bulletList("Warnings", r.Advisory.Warnings))
	sb.WriteString(bulletList("Recommendations", r.Advisory.Recommendations))

	return strings.TrimRight(sb.String(), "\n")
}
