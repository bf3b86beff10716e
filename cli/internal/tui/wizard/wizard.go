// ABOUTME: Interactive installation wizard built on huh forms
// ABOUTME: Collects charger, supply and cable run details into an installation input

package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/evse-calc/backend/models"
	"github.com/markalston/evse-calc/cli/internal/tui/styles"
)

// Wizard holds the form state. huh binds to strings, so numeric fields are
// parsed when the form completes.
type Wizard struct {
	ref *models.ReferenceData

	charger        string
	count          string
	earthing       string
	measuredZe     string
	mainFuse       string
	existingLoad   string
	cableLength    string
	ambient        string
	location       string
	diversity      string
	loadManagement bool
}

// theme starts from huh's base theme and recolours it with the report palette
// so the form and the report read as one tool.
func theme() *huh.Theme {
	t := huh.ThemeBase()

	accent := lipgloss.NewStyle().Foreground(styles.Secondary)

	t.Group.Title = styles.Title
	t.Group.Description = styles.Subtitle.MarginBottom(1)

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(styles.Secondary)
	t.Focused.Title = accent.Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(styles.Danger).SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(styles.Danger)
	t.Focused.SelectSelector = accent.SetString("▸ ")
	t.Focused.SelectedOption = accent.Bold(true)
	t.Focused.TextInput.Cursor = accent
	t.Focused.TextInput.Prompt = accent
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(styles.Text).
		Background(styles.Primary).
		Padding(0, 2)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(styles.Muted).
		Padding(0, 2)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = lipgloss.NewStyle().Foreground(styles.Muted)
	t.Blurred.SelectSelector = lipgloss.NewStyle().SetString("  ")

	return t
}

// New creates a wizard with a typical domestic wallbox as the starting point.
func New(ref *models.ReferenceData) *Wizard {
	return &Wizard{
		ref:          ref,
		charger:      string(models.ChargerFast7kW),
		count:        "1",
		earthing:     string(models.EarthingTNCS),
		mainFuse:     "100",
		existingLoad: "0",
		cableLength:  "20",
		ambient:      "30",
		location:     string(models.LocationIndoor),
		diversity:    "100",
	}
}

func (w *Wizard) chargerOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(w.ref.LoadProfiles))
	for _, p := range w.ref.LoadProfiles {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%gkW)", p.Label, p.RatedPowerKW), string(p.Key)))
	}
	return opts
}

func (w *Wizard) earthingOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(w.ref.EarthingSystems))
	for _, e := range w.ref.EarthingSystems {
		opts = append(opts, huh.NewOption(e.Label, string(e.Key)))
	}
	return opts
}

var locationOptions = []huh.Option[string]{
	huh.NewOption("Indoor", string(models.LocationIndoor)),
	huh.NewOption("Outdoor", string(models.LocationOutdoor)),
	huh.NewOption("Underground", string(models.LocationUnderground)),
}

// Form builds the three-page form bound to the wizard's fields.
func (w *Wizard) Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Charger type").
				Options(w.chargerOptions()...).
				Value(&w.charger),
			huh.NewInput().
				Title("Number of chargers").
				Placeholder("1").
				CharLimit(3).
				Value(&w.count).
				Validate(validatePositiveInt),
			huh.NewConfirm().
				Title("Load management fitted?").
				Description("Caps diversity for managed multi-charger sites").
				Value(&w.loadManagement),
			huh.NewInput().
				Title("Diversity (%)").
				Value(&w.diversity).
				Validate(validateDiversity),
		).Title("Step 1: Chargers").
			Description("What is being installed"),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Earthing arrangement").
				Options(w.earthingOptions()...).
				Value(&w.earthing),
			huh.NewInput().
				Title("Measured Ze (Ω)").
				Description("Leave blank to use the typical value for the arrangement").
				Value(&w.measuredZe).
				Validate(validateOptionalNonNegative),
			huh.NewInput().
				Title("Main fuse (A)").
				Value(&w.mainFuse).
				Validate(validateNonNegative),
			huh.NewInput().
				Title("Existing maximum demand (A)").
				Value(&w.existingLoad).
				Validate(validateNonNegative),
		).Title("Step 2: Supply").
			Description("The incoming supply at the origin of the installation"),

		huh.NewGroup(
			huh.NewInput().
				Title("Cable length (m)").
				Value(&w.cableLength).
				Validate(validateNonNegative),
			huh.NewInput().
				Title("Ambient temperature (°C)").
				Value(&w.ambient).
				Validate(validateNumber),
			huh.NewSelect[string]().
				Title("Installation location").
				Options(locationOptions...).
				Value(&w.location),
		).Title("Step 3: Cable run").
			Description("Route from the consumer unit to the charge point"),
	).WithTheme(theme())
}

// Run shows the form and returns the collected input.
func (w *Wizard) Run() (models.InstallationInput, error) {
	if err := w.Form().Run(); err != nil {
		return models.InstallationInput{}, err
	}
	return w.Input()
}

// Input converts the current field values into an installation input.
func (w *Wizard) Input() (models.InstallationInput, error) {
	in := models.InstallationInput{
		Charger:        models.ChargerType(w.charger),
		Earthing:       models.EarthingType(w.earthing),
		Location:       models.Location(w.location),
		LoadManagement: w.loadManagement,
	}

	var err error
	if in.ChargerCount, err = strconv.Atoi(strings.TrimSpace(w.count)); err != nil {
		return in, fmt.Errorf("number of chargers: %w", err)
	}

	for _, f := range []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"cable length", w.cableLength, &in.CableLengthM},
		{"ambient temperature", w.ambient, &in.AmbientTempC},
		{"existing demand", w.existingLoad, &in.ExistingLoadA},
		{"main fuse", w.mainFuse, &in.MainFuseA},
	} {
		if *f.dst, err = parseFloat(f.raw); err != nil {
			return in, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	diversity, err := parseFloat(w.diversity)
	if err != nil {
		return in, fmt.Errorf("diversity: %w", err)
	}
	in.DiversityPct = &diversity

	if strings.TrimSpace(w.measuredZe) != "" {
		ze, err := parseFloat(w.measuredZe)
		if err != nil {
			return in, fmt.Errorf("measured Ze: %w", err)
		}
		in.MeasuredZe = &ze
	}

	return in, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validateNumber(s string) error {
	if _, err := parseFloat(s); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func validateNonNegative(s string) error {
	v, err := parseFloat(s)
	if err != nil || v < 0 {
		return fmt.Errorf("must be zero or more")
	}
	return nil
}

func validateOptionalNonNegative(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateNonNegative(s)
}

func validateDiversity(s string) error {
	v, err := parseFloat(s)
	if err != nil || v <= 0 || v > 100 {
		return fmt.Errorf("must be above 0 and at most 100")
	}
	return nil
}
