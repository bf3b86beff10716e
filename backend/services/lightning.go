// ABOUTME: Lightning protection risk assessment
// ABOUTME: Collection area, expected strike frequency and protection class selection

package services

import (
	"log/slog"
	"math"

	"github.com/markalston/evse-calc/backend/models"
)

// LightningCalculator assesses whether a structure needs a lightning
// protection system.
type LightningCalculator struct {
	ref *models.ReferenceData
}

// NewLightningCalculator creates a calculator bound to ref.
func NewLightningCalculator(ref *models.ReferenceData) *LightningCalculator {
	return &LightningCalculator{ref: ref}
}

// CollectionArea returns the equivalent collection area of a rectangular
// structure in m²: L×W + 6H(L+W) + 9πH².
func CollectionArea(lengthM, widthM, heightM float64) float64 {
	h3 := 3 * heightM
	return lengthM*widthM + 2*h3*(lengthM+widthM) + math.Pi*h3*h3
}

// DownConductors returns the number of down conductors for a perimeter at the
// given spacing, never fewer than two.
func DownConductors(perimeterM, spacingM float64) int {
	if spacingM <= 0 {
		return 2
	}
	n := int(math.Ceil(perimeterM / spacingM))
	return max(n, 2)
}

// Assess computes the strike risk and, when protection is required, the
// least onerous protection class that meets the required efficiency.
func (c *LightningCalculator) Assess(in models.LightningInput) (models.LightningResult, error) {
	if err := ValidateLightningInput(c.ref, in); err != nil {
		return models.LightningResult{}, err
	}
	loc, err := c.ref.LocationFactor(in.Location)
	if err != nil {
		return models.LightningResult{}, err
	}
	structure, err := c.ref.StructureClass(in.Structure)
	if err != nil {
		return models.LightningResult{}, err
	}

	r := models.LightningResult{Input: in}
	r.CollectionAreaM2 = CollectionArea(in.LengthM, in.WidthM, in.HeightM)
	r.ExpectedStrikesPerYear = in.GroundFlashDensity * r.CollectionAreaM2 * loc.Factor * 1e-6
	r.TolerableStrikesPerYear = structure.TolerableFrequency
	r.ProtectionRequired = r.ExpectedStrikesPerYear > r.TolerableStrikesPerYear

	if r.ProtectionRequired {
		r.RequiredEfficiency = 1 - r.TolerableStrikesPerYear/r.ExpectedStrikesPerYear
		class, ok := c.selectClass(r.RequiredEfficiency)
		r.SpecialistSizingRequired = !ok
		r.Class = class.Class
		r.MeshSizeM = class.MeshSizeM
		r.DownConductors = DownConductors(2*(in.LengthM+in.WidthM), class.DownConductorSpacingM)
	}

	slog.Debug("Lightning risk assessed",
		"expected", r.ExpectedStrikesPerYear,
		"tolerable", r.TolerableStrikesPerYear,
		"class", r.Class)

	r.Advisory = models.BuildLightningAdvisory(r)
	r.Summary = models.BuildLightningSummary(r)
	return r, nil
}

// selectClass returns the least onerous class meeting efficiency. When none
// does, the most onerous class is returned with ok false.
func (c *LightningCalculator) selectClass(efficiency float64) (models.LightningClass, bool) {
	classes := c.ref.LightningClasses
	if len(classes) == 0 {
		return models.LightningClass{}, false
	}
	for _, cl := range classes {
		if cl.MinEfficiency >= efficiency {
			return cl, true
		}
	}
	return classes[len(classes)-1], false
}
