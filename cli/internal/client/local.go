// ABOUTME: In-process calculation engine for offline CLI use
// ABOUTME: Runs the backend calculators directly against loaded reference tables

package client

import (
	"context"
	"fmt"

	"github.com/markalston/evse-calc/backend/models"
	"github.com/markalston/evse-calc/backend/services"
)

// Local satisfies Engine without a backend.
type Local struct {
	ref       *models.ReferenceData
	install   *services.InstallationCalculator
	charging  *services.ChargingCalculator
	lightning *services.LightningCalculator
}

// NewLocal builds an offline engine. The tables must already be validated.
func NewLocal(ref *models.ReferenceData) *Local {
	return &Local{
		ref:       ref,
		install:   services.NewInstallationCalculator(ref),
		charging:  services.NewChargingCalculator(ref),
		lightning: services.NewLightningCalculator(ref),
	}
}

func (l *Local) AssessInstallation(_ context.Context, input models.InstallationInput) (*models.InstallationReport, error) {
	report, err := l.install.Assess(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return &report, nil
}

func (l *Local) EstimateCharging(_ context.Context, input models.ChargingInput) (*models.ChargingResult, error) {
	result, err := l.charging.Calculate(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return &result, nil
}

func (l *Local) AssessLightning(_ context.Context, input models.LightningInput) (*models.LightningResult, error) {
	result, err := l.lightning.Assess(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return &result, nil
}

func (l *Local) Reference(_ context.Context) (*models.ReferenceData, error) {
	return l.ref, nil
}
