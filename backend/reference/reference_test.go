// ABOUTME: Tests for default reference tables and the YAML loader
// ABOUTME: Verifies table invariants, strict decoding and round-tripping of overrides

package reference

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/markalston/evse-calc/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Validates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefault_FreshCopyEachCall(t *testing.T) {
	a := Default()
	b := Default()
	a.Cables[0].CapacityA = 1

	assert.NotEqual(t, a.Cables[0].CapacityA, b.Cables[0].CapacityA)
}

func TestDefault_EstimatedZeValues(t *testing.T) {
	ref := Default()

	tests := map[models.EarthingType]float64{
		models.EarthingTNCS: 0.35,
		models.EarthingTNS:  0.8,
		models.EarthingTT:   5.0,
	}
	for key, want := range tests {
		e, err := ref.EarthingSystem(key)
		require.NoError(t, err)
		assert.Equal(t, want, e.EstimatedZe, "earthing %s", key)
	}
}

func TestLoad_RoundTripsDefaults(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	loaded, err := Load(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, Default(), loaded)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)
	data = append(data, []byte("surprise_field: true\n")...)

	_, err = Load(bytes.NewReader(data))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse reference YAML")
}

func TestLoad_RejectsInvalidTables(t *testing.T) {
	ref := Default()
	ref.Cables[1], ref.Cables[2] = ref.Cables[2], ref.Cables[1]
	data, err := Marshal(ref)
	require.NoError(t, err)

	_, err = Load(bytes.NewReader(data))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ascend by capacity")
}

func TestLoadFile(t *testing.T) {
	ref := Default()
	ref.Version = "site-override"
	ref.Safety.MaxVoltageDropPct = 3
	data, err := Marshal(ref)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "site-override", loaded.Version)
	assert.Equal(t, 3.0, loaded.Safety.MaxVoltageDropPct)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to open reference file"))
}

func TestLoadOrDefault(t *testing.T) {
	ref, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, ref.Version)
}
