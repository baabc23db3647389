package dataimporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fleetFixture = `
groups:
  - id: emu900
    name: EMU900
    trains:
      - id: EMU901
        driver: 王小明
        schedule: ["501", "502", "暫無排程"]
      - id: EMU902
        driver: 李大華
        schedule: []
stations:
  - id: QID
    name: 七堵
  - id: TPE
    name: 臺北
`

func TestLoadFleetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fleetFixture), 0644))

	fleetFile, err := LoadFleetFile(path)
	require.NoError(t, err)

	require.Len(t, fleetFile.Groups, 1)

	group := fleetFile.Groups[0]
	assert.Equal(t, "emu900", group.ID)
	assert.Equal(t, "EMU900", group.Name)

	require.Len(t, group.Trains, 2)
	assert.Equal(t, "EMU901", group.Trains[0].ID)
	assert.Equal(t, "王小明", group.Trains[0].Driver)
	assert.Equal(t, []string{"501", "502", "暫無排程"}, group.Trains[0].Schedule)
	assert.Empty(t, group.Trains[1].Schedule)

	require.Len(t, fleetFile.Stations, 2)
	assert.Equal(t, "QID", fleetFile.Stations[0].ID)
	assert.Equal(t, "七堵", fleetFile.Stations[0].Name)
}

func TestLoadFleetFileMissing(t *testing.T) {
	_, err := LoadFleetFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
