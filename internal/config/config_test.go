package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "barvakt_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfigFile(t, `
year: 2024
month: 12
membersFile: members.txt
surveyFile: survey.csv
requirementOverrides:
  - rrule: FREQ=WEEKLY;BYDAY=TH
    shift: closing
    staff: 1
`)

	cfg, err := LoadFromPath(path)

	require.NoError(t, err)
	assert.Equal(t, 2024, cfg.Year)
	assert.Equal(t, 12, cfg.Month)
	assert.Equal(t, "members.txt", cfg.MembersFile)
	assert.Equal(t, ".", cfg.OutputDir, "output dir defaults to the working directory")
	require.Len(t, cfg.RequirementOverrides, 1)
	assert.Equal(t, "closing", cfg.RequirementOverrides[0].Shift)
}

func TestLoadFromPath_InvalidMonth(t *testing.T) {
	path := writeConfigFile(t, `
year: 2024
month: 13
membersFile: members.txt
surveyFile: survey.csv
`)

	_, err := LoadFromPath(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadFromPath_MissingRequiredFields(t *testing.T) {
	path := writeConfigFile(t, `
year: 2024
month: 12
`)

	_, err := LoadFromPath(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	path := writeConfigFile(t, `
year: 2024
month: 12
membersFile: members.txt
surveyFile: survey.csv
requirementOverrides:
  - rrule: not a rule
    shift: middle
    staff: 2
`)

	_, err := LoadFromPath(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule in requirementOverrides[0]")
}

func TestLoadFromPath_InvalidShiftName(t *testing.T) {
	path := writeConfigFile(t, `
year: 2024
month: 12
membersFile: members.txt
surveyFile: survey.csv
requirementOverrides:
  - rrule: FREQ=WEEKLY;BYDAY=TH
    shift: brunch
    staff: 2
`)

	_, err := LoadFromPath(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadFromPath_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "year: [unclosed")

	_, err := LoadFromPath(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
