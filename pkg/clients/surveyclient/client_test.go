package surveyclient

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeSurveyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestClient(path string) *Client {
	return NewClient(path, time.December, zap.NewNop())
}

func TestLoadSurvey(t *testing.T) {
	csv := `Tidsmerke,Navn og etternavn,Hvilke dager kan du jobbe? (des - uke 1) [3. des],Hvilke dager kan du jobbe? (des - uke 1) [4. des],"Om du kan, kan du ha morgenvakt? [5. des]"
2024/11/20,Ann Lee,"12:30-17:00, 16:50-20:30",Kan ikke jobbe denne dagen,Ja
2024/11/21,Bob Berg,20:20-00:30,12:30-17:00,Nei
`
	path := writeSurveyFile(t, csv)

	survey, err := newTestClient(path).LoadSurvey(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, survey.WorkDates)
	assert.Equal(t, map[int]bool{5: true}, survey.MorningDates)

	require.Len(t, survey.Responses, 2)
	ann := survey.Responses[0]
	assert.Equal(t, "Ann Lee", ann.Name)
	assert.Equal(t, "12:30-17:00, 16:50-20:30", ann.Cells[3])
	assert.Equal(t, "Kan ikke jobbe denne dagen", ann.Cells[4])
	assert.True(t, ann.MorningOptIn[5])

	bob := survey.Responses[1]
	assert.Equal(t, "20:20-00:30", bob.Cells[3])
	assert.False(t, bob.MorningOptIn[5])
}

func TestLoadSurvey_MalformedDateColumnSkipped(t *testing.T) {
	csv := `Navn og etternavn,Hvilke dager kan du jobbe? (des - uke 1) [3. des],Hvilke dager kan du jobbe? (des - uke 2)
Ann Lee,12:30-17:00,whatever
`
	path := writeSurveyFile(t, csv)

	survey, err := newTestClient(path).LoadSurvey(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int{3}, survey.WorkDates, "the column without a date label is dropped")
	require.Len(t, survey.Responses, 1)
	assert.NotContains(t, survey.Responses[0].Cells, 0)
}

func TestLoadSurvey_OtherMonthColumnsIgnored(t *testing.T) {
	csv := `Navn og etternavn,Hvilke dager kan du jobbe? (nov - uke 4) [28. nov],Hvilke dager kan du jobbe? (des - uke 1) [3. des]
Ann Lee,16:50-20:30,12:30-17:00
`
	path := writeSurveyFile(t, csv)

	survey, err := newTestClient(path).LoadSurvey(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int{3}, survey.WorkDates)
	assert.Equal(t, "12:30-17:00", survey.Responses[0].Cells[3])
	assert.NotContains(t, survey.Responses[0].Cells, 28)
}

func TestLoadSurvey_EmptyNameRowSkipped(t *testing.T) {
	csv := `Navn og etternavn,Hvilke dager kan du jobbe? (des - uke 1) [3. des]
  ,12:30-17:00
Ann Lee,12:30-17:00
`
	path := writeSurveyFile(t, csv)

	survey, err := newTestClient(path).LoadSurvey(context.Background())

	require.NoError(t, err)
	require.Len(t, survey.Responses, 1)
	assert.Equal(t, "Ann Lee", survey.Responses[0].Name)
}

func TestLoadSurvey_NoNameColumn(t *testing.T) {
	csv := `Tidsmerke,Hvilke dager kan du jobbe? (des - uke 1) [3. des]
2024/11/20,12:30-17:00
`
	path := writeSurveyFile(t, csv)

	survey, err := newTestClient(path).LoadSurvey(context.Background())

	require.NoError(t, err, "a missing name column degrades, it does not abort")
	assert.Empty(t, survey.Responses)
	assert.Equal(t, []int{3}, survey.WorkDates)
}

func TestLoadSurvey_MissingFile(t *testing.T) {
	_, err := newTestClient(filepath.Join(t.TempDir(), "nope.csv")).LoadSurvey(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open survey file")
}

func TestLoadSurvey_EmptyFile(t *testing.T) {
	path := writeSurveyFile(t, "")

	_, err := newTestClient(path).LoadSurvey(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "survey file is empty")
}

func TestParseDayLabel(t *testing.T) {
	day, err := parseDayLabel("Hvilke dager kan du jobbe? (des - uke 1) [14. des]")
	require.NoError(t, err)
	assert.Equal(t, 14, day)

	_, err = parseDayLabel("no label here")
	assert.Error(t, err)

	_, err = parseDayLabel("unterminated [14. des")
	assert.Error(t, err)

	_, err = parseDayLabel("no day [des]")
	assert.Error(t, err)
}
