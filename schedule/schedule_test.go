package schedule_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ancientlore/datefilter/schedule"
	"github.com/ancientlore/datefilter/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataFile = "src/_data/acs_s21_orgn.json"

func TestRead(t *testing.T) {
	sessions, err := schedule.Read(os.DirFS("../site/testdata/conference"), dataFile)
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	s := sessions[0]
	assert.Equal(t, "Frontiers in Synthetic Methodology", s.Title)
	assert.Equal(t, "[ORGN] Division of Organic Chemistry", s.Track)
	assert.Equal(t, []string{"A. Chen"}, s.Presiders)
	require.Len(t, s.Presentations, 1)
	assert.Equal(t, []string{"B. Ortiz", "C. Patel"}, s.Presentations[0].Presenters)
	assert.Equal(t, "https://acs.digitellinc.com/acs/events/1002/attend", s.Presentations[0].ZoomLink)

	start, err := s.Start()
	require.NoError(t, err)
	assert.True(t, time.Date(2021, 4, 14, 5, 0, 0, 0, time.UTC).Equal(start))
}

func TestReadErrors(t *testing.T) {
	_, err := schedule.Read(os.DirFS("../site/testdata/conference"), "missing.json")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = schedule.Read(os.DirFS("../site/testdata/conference"), "site.toml")
	assert.Error(t, err)
}

func TestDecodeFromSiteData(t *testing.T) {
	s, err := site.Open("../site/testdata/conference", site.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	data, err := s.Data(context.Background())
	require.NoError(t, err)

	sessions, err := schedule.Decode(data["acs_s21_orgn"])
	require.NoError(t, err)
	assert.Len(t, sessions, 3)

	empty, err := schedule.Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = schedule.Decode(data["meta"])
	assert.Error(t, err, "a table is not a list of sessions")
}

func TestDays(t *testing.T) {
	sessions, err := schedule.Read(os.DirFS("../site/testdata/conference"), dataFile)
	require.NoError(t, err)

	sorted := schedule.Sorted(sessions)
	assert.Equal(t, "Award Symposium", sorted[0].Title)
	assert.Equal(t, "Frontiers in Synthetic Methodology", sorted[1].Title)
	assert.Equal(t, "Natural Product Synthesis", sorted[2].Title)
	assert.Equal(t, "Frontiers in Synthetic Methodology", sessions[0].Title, "input is unchanged")

	assert.Equal(t, []string{"2021-04-13T00:00:00-0500", "2021-04-14T00:00:00-0500"}, schedule.Days(sessions))

	assert.Len(t, schedule.OnDay(sessions, "2021-04-14T00:00:00-0500"), 2)
	assert.Empty(t, schedule.OnDay(sessions, "2021-04-14"), "dates must match exactly")

	days := schedule.ByDay(sessions)
	require.Len(t, days, 2)
	assert.Equal(t, "2021-04-13T00:00:00-0500", days[0].Date)
	assert.Len(t, days[0].Sessions, 1)
	assert.Len(t, days[1].Sessions, 2)
}

func TestEmpty(t *testing.T) {
	assert.Empty(t, schedule.Sorted(nil))
	assert.Empty(t, schedule.Days(nil))
	assert.Empty(t, schedule.ByDay(nil))
	assert.Empty(t, schedule.OnDay(nil, "2021-04-13"))
}
