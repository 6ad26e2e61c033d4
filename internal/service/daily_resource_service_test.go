package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/roster-availability-api/internal/models"
	appErrors "github.com/noah-isme/roster-availability-api/pkg/errors"
)

type reportFixture struct {
	svc      *DailyResourceService
	traders  *fakeTraderRepo
	patterns *fakePatternRepo
	requests *fakeRequestRepo
}

func newReportFixture(traders ...models.Trader) reportFixture {
	traderRepo := newFakeTraderRepo(traders...)
	patterns := newFakePatternRepo()
	requests := newFakeRequestRepo()
	return reportFixture{
		svc:      NewDailyResourceService(traderRepo, requests, patterns, NewMetricsService(), zap.NewNop()),
		traders:  traderRepo,
		patterns: patterns,
		requests: requests,
	}
}

func TestDailyReportHardBlockedFullShift(t *testing.T) {
	f := newReportFixture(models.Trader{ID: 1, Name: "Ana", Location: "LDN", IsActive: true})
	// 2024-06-05 is a Wednesday.
	f.patterns.put(models.WeeklyPatternCell{TraderID: 1, DayOfWeek: 2, ShiftType: models.ShiftFull, HardBlock: true})
	f.patterns.put(models.WeeklyPatternCell{TraderID: 1, DayOfWeek: 2, ShiftType: models.ShiftEarly, Weight: 1})

	rows, err := f.svc.Report(context.Background(), day("2024-06-05"), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.DailyStatusAbsoluteNo, rows[0].Status)
	assert.Equal(t, "Weekly pattern: Hard block", rows[0].Reason)
}

func TestDailyReportClassification(t *testing.T) {
	f := newReportFixture(
		models.Trader{ID: 1, Name: "Unavail", Location: "LDN", IsActive: true},
		models.Trader{ID: 2, Name: "Both", Location: "LDN", IsActive: true},
		models.Trader{ID: 3, Name: "Mand", Location: "LDN", IsActive: true},
		models.Trader{ID: 4, Name: "PrefIn", Location: "LDN", IsActive: true},
		models.Trader{ID: 5, Name: "PrefOff", Location: "LDN", IsActive: true},
		models.Trader{ID: 6, Name: "Zero", Location: "LDN", IsActive: true},
		models.Trader{ID: 7, Name: "Absent", Location: "LDN", IsActive: true},
		models.Trader{ID: 8, Name: "ScopedIn", Location: "LDN", IsActive: true},
	)
	const target = "2024-06-05"
	f.requests.approved(1, models.RequestKindOffRange, "2024-06-01", "2024-06-10", nil)
	f.requests.approved(2, models.RequestKindIn, target, target, nil)
	f.requests.approved(2, models.RequestKindOffDay, target, target, nil)
	f.requests.approved(3, models.RequestKindIn, target, target, nil)
	f.requests.approved(8, models.RequestKindIn, target, target, shiftPtr(models.ShiftLate))
	f.patterns.put(models.WeeklyPatternCell{TraderID: 3, DayOfWeek: 2, ShiftType: models.ShiftFull, HardBlock: true})
	f.patterns.put(models.WeeklyPatternCell{TraderID: 4, DayOfWeek: 2, ShiftType: models.ShiftFull, Weight: 1})
	f.patterns.put(models.WeeklyPatternCell{TraderID: 5, DayOfWeek: 2, ShiftType: models.ShiftFull, Weight: -1})
	f.patterns.put(models.WeeklyPatternCell{TraderID: 6, DayOfWeek: 2, ShiftType: models.ShiftFull})

	rows, err := f.svc.Report(context.Background(), day(target), "LDN")
	require.NoError(t, err)

	got := make(map[string][2]string, len(rows))
	for _, r := range rows {
		got[r.Name] = [2]string{string(r.Status), r.Reason}
	}
	assert.Equal(t, map[string][2]string{
		"Unavail":  {"Absolute No", "Approved UNAVAILABLE request"},
		"Both":     {"Absolute No", "Approved UNAVAILABLE request"},
		"Mand":     {"Mandatory", "Approved MANDATORY request"},
		"PrefIn":   {"Preferred In", "Weekly pattern: Preferred In"},
		"PrefOff":  {"Preferred Off", "Weekly pattern: Preferred Off"},
		"Zero":     {"Neutral", "No specific preference"},
		"Absent":   {"Neutral", "No specific preference"},
		"ScopedIn": {"Mandatory", "Approved MANDATORY request"},
	}, got)
}

func TestDailyReportLocationFilterAndOrdering(t *testing.T) {
	f := newReportFixture(
		models.Trader{ID: 1, Name: "Zed", Location: "LDN", IsActive: true},
		models.Trader{ID: 2, Name: "Amy", Location: "LDN", IsActive: true},
		models.Trader{ID: 3, Name: "Bob", Location: "LDN", IsActive: true},
		models.Trader{ID: 4, Name: "Cat", Location: "LDN", IsActive: true},
		models.Trader{ID: 5, Name: "Dan", Location: "SYD", IsActive: true},
		models.Trader{ID: 6, Name: "Eve", Location: "LDN", IsActive: false},
	)
	f.requests.approved(1, models.RequestKindIn, "2024-06-05", "2024-06-05", nil)
	f.patterns.put(models.WeeklyPatternCell{TraderID: 3, DayOfWeek: 2, ShiftType: models.ShiftFull, Weight: 1})
	f.patterns.put(models.WeeklyPatternCell{TraderID: 4, DayOfWeek: 2, ShiftType: models.ShiftFull, HardBlock: true})

	rows, err := f.svc.Report(context.Background(), day("2024-06-05"), "LDN")
	require.NoError(t, err)

	var names []string
	for _, r := range rows {
		assert.Equal(t, "LDN", r.Location)
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Zed", "Cat", "Bob", "Amy"}, names)

	all, err := f.svc.Report(context.Background(), day("2024-06-05"), "")
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "SYD", all[4].Location)
}

func TestDailyReportEmptyCohort(t *testing.T) {
	f := newReportFixture(models.Trader{ID: 1, Name: "Ana", Location: "LDN", IsActive: true})

	rows, err := f.svc.Report(context.Background(), day("2024-06-05"), "NYC")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.Zero(t, f.requests.reads)
	assert.Zero(t, f.patterns.dayReads)
}

func TestDailyReportTraderListFailure(t *testing.T) {
	f := newReportFixture()
	f.traders.failOn = errBoom

	_, err := f.svc.Report(context.Background(), day("2024-06-05"), "")
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.ErrorIs(t, err, errBoom)
}
