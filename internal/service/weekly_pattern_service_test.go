package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/roster-availability-api/internal/dto"
	"github.com/noah-isme/roster-availability-api/internal/models"
	appErrors "github.com/noah-isme/roster-availability-api/pkg/errors"
)

func intPtr(v int) *int { return &v }

func newPatternFixture() (*WeeklyPatternService, *fakePatternRepo) {
	traders := newFakeTraderRepo(models.Trader{ID: 1, Name: "Ana", Location: "LDN", IsActive: true})
	repo := newFakePatternRepo()
	return NewWeeklyPatternService(traders, repo, validator.New(), zap.NewNop()), repo
}

func TestWeeklyPatternGetOrInitCreatesCompleteGrid(t *testing.T) {
	svc, repo := newPatternFixture()

	pattern, err := svc.GetOrInit(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, pattern.Cells, 28)
	assert.Equal(t, 1, repo.initCalls)

	for i, key := range models.PatternKeys() {
		cell := pattern.Cells[i]
		assert.Equal(t, key, cell.Key())
		assert.False(t, cell.HardBlock)
		assert.Equal(t, models.WeightNeutral, cell.Weight)
	}

	_, err = svc.GetOrInit(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.initCalls, "a complete grid must not be re-initialised")
}

func TestWeeklyPatternGetOrInitKeepsStoredCells(t *testing.T) {
	svc, repo := newPatternFixture()
	repo.put(models.WeeklyPatternCell{TraderID: 1, DayOfWeek: 2, ShiftType: models.ShiftMid, Weight: 1})
	repo.put(models.WeeklyPatternCell{TraderID: 1, DayOfWeek: 0, ShiftType: models.ShiftFull, HardBlock: true})

	pattern, err := svc.GetOrInit(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, pattern.Cells, 28)

	cell, ok := pattern.Cell(models.PatternKey{DayOfWeek: 2, ShiftType: models.ShiftMid})
	require.True(t, ok)
	assert.Equal(t, 1, cell.Weight)
	cell, _ = pattern.Cell(models.PatternKey{DayOfWeek: 0, ShiftType: models.ShiftFull})
	assert.True(t, cell.HardBlock)
}

func TestWeeklyPatternGetOrInitUnknownTrader(t *testing.T) {
	svc, repo := newPatternFixture()

	_, err := svc.GetOrInit(context.Background(), 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Zero(t, repo.initCalls)
}

func TestWeeklyPatternSaveTouchesOnlyAddressedCells(t *testing.T) {
	svc, repo := newPatternFixture()
	_, err := svc.GetOrInit(context.Background(), 1)
	require.NoError(t, err)
	repo.put(models.WeeklyPatternCell{TraderID: 1, DayOfWeek: 4, ShiftType: models.ShiftLate, Weight: -1})

	pattern, err := svc.Save(context.Background(), 1, dto.SaveWeeklyPatternRequest{Cells: []dto.WeeklyPatternCellInput{
		{DayOfWeek: intPtr(0), ShiftType: "full", HardBlock: true},
		{DayOfWeek: intPtr(3), ShiftType: "EARLY", Weight: 1},
	}})
	require.NoError(t, err)
	require.Len(t, pattern.Cells, 28)

	lookup := pattern.Lookup()
	assert.True(t, lookup[models.PatternKey{DayOfWeek: 0, ShiftType: models.ShiftFull}].HardBlock)
	assert.Equal(t, 1, lookup[models.PatternKey{DayOfWeek: 3, ShiftType: models.ShiftEarly}].Weight)
	assert.Equal(t, -1, lookup[models.PatternKey{DayOfWeek: 4, ShiftType: models.ShiftLate}].Weight)
	assert.Equal(t, 1, repo.upsertCalls)
}

func TestWeeklyPatternSaveValidation(t *testing.T) {
	cases := map[string]struct {
		cell dto.WeeklyPatternCellInput
		want *appErrors.Error
	}{
		"unknown shift":   {dto.WeeklyPatternCellInput{DayOfWeek: intPtr(1), ShiftType: "NIGHT"}, appErrors.ErrInvalidShift},
		"weekday too big": {dto.WeeklyPatternCellInput{DayOfWeek: intPtr(7), ShiftType: "FULL"}, appErrors.ErrValidation},
		"missing weekday": {dto.WeeklyPatternCellInput{ShiftType: "FULL"}, appErrors.ErrValidation},
		"weight range":    {dto.WeeklyPatternCellInput{DayOfWeek: intPtr(1), ShiftType: "FULL", Weight: 2}, appErrors.ErrValidation},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc, repo := newPatternFixture()
			_, err := svc.Save(context.Background(), 1, dto.SaveWeeklyPatternRequest{Cells: []dto.WeeklyPatternCellInput{tc.cell}})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, repo.upsertCalls)
		})
	}
}

func TestCompleteGridDropsUnknownShifts(t *testing.T) {
	cells, missing := completeGrid(1, []models.WeeklyPatternCell{
		{TraderID: 1, DayOfWeek: 0, ShiftType: "NIGHT", Weight: 1},
	})
	assert.Len(t, cells, 28)
	assert.Len(t, missing, 28)
}
