package roster_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/roster/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

const testTenant = roster.TenantID("tenant-1")

func newTestEngine() (*roster.Engine, *store.Memory) {
	mem := store.NewMemory()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return roster.NewEngine(mem, mem, mem, log), mem
}

func testLeave(personnel string, start, end roster.Date) roster.LeaveRequest {
	return roster.LeaveRequest{
		ID:          roster.LeaveID(roster.NewID()),
		TenantID:    testTenant,
		PersonnelID: roster.PersonnelID(personnel),
		LeaveType:   roster.ShiftAnnualLeave,
		Period:      roster.DateRange{Start: start, End: end},
		Status:      roster.LeaveApproved,
	}
}

// =============================================================================
// DAY-COVERAGE INVARIANT
// =============================================================================

func TestExpandLeaveToDays_OneDayPerCalendarDate(t *testing.T) {
	// GIVEN: A 5-day leave [2024-03-01, 2024-03-05]
	// WHEN: Expanding
	// THEN: Exactly 5 LeaveDays, one per date, all unresolved

	leave := testLeave("p-1", date(2024, time.March, 1), date(2024, time.March, 5))
	days := roster.ExpandLeaveToDays(leave)

	require.Len(t, days, 5)
	for i, day := range days {
		assert.True(t, day.Date.Equal(leave.Period.Start.AddDays(i)), "day %d has wrong date %s", i, day.Date)
		assert.Equal(t, roster.ReplacementNone, day.ReplacementType)
		assert.Equal(t, leave.ID, day.LeaveID)
		assert.Equal(t, leave.PersonnelID, day.PersonnelID)
		assert.Equal(t, roster.ShiftAnnualLeave, day.LeaveType)
	}
}

func TestExpandLeaveToDays_WeekendTagged(t *testing.T) {
	// 2024-03-02 is a Saturday, 2024-03-03 a Sunday.
	leave := testLeave("p-1", date(2024, time.March, 1), date(2024, time.March, 4))
	days := roster.ExpandLeaveToDays(leave)

	require.Len(t, days, 4)
	assert.False(t, days[0].Weekend)
	assert.True(t, days[1].Weekend)
	assert.True(t, days[2].Weekend)
	assert.False(t, days[3].Weekend)
}

func TestExpandLeaveToDays_SingleDayLeave(t *testing.T) {
	leave := testLeave("p-1", date(2024, time.March, 1), date(2024, time.March, 1))
	days := roster.ExpandLeaveToDays(leave)
	require.Len(t, days, 1)
}

// =============================================================================
// CREATE LEAVE
// =============================================================================

func TestCreateLeave_PersistsRequestAndDays(t *testing.T) {
	engine, mem := newTestEngine()
	ctx := context.Background()

	leave := testLeave("p-1", date(2024, time.March, 1), date(2024, time.March, 3))
	days, err := engine.CreateLeave(ctx, testTenant, leave)
	require.NoError(t, err)
	require.Len(t, days, 3)

	stored, err := mem.GetLeave(ctx, testTenant, leave.ID)
	require.NoError(t, err)
	assert.Equal(t, "3", stored.TotalDays.String())

	storedDays, err := mem.ListLeaveDays(ctx, testTenant, leave.ID)
	require.NoError(t, err)
	assert.Len(t, storedDays, 3)
}

func TestCreateLeave_EndBeforeStart_Rejected(t *testing.T) {
	engine, _ := newTestEngine()

	leave := testLeave("p-1", date(2024, time.March, 5), date(2024, time.March, 1))
	_, err := engine.CreateLeave(context.Background(), testTenant, leave)
	require.ErrorIs(t, err, roster.ErrInvalidPeriod)
}

func TestCreateLeave_SecondExpansion_FailsLoudly(t *testing.T) {
	// GIVEN: A leave already expanded
	// WHEN: Expanding the same leave again
	// THEN: The duplicate batch is rejected instead of duplicating day rows

	engine, mem := newTestEngine()
	ctx := context.Background()

	leave := testLeave("p-1", date(2024, time.March, 1), date(2024, time.March, 3))
	_, err := engine.CreateLeave(ctx, testTenant, leave)
	require.NoError(t, err)

	err = mem.InsertLeaveDays(ctx, testTenant, roster.ExpandLeaveToDays(leave))
	require.ErrorIs(t, err, roster.ErrDuplicateLeaveDay)

	days, err := mem.ListLeaveDays(ctx, testTenant, leave.ID)
	require.NoError(t, err)
	assert.Len(t, days, 3, "failed batch must not add rows")
}

func TestCreateLeave_DayBatchFailure_LeaveRowRemains(t *testing.T) {
	// The request row commits first; a failed day batch leaves the request
	// without a day set, surfaced through the leave-details view.
	engine, mem := newTestEngine()
	ctx := context.Background()
	mem.FailInsertLeaveDays = true

	leave := testLeave("p-1", date(2024, time.March, 1), date(2024, time.March, 3))
	_, err := engine.CreateLeave(ctx, testTenant, leave)
	require.Error(t, err)

	stored, err := mem.GetLeave(ctx, testTenant, leave.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.ID, stored.ID)

	days, err := mem.ListLeaveDays(ctx, testTenant, leave.ID)
	require.NoError(t, err)
	assert.Empty(t, days)
}

// =============================================================================
// DELETE LEAVE
// =============================================================================

func TestDeleteLeave_RemovesDays(t *testing.T) {
	engine, mem := newTestEngine()
	ctx := context.Background()

	leave := testLeave("p-1", date(2024, time.March, 1), date(2024, time.March, 3))
	_, err := engine.CreateLeave(ctx, testTenant, leave)
	require.NoError(t, err)

	require.NoError(t, engine.DeleteLeave(ctx, testTenant, leave.ID))

	_, err = mem.GetLeave(ctx, testTenant, leave.ID)
	require.ErrorIs(t, err, roster.ErrLeaveNotFound)

	days, err := mem.ListLeaveDays(ctx, testTenant, leave.ID)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestDeleteLeave_Missing_NotFound(t *testing.T) {
	engine, _ := newTestEngine()
	err := engine.DeleteLeave(context.Background(), testTenant, "no-such-leave")
	require.ErrorIs(t, err, roster.ErrLeaveNotFound)
}
