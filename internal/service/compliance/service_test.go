package compliance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kriyahr/workforce-backend-go/internal/domain/alertlog"
	"github.com/kriyahr/workforce-backend-go/internal/domain/attendance"
	"github.com/kriyahr/workforce-backend-go/internal/domain/employee"
	"github.com/kriyahr/workforce-backend-go/internal/domain/holiday"
	"github.com/kriyahr/workforce-backend-go/internal/domain/setting"
	"github.com/kriyahr/workforce-backend-go/internal/service/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeAttendanceRepo struct {
	underworked    []attendance.Attendance
	missedClockOut []attendance.Attendance
	earlyClockOut  []attendance.Attendance
	lateClockIn    []attendance.Attendance

	recordedMaxMinutes int
	recordedThreshold  string

	existing map[string]bool // employeeID -> has attendance on the date

	marked  []string // "<id>:<rule>"
	markErr map[string]error
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ListUnderworked(ctx context.Context, date time.Time, maxMinutes int) ([]attendance.Attendance, error) {
	f.recordedMaxMinutes = maxMinutes
	return f.underworked, nil
}

func (f *fakeAttendanceRepo) ListMissedClockOut(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return f.missedClockOut, nil
}

func (f *fakeAttendanceRepo) ListEarlyClockOut(ctx context.Context, date time.Time, maxMinutes int) ([]attendance.Attendance, error) {
	f.recordedMaxMinutes = maxMinutes
	return f.earlyClockOut, nil
}

func (f *fakeAttendanceRepo) ListLateClockIn(ctx context.Context, date time.Time, threshold string) ([]attendance.Attendance, error) {
	f.recordedThreshold = threshold
	return f.lateClockIn, nil
}

func (f *fakeAttendanceRepo) ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return f.existing[employeeID], nil
}

func (f *fakeAttendanceRepo) MarkAlertSent(ctx context.Context, id string, rule attendance.AlertRule, sentAt time.Time) error {
	if err := f.markErr[id]; err != nil {
		return err
	}
	f.marked = append(f.marked, id+":"+string(rule))
	return nil
}

func (f *fakeAttendanceRepo) SetRegularized(ctx context.Context, id string, companyID string) error {
	return nil
}

type fakeEmployeeRepo struct {
	byID   map[string]employee.Employee
	active []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return f.active, nil
}

type fakeHolidayRepo struct {
	globalDates  map[string]bool // "2006-01-02" -> global holiday
	companyDates map[string]bool // "<companyID>:2006-01-02" -> company holiday
}

func (f *fakeHolidayRepo) IsGlobalHoliday(ctx context.Context, date time.Time) (bool, error) {
	return f.globalDates[date.Format("2006-01-02")], nil
}

func (f *fakeHolidayRepo) IsCompanyHoliday(ctx context.Context, companyID string, date time.Time) (bool, error) {
	return f.companyDates[companyID+":"+date.Format("2006-01-02")], nil
}

func (f *fakeHolidayRepo) List(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	return nil, nil
}

type fakeLeaveRepo struct {
	approved map[string]bool // employeeID -> has approved leave on the date
}

func (f *fakeLeaveRepo) HasApprovedLeave(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return f.approved[employeeID], nil
}

type fakeAbsenceAlertRepo struct {
	existing  map[string]bool // employeeID -> already alerted for the date
	created   []alertlog.AbsenceAlert
	createErr error
}

func (f *fakeAbsenceAlertRepo) Exists(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return f.existing[employeeID], nil
}

func (f *fakeAbsenceAlertRepo) Create(ctx context.Context, alert alertlog.AbsenceAlert) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, alert)
	return nil
}

type sentMail struct {
	To       string
	Subject  string
	Template string
	Data     map[string]any
}

type fakeMailer struct {
	sent    []sentMail
	failFor map[string]bool // recipient -> force failure
}

func (f *fakeMailer) Send(to, subject, templateName string, data map[string]any) error {
	if f.failFor[to] {
		return errors.New("smtp: connection refused")
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Template: templateName, Data: data})
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSettingRepo struct {
	entries map[string]setting.Setting
}

func (f *fakeSettingRepo) GetByKey(ctx context.Context, key string) (setting.Setting, error) {
	entry, ok := f.entries[key]
	if !ok {
		return setting.Setting{}, setting.ErrSettingNotFound
	}
	return entry, nil
}

func (f *fakeSettingRepo) List(ctx context.Context) ([]setting.Setting, error) {
	return nil, nil
}

func (f *fakeSettingRepo) Upsert(ctx context.Context, s setting.Setting) (setting.Setting, error) {
	f.entries[s.Key] = s
	return s, nil
}

func (f *fakeSettingRepo) Delete(ctx context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

// --- fixture ---

type fixture struct {
	svc         *Service
	attendances *fakeAttendanceRepo
	employees   *fakeEmployeeRepo
	holidays    *fakeHolidayRepo
	leaves      *fakeLeaveRepo
	absences    *fakeAbsenceAlertRepo
	mail        *fakeMailer
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// newFixture builds a service whose clock reads Tuesday 2025-06-17 02:00, so
// the audit date is Monday 2025-06-16.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		attendances: &fakeAttendanceRepo{
			existing: map[string]bool{},
			markErr:  map[string]error{},
		},
		employees: &fakeEmployeeRepo{byID: map[string]employee.Employee{
			"emp-1": {ID: "emp-1", CompanyID: "co-1", FullName: "Ana Silva", Email: strPtr("ana@example.com")},
			"emp-2": {ID: "emp-2", CompanyID: "co-1", FullName: "Budi Santoso", Email: strPtr("budi@example.com")},
			"emp-3": {ID: "emp-3", CompanyID: "co-2", FullName: "Citra Dewi", Email: strPtr("citra@example.com")},
		}},
		holidays: &fakeHolidayRepo{globalDates: map[string]bool{}, companyDates: map[string]bool{}},
		leaves:   &fakeLeaveRepo{approved: map[string]bool{}},
		absences: &fakeAbsenceAlertRepo{existing: map[string]bool{}},
		mail:     &fakeMailer{failFor: map[string]bool{}},
	}

	provider := settings.NewProvider(&fakeSettingRepo{entries: map[string]setting.Setting{}})

	f.svc = NewService(f.attendances, f.employees, f.holidays, f.leaves, f.absences, provider, f.mail, fakeTxManager{})
	f.svc.now = func() time.Time {
		return time.Date(2025, time.June, 17, 2, 0, 0, 0, time.UTC)
	}
	return f
}

func auditDay() time.Time {
	return time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)
}

// --- evaluator tests ---

func TestCheckUnderworkedHours(t *testing.T) {
	f := newFixture(t)
	f.attendances.underworked = []attendance.Attendance{
		{ID: "att-1", EmployeeID: "emp-1", Date: auditDay(), WorkMinutes: intPtr(420)},
	}

	err := f.svc.CheckUnderworkedHours(context.Background())
	require.NoError(t, err)

	// Default minimum is 8h, passed to the query as 480 minutes.
	assert.Equal(t, 480, f.attendances.recordedMaxMinutes)

	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "ana@example.com", f.mail.sent[0].To)
	assert.Equal(t, "underwork.html", f.mail.sent[0].Template)
	assert.Equal(t, "7", f.mail.sent[0].Data["WorkedHours"])
	assert.Equal(t, []string{"att-1:underwork"}, f.attendances.marked)
}

func TestCheckUnderworkedHours_ConfiguredMinimum(t *testing.T) {
	f := newFixture(t)
	provider := settings.NewProvider(&fakeSettingRepo{entries: map[string]setting.Setting{
		KeyMinimumWorkHours: {Key: KeyMinimumWorkHours, Value: "7.5", Type: setting.TypeNumber},
	}})
	f.svc.settings = provider

	err := f.svc.CheckUnderworkedHours(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 450, f.attendances.recordedMaxMinutes)
}

func TestCheckUnderworkedHours_WeekendRunDoesNothing(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time {
		return time.Date(2025, time.June, 15, 2, 0, 0, 0, time.UTC) // Sunday
	}
	f.attendances.underworked = []attendance.Attendance{
		{ID: "att-1", EmployeeID: "emp-1", Date: auditDay()},
	}

	err := f.svc.CheckUnderworkedHours(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.mail.sent)
	assert.Empty(t, f.attendances.marked)
}

func TestCheckUnderworkedHours_GlobalHolidaySkips(t *testing.T) {
	f := newFixture(t)
	f.holidays.globalDates["2025-06-16"] = true
	f.attendances.underworked = []attendance.Attendance{
		{ID: "att-1", EmployeeID: "emp-1", Date: auditDay()},
	}

	err := f.svc.CheckUnderworkedHours(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.mail.sent)
	assert.Empty(t, f.attendances.marked)
}

func TestCheckUnderworkedHours_PartialFailureContinues(t *testing.T) {
	f := newFixture(t)
	f.attendances.underworked = []attendance.Attendance{
		{ID: "att-1", EmployeeID: "emp-1", Date: auditDay(), WorkMinutes: intPtr(400)},
		{ID: "att-2", EmployeeID: "emp-2", Date: auditDay(), WorkMinutes: intPtr(410)},
		{ID: "att-3", EmployeeID: "emp-3", Date: auditDay(), WorkMinutes: intPtr(420)},
	}
	f.mail.failFor["budi@example.com"] = true

	err := f.svc.CheckUnderworkedHours(context.Background())
	require.NoError(t, err)

	// The failing middle record is skipped, its neighbours still processed.
	assert.Equal(t, []string{"att-1:underwork", "att-3:underwork"}, f.attendances.marked)
	require.Len(t, f.mail.sent, 2)
}

func TestCheckUnderworkedHours_SendFailureLeavesGuardUnset(t *testing.T) {
	f := newFixture(t)
	f.attendances.underworked = []attendance.Attendance{
		{ID: "att-1", EmployeeID: "emp-1", Date: auditDay(), WorkMinutes: intPtr(400)},
	}
	f.mail.failFor["ana@example.com"] = true

	err := f.svc.CheckUnderworkedHours(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.attendances.marked)
}

func TestCheckUnderworkedHours_NoMailGatewayLeavesGuardUnset(t *testing.T) {
	f := newFixture(t)
	f.svc.mail = nil
	f.attendances.underworked = []attendance.Attendance{
		{ID: "att-1", EmployeeID: "emp-1", Date: auditDay(), WorkMinutes: intPtr(400)},
	}

	err := f.svc.CheckUnderworkedHours(context.Background())
	require.NoError(t, err)
	// The record stays a candidate for the next run.
	assert.Empty(t, f.attendances.marked)
}

func TestCheckUnderworkedHours_EmployeeWithoutEmailSkipped(t *testing.T) {
	f := newFixture(t)
	f.employees.byID["emp-1"] = employee.Employee{ID: "emp-1", CompanyID: "co-1", FullName: "Ana Silva"}
	f.attendances.underworked = []attendance.Attendance{
		{ID: "att-1", EmployeeID: "emp-1", Date: auditDay(), WorkMinutes: intPtr(400)},
	}

	err := f.svc.CheckUnderworkedHours(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.mail.sent)
	assert.Empty(t, f.attendances.marked)
}

func TestCheckMissedClockOut(t *testing.T) {
	f := newFixture(t)
	clockIn := time.Date(2025, time.June, 16, 8, 0, 0, 0, time.UTC)
	f.attendances.missedClockOut = []attendance.Attendance{
		{ID: "att-1", EmployeeID: "emp-1", Date: auditDay(), ClockIn: &clockIn},
	}

	err := f.svc.CheckMissedClockOut(context.Background())
	require.NoError(t, err)

	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "missed_clock_out.html", f.mail.sent[0].Template)
	assert.Equal(t, []string{"att-1:missed_clock_out"}, f.attendances.marked)
}

func TestCheckEarlyClockOut(t *testing.T) {
	f := newFixture(t)
	f.attendances.earlyClockOut = []attendance.Attendance{
		{ID: "att-1", EmployeeID: "emp-1", Date: auditDay(), WorkMinutes: intPtr(390)},
	}

	err := f.svc.CheckEarlyClockOut(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 480, f.attendances.recordedMaxMinutes)
	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "early_clock_out.html", f.mail.sent[0].Template)
	assert.Equal(t, "6.5", f.mail.sent[0].Data["WorkedHours"])
	assert.Equal(t, []string{"att-1:early_clock_out"}, f.attendances.marked)
}

func TestCheckLateClockIn(t *testing.T) {
	f := newFixture(t)
	clockIn := time.Date(2025, time.June, 16, 9, 45, 0, 0, time.UTC)
	f.attendances.lateClockIn = []attendance.Attendance{
		{ID: "att-1", EmployeeID: "emp-1", Date: auditDay(), ClockIn: &clockIn},
	}

	err := f.svc.CheckLateClockIn(context.Background())
	require.NoError(t, err)

	// Default threshold 09:30 is passed to the query as a clock time string.
	assert.Equal(t, "09:30:00", f.attendances.recordedThreshold)
	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "late_clock_in.html", f.mail.sent[0].Template)
	assert.Equal(t, "09:45", f.mail.sent[0].Data["ClockIn"])
	assert.Equal(t, []string{"att-1:late_clock_in"}, f.attendances.marked)
}

func TestCheckLateClockIn_ConfiguredThreshold(t *testing.T) {
	f := newFixture(t)
	f.svc.settings = settings.NewProvider(&fakeSettingRepo{entries: map[string]setting.Setting{
		KeyLateClockInThreshold: {Key: KeyLateClockInThreshold, Value: "10:00", Type: setting.TypeTime},
	}})

	err := f.svc.CheckLateClockIn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10:00:00", f.attendances.recordedThreshold)
}

func TestMinutesFromHours(t *testing.T) {
	cases := []struct {
		hours string
		want  int
	}{
		{"8", 480},
		{"7.5", 450},
		{"8.25", 495},
	}
	for _, c := range cases {
		v, err := decimal.NewFromString(c.hours)
		require.NoError(t, err)
		assert.Equal(t, c.want, minutesFromHours(v), c.hours)
	}
}
