package distributor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davmoha/voucher-automation/internal/models"
	"github.com/davmoha/voucher-automation/internal/services/ses"
)

type fakeClassStore struct {
	class  *models.ClassSession
	err    error
	calls  int
	cutoff time.Time
}

func (f *fakeClassStore) NextUpcoming(ctx context.Context, certificationType string, onOrAfter time.Time) (*models.ClassSession, error) {
	f.calls++
	f.cutoff = onOrAfter
	return f.class, f.err
}

type markCall struct {
	id          int64
	winnerName  string
	winnerEmail string
	issuedAt    time.Time
}

type fakeVoucherStore struct {
	voucher   *models.Voucher
	err       error
	markErr   error
	findCalls int
	marked    []markCall
}

func (f *fakeVoucherStore) FirstAvailable(ctx context.Context, certificationType string) (*models.Voucher, error) {
	f.findCalls++
	return f.voucher, f.err
}

func (f *fakeVoucherStore) MarkUsed(ctx context.Context, id int64, winnerName, winnerEmail string, issuedAt time.Time) error {
	f.marked = append(f.marked, markCall{id, winnerName, winnerEmail, issuedAt})
	return f.markErr
}

type fakeDistStore struct {
	created []*models.DistributionCreate
	err     error
}

func (f *fakeDistStore) Create(ctx context.Context, dist *models.DistributionCreate) (int64, error) {
	f.created = append(f.created, dist)
	return int64(len(f.created)), f.err
}

type alertCall struct {
	subject string
	body    string
}

type fakeMailer struct {
	sent     []ses.VoucherEmailParams
	sendErr  error
	alerts   []alertCall
	alertErr error
}

func (f *fakeMailer) SendVoucherEmail(ctx context.Context, params ses.VoucherEmailParams) error {
	f.sent = append(f.sent, params)
	return f.sendErr
}

func (f *fakeMailer) SendOperatorAlert(ctx context.Context, subject, body string) error {
	f.alerts = append(f.alerts, alertCall{subject, body})
	return f.alertErr
}

var testNow = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

type fixture struct {
	classes  *fakeClassStore
	vouchers *fakeVoucherStore
	dists    *fakeDistStore
	mailer   *fakeMailer
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		classes: &fakeClassStore{
			class: &models.ClassSession{
				ID:                7,
				CertificationType: "CPR",
				ClassDate:         time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
				ClassTime:         "9:00 AM",
				LocationFormat:    "Online",
				InstructorName:    "Dana Reyes",
				RegistrationLink:  "https://classes.example.com/cpr",
			},
		},
		vouchers: &fakeVoucherStore{
			voucher: &models.Voucher{
				ID:                42,
				CertificationType: "CPR",
				Status:            models.VoucherStatusAvailable,
				VoucherCode:       "CPR-9F3A",
			},
		},
		dists:  &fakeDistStore{},
		mailer: &fakeMailer{},
	}
	f.svc = NewService(f.classes, f.vouchers, f.dists, f.mailer,
		clockwork.NewFakeClockAt(testNow), zap.NewNop())
	return f
}

func winnerEvent() *models.WinnerEvent {
	return &models.WinnerEvent{
		ContactID:         "crm-123",
		FirstName:         "Jordan",
		LastName:          "Lee",
		Email:             "jordan@example.com",
		CertificationType: "CPR",
	}
}

func TestDistribute_MissingFieldsMakesNoExternalCalls(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Distribute(context.Background(), &models.WinnerEvent{
		ContactID: "crm-123",
		FirstName: "Jordan",
	})

	require.Error(t, err)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Missing, "email")
	assert.Contains(t, verr.Missing, "certification_type")

	assert.Nil(t, result)
	assert.Zero(t, f.classes.calls)
	assert.Zero(t, f.vouchers.findCalls)
	assert.Empty(t, f.mailer.sent)
	assert.Empty(t, f.mailer.alerts)
	assert.Empty(t, f.dists.created)
}

func TestDistribute_NoClassAlertsAndStops(t *testing.T) {
	f := newFixture()
	f.classes.class = nil

	result, err := f.svc.Distribute(context.Background(), winnerEvent())

	require.ErrorIs(t, err, ErrNoClassAvailable)
	var rerr *ResolutionError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "CPR", rerr.CertificationType)

	assert.Nil(t, result)
	require.Len(t, f.mailer.alerts, 1)
	assert.Equal(t, "No Classes Available", f.mailer.alerts[0].subject)
	assert.Contains(t, f.mailer.alerts[0].body, "CPR")
	assert.Contains(t, f.mailer.alerts[0].body, "jordan@example.com")

	assert.Zero(t, f.vouchers.findCalls)
	assert.Empty(t, f.mailer.sent)
	assert.Empty(t, f.dists.created)
}

func TestDistribute_ClassQueryErrorTreatedAsNoClass(t *testing.T) {
	f := newFixture()
	f.classes.class = nil
	f.classes.err = errors.New("connection reset")

	_, err := f.svc.Distribute(context.Background(), winnerEvent())

	require.ErrorIs(t, err, ErrNoClassAvailable)
	assert.Len(t, f.mailer.alerts, 1)
}

func TestDistribute_ClassCutoffIsStartOfToday(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Distribute(context.Background(), winnerEvent())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), f.classes.cutoff)
}

func TestDistribute_NoVoucherAlertsAndStops(t *testing.T) {
	f := newFixture()
	f.vouchers.voucher = nil

	result, err := f.svc.Distribute(context.Background(), winnerEvent())

	require.ErrorIs(t, err, ErrNoVoucherAvailable)
	var rerr *ResolutionError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "CPR", rerr.CertificationType)

	assert.Nil(t, result)
	require.Len(t, f.mailer.alerts, 1)
	assert.Equal(t, "No Vouchers Available", f.mailer.alerts[0].subject)

	assert.Empty(t, f.mailer.sent)
	assert.Empty(t, f.vouchers.marked)
	assert.Empty(t, f.dists.created)
}

func TestDistribute_Success(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Distribute(context.Background(), winnerEvent())
	require.NoError(t, err)

	require.NotNil(t, result)
	assert.Equal(t, "CPR-9F3A", result.VoucherCode)
	assert.Equal(t, f.classes.class.ClassDate, result.ClassDate)
	assert.True(t, result.EmailSent)

	require.Len(t, f.mailer.sent, 1)
	email := f.mailer.sent[0]
	assert.Equal(t, "jordan@example.com", email.To)
	assert.Equal(t, "Jordan Lee", email.WinnerName)
	assert.Equal(t, "CPR-9F3A", email.VoucherCode)
	assert.Equal(t, "Dana Reyes", email.InstructorName)
	assert.Equal(t, "https://classes.example.com/cpr", email.RegistrationLink)

	require.Len(t, f.vouchers.marked, 1)
	mark := f.vouchers.marked[0]
	assert.Equal(t, int64(42), mark.id)
	assert.Equal(t, "Jordan Lee", mark.winnerName)
	assert.Equal(t, "jordan@example.com", mark.winnerEmail)
	assert.Equal(t, testNow, mark.issuedAt)

	require.Len(t, f.dists.created, 1)
	dist := f.dists.created[0]
	assert.Equal(t, models.DistributionStatusSent, dist.Status)
	assert.Equal(t, "crm-123", dist.ContactID)
	assert.Equal(t, "CPR-9F3A", dist.VoucherCode)
	assert.Equal(t, testNow, dist.DateIssued)

	assert.Empty(t, f.mailer.alerts)
}

func TestDistribute_EmailFailureBlocksMutation(t *testing.T) {
	f := newFixture()
	f.mailer.sendErr = errors.New("ses throttled")

	result, err := f.svc.Distribute(context.Background(), winnerEvent())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoClassAvailable)
	assert.NotErrorIs(t, err, ErrNoVoucherAvailable)

	assert.Nil(t, result)
	assert.Empty(t, f.vouchers.marked)
	assert.Empty(t, f.dists.created)
}

func TestDistribute_MarkUsedFailureStillSucceeds(t *testing.T) {
	f := newFixture()
	f.vouchers.markErr = errors.New("voucher 42 is no longer available")

	result, err := f.svc.Distribute(context.Background(), winnerEvent())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.EmailSent)
	assert.Len(t, f.dists.created, 1)
}

func TestDistribute_AuditFailureStillSucceeds(t *testing.T) {
	f := newFixture()
	f.dists.err = errors.New("insert failed")

	result, err := f.svc.Distribute(context.Background(), winnerEvent())

	require.NoError(t, err)
	require.NotNil(t, result)
}

func TestDistribute_AlertFailureDoesNotChangeOutcome(t *testing.T) {
	f := newFixture()
	f.vouchers.voucher = nil
	f.mailer.alertErr = errors.New("operator mailbox full")

	_, err := f.svc.Distribute(context.Background(), winnerEvent())

	require.ErrorIs(t, err, ErrNoVoucherAvailable)
}

func TestDistribute_NamelessWinnerFallsBackToEmail(t *testing.T) {
	f := newFixture()
	event := winnerEvent()
	event.FirstName = ""
	event.LastName = ""

	_, err := f.svc.Distribute(context.Background(), event)
	require.NoError(t, err)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "jordan@example.com", f.mailer.sent[0].WinnerName)
}
