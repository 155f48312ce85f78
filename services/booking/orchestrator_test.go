package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"rentnest/models"

	"go.uber.org/zap"
)

// --- fakes ---

type fakeProcessor struct {
	createCalls  int
	createErr    error
	confirmCalls int
	confirmErr   error
	confirmOut   *models.PaymentConfirmation
	cancelled    []string
}

func (p *fakeProcessor) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*models.PaymentIntentRef, error) {
	p.createCalls++
	if p.createErr != nil {
		return nil, p.createErr
	}
	return &models.PaymentIntentRef{
		ID:           fmt.Sprintf("pi_%d", p.createCalls),
		ClientSecret: fmt.Sprintf("pi_%d_secret", p.createCalls),
	}, nil
}

func (p *fakeProcessor) ConfirmPayment(ctx context.Context, intentID, paymentMethodID string) (*models.PaymentConfirmation, error) {
	p.confirmCalls++
	if p.confirmErr != nil {
		return nil, p.confirmErr
	}
	if p.confirmOut != nil {
		out := *p.confirmOut
		out.PaymentIntentID = intentID
		return &out, nil
	}
	return &models.PaymentConfirmation{PaymentIntentID: intentID, Status: StatusSucceeded}, nil
}

func (p *fakeProcessor) CancelIntent(ctx context.Context, intentID string) error {
	p.cancelled = append(p.cancelled, intentID)
	return nil
}

type fakeSessions struct {
	saved    map[string]*models.PendingBooking
	inflight map[string]bool
	saveErr  error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		saved:    make(map[string]*models.PendingBooking),
		inflight: make(map[string]bool),
	}
}

func (s *fakeSessions) Save(ctx context.Context, pending *models.PendingBooking) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	cp := *pending
	s.saved[pending.SessionID] = &cp
	return nil
}

func (s *fakeSessions) Get(ctx context.Context, sessionID string) (*models.PendingBooking, error) {
	pending, ok := s.saved[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *pending
	return &cp, nil
}

func (s *fakeSessions) Delete(ctx context.Context, sessionID string) error {
	delete(s.saved, sessionID)
	return nil
}

func (s *fakeSessions) AcquireInflight(ctx context.Context, key string) (bool, error) {
	if s.inflight[key] {
		return false, nil
	}
	s.inflight[key] = true
	return true, nil
}

func (s *fakeSessions) ReleaseInflight(ctx context.Context, key string) error {
	delete(s.inflight, key)
	return nil
}

type fakeBookingRepo struct {
	createErr error
	created   []*models.Booking
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, b)
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	for _, b := range r.created {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeBookingRepo) GetByTenant(tenantID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.created {
		if b.TenantID == tenantID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetByLandlord(landlordID string) ([]models.Booking, error) {
	return nil, nil
}

type fakePropertyRepo struct {
	property       *models.Property
	unavailability []string
}

func (r *fakePropertyRepo) Create(p *models.Property) error                { return nil }
func (r *fakePropertyRepo) Update(p *models.Property) error                { return nil }
func (r *fakePropertyRepo) Delete(id string) error                         { return nil }
func (r *fakePropertyRepo) GetByLandlord(id string) ([]models.Property, error) { return nil, nil }
func (r *fakePropertyRepo) GetByIDs(ids []string) ([]models.Property, error)   { return nil, nil }
func (r *fakePropertyRepo) Search(f models.PropertyFilter) ([]models.Property, int64, error) {
	return nil, 0, nil
}

func (r *fakePropertyRepo) GetByID(id string) (*models.Property, error) {
	if r.property == nil || r.property.ID != id {
		return nil, errors.New("not found")
	}
	cp := *r.property
	return &cp, nil
}

func (r *fakePropertyRepo) SetBedroomAvailability(propertyID, bedroomID string, available bool) error {
	r.unavailability = append(r.unavailability, bedroomID)
	return nil
}

type fakeUserRepo struct {
	user *models.User
}

func (r *fakeUserRepo) Create(u *models.User) error                 { return nil }
func (r *fakeUserRepo) Update(u *models.User) error                 { return nil }
func (r *fakeUserRepo) Delete(id string) error                      { return nil }
func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) { return nil, errors.New("not found") }
func (r *fakeUserRepo) AddToWishlist(userID, propertyID string) error { return nil }
func (r *fakeUserRepo) RemoveFromWishlist(userID, propertyID string) error { return nil }

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, errors.New("not found")
	}
	return r.user, nil
}

type fakeNotifier struct {
	confirmations int
}

func (n *fakeNotifier) SendPush(ctx context.Context, msg models.PushMessage) error { return nil }
func (n *fakeNotifier) NotifyEnquiry(ctx context.Context, landlord *models.User, enquiry *models.Enquiry) error {
	return nil
}

func (n *fakeNotifier) NotifyBookingConfirmed(ctx context.Context, user *models.User, booking *models.Booking) error {
	n.confirmations++
	return nil
}

type fakeScheduler struct {
	reminders []models.MoveInReminderPayload
}

func (s *fakeScheduler) ScheduleMoveInReminder(payload models.MoveInReminderPayload, fireAt time.Time) error {
	s.reminders = append(s.reminders, payload)
	return nil
}

func (s *fakeScheduler) EnqueueEnquiryNotify(payload models.EnquiryNotifyPayload) error { return nil }

// --- fixtures ---

type fixture struct {
	svc       *DefaultBookingService
	processor *fakeProcessor
	sessions  *fakeSessions
	bookings  *fakeBookingRepo
	props     *fakePropertyRepo
	scheduler *fakeScheduler
	notifier  *fakeNotifier
}

func newFixture() *fixture {
	f := &fixture{
		processor: &fakeProcessor{},
		sessions:  newFakeSessions(),
		bookings:  &fakeBookingRepo{},
		scheduler: &fakeScheduler{},
		notifier:  &fakeNotifier{},
		props: &fakePropertyRepo{
			property: &models.Property{
				ID:              "prop-1",
				LandlordID:      "landlord-1",
				Currency:        "cad",
				SecurityDeposit: 500,
				BookingOptions:  models.BookingOptions{AllowFirstRent: true},
				Bedrooms: []models.Bedroom{
					{ID: "bed-1", MonthlyRent: 1200, Available: true},
					{ID: "bed-2", MonthlyRent: 900, Available: false},
				},
			},
		},
	}
	f.svc = &DefaultBookingService{
		Processor:    f.processor,
		Sessions:     f.sessions,
		BookingRepo:  f.bookings,
		PropertyRepo: f.props,
		UserRepo:     &fakeUserRepo{user: &models.User{ID: "tenant-1", FCMToken: "fcm-token"}},
		Notifier:     f.notifier,
		Scheduler:    f.scheduler,
		Logger:       zap.NewNop(),
	}
	return f
}

func validForm() models.BookingForm {
	return models.BookingForm{
		PropertyID: "prop-1",
		BedroomID:  "bed-1",
		MoveInDate: time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
	}
}

// --- SubmitBooking ---

func TestSubmitBookingSuccess(t *testing.T) {
	f := newFixture()

	record, err := f.svc.SubmitBooking(context.Background(), "tenant-1", models.BookingRequest{
		Form:            validForm(),
		PaymentMethodID: "pm_card",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.Amount != 1700 {
		t.Fatalf("expected amount 1700 (rent + deposit), got %v", record.Amount)
	}
	if record.PaymentIntentID != "pi_1" {
		t.Fatalf("expected booking to carry the intent ID, got %q", record.PaymentIntentID)
	}
	if record.Status != "confirmed" || record.PaymentStatus != "completed" {
		t.Fatalf("unexpected record statuses: %+v", record)
	}
	if len(f.bookings.created) != 1 {
		t.Fatalf("expected exactly one booking, got %d", len(f.bookings.created))
	}
	if len(f.props.unavailability) != 1 || f.props.unavailability[0] != "bed-1" {
		t.Fatalf("expected bed-1 marked unavailable, got %v", f.props.unavailability)
	}
	if f.notifier.confirmations != 1 {
		t.Fatalf("expected one confirmation push, got %d", f.notifier.confirmations)
	}
	if len(f.scheduler.reminders) != 1 {
		t.Fatalf("expected one move-in reminder scheduled, got %d", len(f.scheduler.reminders))
	}
	if len(f.sessions.inflight) != 0 {
		t.Fatalf("in-flight guard not released: %v", f.sessions.inflight)
	}
}

func TestSubmitBookingValidationOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cases := []struct {
		name     string
		tenantID string
		req      models.BookingRequest
		field    string
	}{
		{"missing auth", "", models.BookingRequest{Form: validForm(), PaymentMethodID: "pm"}, "authToken"},
		{"missing property", "tenant-1", models.BookingRequest{Form: models.BookingForm{BedroomID: "b", MoveInDate: "2026-09-01"}, PaymentMethodID: "pm"}, "propertyId"},
		{"missing bedroom", "tenant-1", models.BookingRequest{Form: models.BookingForm{PropertyID: "p", MoveInDate: "2026-09-01"}, PaymentMethodID: "pm"}, "bedroomId"},
		{"missing move-in", "tenant-1", models.BookingRequest{Form: models.BookingForm{PropertyID: "p", BedroomID: "b"}, PaymentMethodID: "pm"}, "moveInDate"},
		{"missing payment method", "tenant-1", models.BookingRequest{Form: validForm()}, "paymentMethodId"},
	}

	for _, tc := range cases {
		_, err := f.svc.SubmitBooking(ctx, tc.tenantID, tc.req)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("%s: expected field %q, got %q", tc.name, tc.field, verr.Field)
		}
	}

	// Validation failures never reach the processor.
	if f.processor.createCalls != 0 {
		t.Fatalf("processor called %d times during validation failures", f.processor.createCalls)
	}
}

func TestSubmitBookingUnavailableBedroom(t *testing.T) {
	f := newFixture()
	form := validForm()
	form.BedroomID = "bed-2"

	_, err := f.svc.SubmitBooking(context.Background(), "tenant-1", models.BookingRequest{Form: form, PaymentMethodID: "pm"})

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "bedroomId" {
		t.Fatalf("expected bedroomId validation error for taken bedroom, got %v", err)
	}
}

func TestSubmitBookingIntentFailure(t *testing.T) {
	f := newFixture()
	f.processor.createErr = errors.New("processor unreachable")

	_, err := f.svc.SubmitBooking(context.Background(), "tenant-1", models.BookingRequest{Form: validForm(), PaymentMethodID: "pm"})

	var initErr *PaymentInitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected PaymentInitError, got %v", err)
	}
	if f.processor.confirmCalls != 0 {
		t.Fatal("confirmation must not run when intent creation failed")
	}
	if len(f.bookings.created) != 0 {
		t.Fatal("no booking may exist when intent creation failed")
	}
}

func TestSubmitBookingDeclined(t *testing.T) {
	f := newFixture()
	f.processor.confirmOut = &models.PaymentConfirmation{Status: "declined", Message: "insufficient funds"}

	_, err := f.svc.SubmitBooking(context.Background(), "tenant-1", models.BookingRequest{Form: validForm(), PaymentMethodID: "pm"})

	var declined *PaymentDeclinedError
	if !errors.As(err, &declined) {
		t.Fatalf("expected PaymentDeclinedError, got %v", err)
	}
	if declined.Message != "insufficient funds" {
		t.Fatalf("expected the processor's message, got %q", declined.Message)
	}
	if len(f.bookings.created) != 0 {
		t.Fatal("no booking may exist after a decline")
	}
	if len(f.sessions.inflight) != 0 {
		t.Fatal("guard must be released after a decline so the tenant can retry")
	}
}

func TestSubmitBookingPersistFailure(t *testing.T) {
	f := newFixture()
	f.bookings.createErr = errors.New("write timeout")

	_, err := f.svc.SubmitBooking(context.Background(), "tenant-1", models.BookingRequest{Form: validForm(), PaymentMethodID: "pm"})

	var perr *BookingPersistError
	if !errors.As(err, &perr) {
		t.Fatalf("expected BookingPersistError, got %v", err)
	}
	if perr.PaymentIntentID != "pi_1" {
		t.Fatalf("persist error must carry the captured intent ID, got %q", perr.PaymentIntentID)
	}
	if f.processor.confirmCalls != 1 {
		t.Fatalf("expected exactly one charge attempt, got %d", f.processor.confirmCalls)
	}
}

func TestSubmitBookingInFlightGuard(t *testing.T) {
	f := newFixture()
	form := validForm()
	key := "tenant-1:" + form.PropertyID + ":" + form.BedroomID
	f.sessions.inflight[key] = true

	_, err := f.svc.SubmitBooking(context.Background(), "tenant-1", models.BookingRequest{Form: form, PaymentMethodID: "pm"})

	if !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}
	if f.processor.createCalls != 0 {
		t.Fatal("a blocked submission must not touch the processor")
	}

	// Once the first submission releases the guard, a retry goes through.
	delete(f.sessions.inflight, key)
	if _, err := f.svc.SubmitBooking(context.Background(), "tenant-1", models.BookingRequest{Form: form, PaymentMethodID: "pm"}); err != nil {
		t.Fatalf("retry after release failed: %v", err)
	}
}

// --- Quote / ConfirmSession / CancelSession ---

func TestQuoteCreatesSessionNotBooking(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Quote(context.Background(), "tenant-1", validForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Quote.Amount != 1700 {
		t.Fatalf("expected quote 1700, got %v", resp.Quote.Amount)
	}
	if resp.ClientSecret == "" {
		t.Fatal("quote must return the client secret for the payment dialog")
	}
	if len(f.bookings.created) != 0 {
		t.Fatal("a quote must never create a booking record")
	}
	if _, ok := f.sessions.saved[resp.SessionID]; !ok {
		t.Fatal("pending session was not stored")
	}
}

func TestQuoteSessionSaveFailureVoidsIntent(t *testing.T) {
	f := newFixture()
	f.sessions.saveErr = errors.New("redis down")

	_, err := f.svc.Quote(context.Background(), "tenant-1", validForm())

	var initErr *PaymentInitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected PaymentInitError, got %v", err)
	}
	if len(f.processor.cancelled) != 1 {
		t.Fatalf("orphaned intent must be cancelled, cancelled=%v", f.processor.cancelled)
	}
}

func TestConfirmSessionPersistsBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.svc.Quote(ctx, "tenant-1", validForm())
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}

	record, err := f.svc.ConfirmSession(ctx, "tenant-1", resp.SessionID, "pm_card")
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if record.PaymentIntentID != "pi_1" {
		t.Fatalf("expected booking to carry the quoted intent, got %q", record.PaymentIntentID)
	}
	if _, ok := f.sessions.saved[resp.SessionID]; ok {
		t.Fatal("session must be discarded after confirmation")
	}
}

func TestConfirmSessionWrongTenant(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.svc.Quote(ctx, "tenant-1", validForm())
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}

	_, err = f.svc.ConfirmSession(ctx, "tenant-2", resp.SessionID, "pm_card")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("another tenant's session must look absent, got %v", err)
	}
	if f.processor.confirmCalls != 0 {
		t.Fatal("no charge may be attempted for another tenant's session")
	}
}

func TestConfirmSessionExpired(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ConfirmSession(context.Background(), "tenant-1", "gone", "pm_card")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCancelSessionNeverCreatesBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.svc.Quote(ctx, "tenant-1", validForm())
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}

	if err := f.svc.CancelSession(ctx, "tenant-1", resp.SessionID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if len(f.bookings.created) != 0 {
		t.Fatal("cancellation must never create a booking")
	}
	if len(f.processor.cancelled) != 1 {
		t.Fatalf("payment intent should be voided on cancel, cancelled=%v", f.processor.cancelled)
	}

	// The session is gone; confirming afterwards fails cleanly.
	if _, err := f.svc.ConfirmSession(ctx, "tenant-1", resp.SessionID, "pm_card"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("confirm after cancel should report a missing session, got %v", err)
	}
}

func TestTenantBookings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.SubmitBooking(ctx, "tenant-1", models.BookingRequest{Form: validForm(), PaymentMethodID: "pm"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	mine, err := f.svc.TenantBookings(ctx, "tenant-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected one booking, got %d", len(mine))
	}

	if _, err := f.svc.TenantBookings(ctx, ""); err == nil {
		t.Fatal("expected validation error for missing tenant")
	}
}
