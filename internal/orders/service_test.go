package orders

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/01moynul/fitshop-api/internal/database"
	"github.com/01moynul/fitshop-api/internal/email"
	"github.com/01moynul/fitshop-api/internal/models"
	"github.com/01moynul/fitshop-api/internal/printify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu         sync.Mutex
	orders     map[string]*models.Order
	saveErr    error
	linkErrs   []error
	linkCalls  int
	lookupErrs error
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: map[string]*models.Order{}}
}

func (f *fakeStore) Save(_ context.Context, _ database.Querier, o *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	cp := *o
	cp.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.orders[o.OrderNumber] = &cp
	return nil
}

func (f *fakeStore) SetProviderOrderID(_ context.Context, _ database.Querier, number, pid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkCalls++
	if len(f.linkErrs) > 0 {
		err := f.linkErrs[0]
		f.linkErrs = f.linkErrs[1:]
		if err != nil {
			return err
		}
	}
	o, ok := f.orders[number]
	if !ok {
		return database.ErrNotFound
	}
	o.ProviderOrderID = sql.NullString{String: pid, Valid: true}
	return nil
}

func (f *fakeStore) FindByNumberAndEmail(_ context.Context, _ database.Querier, number, mail string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErrs != nil {
		return nil, f.lookupErrs
	}
	o, ok := f.orders[number]
	if !ok || o.Email != mail {
		return nil, database.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

type fakeFulfillment struct {
	submitted   []printify.SubmitRequest
	submitNums  []string
	submitErr   error
	providerID  string
	details     *printify.OrderDetails
	getErr      error
	getOrderIDs []string
}

func (f *fakeFulfillment) SubmitOrder(_ context.Context, _ string, number string, req printify.SubmitRequest) (*printify.SubmitResult, error) {
	f.submitNums = append(f.submitNums, number)
	f.submitted = append(f.submitted, req)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &printify.SubmitResult{ID: f.providerID}, nil
}

func (f *fakeFulfillment) GetOrder(_ context.Context, _ string, pid string) (*printify.OrderDetails, error) {
	f.getOrderIDs = append(f.getOrderIDs, pid)
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.details, nil
}

type fakeComposer struct {
	calls []email.OrderSummary
	err   error
}

func (f *fakeComposer) Compose(storeID, to, orderID string, s email.OrderSummary) (*email.Mail, error) {
	f.calls = append(f.calls, s)
	if f.err != nil {
		return nil, f.err
	}
	return &email.Mail{To: to, Subject: orderID}, nil
}

type fakeSender struct {
	sent []*email.Mail
	err  error
}

func (f *fakeSender) Send(_ context.Context, _ string, m *email.Mail) error {
	f.sent = append(f.sent, m)
	return f.err
}

type fixture struct {
	store    *fakeStore
	provider *fakeFulfillment
	composer *fakeComposer
	sender   *fakeSender
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		store:    newFakeStore(),
		provider: &fakeFulfillment{providerID: "pf-777"},
		composer: &fakeComposer{},
		sender:   &fakeSender{},
	}
	f.svc = NewService(f.store, f.provider, f.composer, f.sender, time.Second)
	f.svc.NewOrderNumber = func() string { return "ORD-TEST" }
	return f
}

func sampleInput() SubmitInput {
	return SubmitInput{
		StoreID:        "shop-1",
		Email:          "buyer@example.com",
		TotalPrice:     3499,
		Currency:       "usd",
		ShippingMethod: models.ShippingStandard,
		ShippingCost:   499,
		Address: models.Address{
			FirstName: "Jo", LastName: "Doe", Country: "US", Address1: "1 Main St", City: "Austin", Zip: "78701",
		},
		Items: []models.LineItem{
			{ProductID: "p1", VariantID: 11, Quantity: 2, Price: 1500, Title: "Tee", VariantLabel: "M"},
		},
		StripePaymentID: "pi_1",
	}
}

func TestSubmitHappyPath(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Submit(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "ORD-TEST", res.OrderID)
	assert.Equal(t, "pf-777", res.ProviderOrderID)
	assert.NoError(t, res.EmailErr)

	stored := f.store.orders["ORD-TEST"]
	require.NotNil(t, stored)
	assert.Equal(t, "pf-777", stored.ProviderOrderID.String)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, stored.OrderStatus)
	assert.Equal(t, "USD", stored.Currency)

	assert.Equal(t, []string{"ORD-TEST"}, f.provider.submitNums)

	require.Len(t, f.composer.calls, 1)
	assert.Equal(t, email.OrderSummary{
		Address:        sampleInput().Address,
		Items:          []email.SummaryItem{{Title: "Tee", VariantLabel: "M", Quantity: 2, Price: 1500}},
		ShippingMethod: "standard",
		TotalPrice:     3499,
		Currency:       "USD",
	}, f.composer.calls[0])
	require.Len(t, f.sender.sent, 1)
}

func TestSubmitEmailFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.sender.err = errors.New("smtp down")

	res, err := f.svc.Submit(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "ORD-TEST", res.OrderID)
	assert.Equal(t, "pf-777", res.ProviderOrderID)
	assert.Error(t, res.EmailErr)
}

func TestSubmitComposeFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.composer.err = email.ErrNoStoreConfig

	res, err := f.svc.Submit(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.ErrorIs(t, res.EmailErr, email.ErrNoStoreConfig)
	assert.Empty(t, f.sender.sent)
}

func TestSubmitPersistenceFailure(t *testing.T) {
	f := newFixture()
	f.store.saveErr = errors.New("db down")

	_, err := f.svc.Submit(context.Background(), sampleInput())
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, f.provider.submitNums, "provider must not be called")
	assert.Empty(t, f.composer.calls)
}

func TestSubmitProviderFailureLeavesOrphan(t *testing.T) {
	f := newFixture()
	f.provider.submitErr = &printify.Error{Op: "submit", Message: "Validation failed."}

	_, err := f.svc.Submit(context.Background(), sampleInput())
	assert.ErrorIs(t, err, ErrSubmission)

	stored := f.store.orders["ORD-TEST"]
	require.NotNil(t, stored)
	assert.False(t, stored.Linked())
	assert.Empty(t, f.composer.calls)
}

func TestSubmitLinkRetriesOnce(t *testing.T) {
	f := newFixture()
	f.store.linkErrs = []error{errors.New("deadlock")}

	res, err := f.svc.Submit(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "pf-777", res.ProviderOrderID)
	assert.Equal(t, 2, f.store.linkCalls)
}

func TestSubmitUnlinked(t *testing.T) {
	f := newFixture()
	f.store.linkErrs = []error{errors.New("deadlock"), errors.New("deadlock")}

	_, err := f.svc.Submit(context.Background(), sampleInput())
	require.ErrorIs(t, err, ErrUnlinked)

	var unlinked *UnlinkedError
	require.ErrorAs(t, err, &unlinked)
	assert.Equal(t, "ORD-TEST", unlinked.OrderID)
	assert.Equal(t, "pf-777", unlinked.ProviderOrderID)
	assert.Empty(t, f.composer.calls, "no confirmation for unlinked orders")
}

func TestNewOrderNumberIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		n := NewOrderNumber()
		assert.Len(t, n, len("ORD-")+32)
		assert.False(t, seen[n])
		seen[n] = true
	}
}

func linkedFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture()
	_, err := f.svc.Submit(context.Background(), sampleInput())
	require.NoError(t, err)
	f.provider.details = &printify.OrderDetails{
		ID:             "pf-777",
		Status:         "fulfilled",
		ShippingMethod: 1,
		TotalPrice:     9999,
		TotalShipping:  1234,
		LineItems: []printify.OrderLineItem{{
			ProductID: "p1", VariantID: 11, Quantity: 2, Status: "fulfilled",
			SentToProductionAt: "2026-03-02 10:00:00+00:00", FulfilledAt: "2026-03-03 10:00:00+00:00",
			Metadata: printify.LineItemMetadata{Title: "Tee", VariantLabel: "M", Price: 1700},
		}},
		Shipments: []printify.Shipment{{Carrier: "usps", Number: "9400", URL: "https://track/9400"}},
	}
	return f
}

func TestStatusMergesLocalMoney(t *testing.T) {
	f := linkedFixture(t)

	st, err := f.svc.Status(context.Background(), "ORD-TEST", "buyer@example.com")
	require.NoError(t, err)

	assert.True(t, st.Success)
	assert.Equal(t, int64(3499), st.TotalPrice)
	assert.Equal(t, int64(499), st.TotalShipping)
	assert.Equal(t, "USD", st.Currency)

	assert.Equal(t, "fulfilled", st.OrderStatus)
	assert.Equal(t, "9400", st.TrackingNumber)
	assert.Equal(t, "https://track/9400", st.TrackingURL)
	require.Len(t, st.Items, 1)
	assert.Equal(t, "2026-03-03 10:00:00+00:00", st.Items[0].FulfilledAt)
	assert.Equal(t, "buyer@example.com", st.Customer.Email)
	assert.Equal(t, "2026-03-01T12:00:00Z", st.CreatedAt)
	assert.Equal(t, []string{"pf-777"}, f.provider.getOrderIDs)
}

func TestStatusRequiresBothKeys(t *testing.T) {
	f := linkedFixture(t)

	_, err := f.svc.Status(context.Background(), "ORD-TEST", "intruder@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Status(context.Background(), "ORD-OTHER", "buyer@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, f.provider.getOrderIDs, "provider must not be queried")
}

func TestStatusNotLinked(t *testing.T) {
	f := newFixture()
	f.provider.submitErr = errors.New("boom")
	_, _ = f.svc.Submit(context.Background(), sampleInput())

	_, err := f.svc.Status(context.Background(), "ORD-TEST", "buyer@example.com")
	assert.ErrorIs(t, err, ErrNotLinked)
}

func TestStatusProviderFailure(t *testing.T) {
	f := linkedFixture(t)
	f.provider.getErr = &printify.Error{Op: "fetch", Message: "Unknown error"}

	_, err := f.svc.Status(context.Background(), "ORD-TEST", "buyer@example.com")
	assert.ErrorIs(t, err, ErrLookup)
}

func TestStatusStoreFailure(t *testing.T) {
	f := newFixture()
	f.store.lookupErrs = errors.New("db down")

	_, err := f.svc.Status(context.Background(), "ORD-TEST", "buyer@example.com")
	assert.ErrorIs(t, err, ErrLookup)
	assert.NotErrorIs(t, err, ErrNotFound)
}
