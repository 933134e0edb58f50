package email

import (
	"context"
	"strings"
	"testing"

	"github.com/01moynul/fitshop-api/internal/config"
	"github.com/01moynul/fitshop-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStores() *config.Stores {
	return config.NewStores(map[string]config.StoreConfig{
		"shop-1": {
			DisplayName: "Fit Shop",
			FrontendURL: "https://shop.example.com/",
			SMTP:        config.SMTPConfig{From: "orders@example.com"},
		},
		"no-sender": {DisplayName: "Broken"},
	})
}

func testSummary() OrderSummary {
	return OrderSummary{
		Address: models.Address{
			FirstName: "Jo", LastName: "Doe", Address1: "1 Main St", City: "Austin", Region: "TX", Zip: "78701", Country: "US",
		},
		Items: []SummaryItem{
			{Title: "Tee", VariantLabel: "M / Black", Quantity: 2, Price: 1250},
			{Title: "Mug", Quantity: 1, Price: 900},
		},
		ShippingMethod: "standard",
		TotalPrice:     3899,
		Currency:       "USD",
	}
}

func TestCompose(t *testing.T) {
	c := NewComposer(testStores())

	m, err := c.Compose("shop-1", "jo+shop@example.com", "ORD-1", testSummary())
	require.NoError(t, err)

	assert.Equal(t, "orders@example.com", m.From)
	assert.Equal(t, "Fit Shop", m.FromName)
	assert.Equal(t, "jo+shop@example.com", m.To)
	assert.Contains(t, m.Subject, "ORD-1")

	wantURL := "https://shop.example.com/order-status?orderId=ORD-1&email=jo%2Bshop%40example.com"
	assert.Contains(t, m.Text, wantURL)
	assert.Contains(t, m.Text, "Tee (M / Black) x2")
	assert.Contains(t, m.Text, "25.00")

	// Line totals are price x quantity.
	assert.Contains(t, m.HTML, "25.00")
	assert.Contains(t, m.HTML, "12.50")
	assert.Contains(t, m.HTML, "38.99")
	assert.Contains(t, m.HTML, "M / Black")
}

func TestComposeEscapesHTML(t *testing.T) {
	c := NewComposer(testStores())
	s := testSummary()
	s.Address.Address1 = `<script>alert("x")</script>`
	s.Items[0].Title = `Tee & 'Co'`

	m, err := c.Compose("shop-1", "jo@example.com", "ORD-1", s)
	require.NoError(t, err)

	assert.NotContains(t, m.HTML, "<script>")
	assert.Contains(t, m.HTML, "&lt;script&gt;")
	assert.Contains(t, m.HTML, "Tee &amp; &#39;Co&#39;")
	assert.False(t, strings.Contains(m.HTML, `alert("x")`))
}

func TestComposeConfigErrors(t *testing.T) {
	c := NewComposer(testStores())

	_, err := c.Compose("unknown", "jo@example.com", "ORD-1", testSummary())
	assert.ErrorIs(t, err, ErrNoStoreConfig)

	_, err = c.Compose("no-sender", "jo@example.com", "ORD-1", testSummary())
	assert.ErrorIs(t, err, ErrNoSender)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$12.50", FormatMoney(1250, "USD"))
	assert.Equal(t, "€0.05", FormatMoney(5, "eur"))
	assert.Equal(t, "-$2.50", FormatMoney(-250, "USD"))
	assert.Equal(t, "??? 1.00", FormatMoney(100, "???"))
}

func TestSMTPSenderFallsBackToLog(t *testing.T) {
	s := NewSMTPSender(testStores(), 0)
	m := &Mail{From: "orders@example.com", To: "jo@example.com", Subject: "hi", Text: "body"}

	assert.NoError(t, s.Send(context.Background(), "shop-1", m))
	assert.ErrorIs(t, s.Send(context.Background(), "unknown", m), ErrNoStoreConfig)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, "shop-1", m), context.Canceled)
}
