package printify

import (
	"testing"

	"github.com/01moynul/fitshop-api/internal/models"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRates(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	raw := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func TestNormalizeShippingRates(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []models.ShippingQuote
	}{
		{
			name: "economy and standard",
			body: `{"economy": 399, "standard": 499}`,
			want: []models.ShippingQuote{{Code: "economy", Price: 399}, {Code: "standard", Price: 499}},
		},
		{
			name: "legacy express is priority",
			body: `{"standard": 499, "express": 900}`,
			want: []models.ShippingQuote{{Code: "standard", Price: 499}, {Code: "priority", Price: 900}},
		},
		{
			name: "numeric only",
			body: `{"standard": 123}`,
			want: []models.ShippingQuote{{Code: "standard", Price: 123}},
		},
		{
			name: "printify_express is express",
			body: `{"standard": 499, "printify_express": 799}`,
			want: []models.ShippingQuote{{Code: "standard", Price: 499}, {Code: "express", Price: 799}},
		},
		{
			name: "cheapest wins on collision",
			body: `{"express": 1200, "priority": 950}`,
			want: []models.ShippingQuote{{Code: "priority", Price: 950}},
		},
		{
			name: "sorted by price",
			body: `{"priority": 300, "standard": 500, "economy": 700}`,
			want: []models.ShippingQuote{{Code: "priority", Price: 300}, {Code: "standard", Price: 500}, {Code: "economy", Price: 700}},
		},
		{
			name: "ties use display order",
			body: `{"priority": 500, "printify_express": 500, "standard": 500, "economy": 500}`,
			want: []models.ShippingQuote{
				{Code: "economy", Price: 500}, {Code: "standard", Price: 500},
				{Code: "express", Price: 500}, {Code: "priority", Price: 500},
			},
		},
		{
			name: "unknown and invalid fields ignored",
			body: `{"standard": "650", "economy": null, "pickup": 0, "priority": -5, "express": {"cost": 1}}`,
			want: []models.ShippingQuote{{Code: "standard", Price: 650}},
		},
		{
			name: "out of range ignored",
			body: `{"express": 1e300}`,
			want: []models.ShippingQuote{},
		},
		{
			name: "fractional and huge values do not undercut valid ones",
			body: `{"standard": "499", "express": 1e300, "printify_express": 4.995}`,
			want: []models.ShippingQuote{{Code: "standard", Price: 499}},
		},
		{
			name: "integral float accepted",
			body: `{"economy": 399.0}`,
			want: []models.ShippingQuote{{Code: "economy", Price: 399}},
		},
		{
			name: "empty",
			body: `{}`,
			want: []models.ShippingQuote{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeShippingRates(rawRates(t, tt.body)))
		})
	}
}

func TestNormalizeShippingRatesIsStable(t *testing.T) {
	raw := rawRates(t, `{"standard": 499, "express": 499, "economy": 499}`)
	first := NormalizeShippingRates(raw)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, NormalizeShippingRates(raw))
	}
	assert.Equal(t, []models.ShippingCode{"economy", "standard", "priority"},
		[]models.ShippingCode{first[0].Code, first[1].Code, first[2].Code})
}
