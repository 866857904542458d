package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFeed() FeedDocument {
	return FeedDocument{
		Shop: "Svyaznoy",
		Categories: []FeedCategory{
			{ID: 224, Name: "Smartphones"},
			{ID: 15, Name: "Accessories"},
		},
		Goods: []FeedGood{
			{
				ID:       4216292,
				Category: 224,
				Model:    "apple/iphone/xs-max",
				Name:     "Smartphone Apple iPhone XS Max 512GB (golden)",
				Price:    110000,
				PriceRRC: 116990,
				Quantity: 14,
				Parameters: map[string]string{
					"Screen Size (inches)": "6.5",
					"Color":                "golden",
				},
			},
			{ID: 4216313, Category: 15, Name: "Charging cable", Price: 990, PriceRRC: 1190, Quantity: 100},
		},
	}
}

func TestFeedDocument_Validate(t *testing.T) {
	t.Run("valid document passes", func(t *testing.T) {
		doc := validFeed()
		assert.NoError(t, doc.Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*FeedDocument)
		problem string
	}{
		{
			name:    "missing shop name",
			mutate:  func(d *FeedDocument) { d.Shop = "  " },
			problem: "shop name is required",
		},
		{
			name: "duplicate category id",
			mutate: func(d *FeedDocument) {
				d.Categories = append(d.Categories, FeedCategory{ID: 224, Name: "Phones again"})
			},
			problem: "duplicate category id 224",
		},
		{
			name: "duplicate good id",
			mutate: func(d *FeedDocument) {
				d.Goods = append(d.Goods, d.Goods[0])
			},
			problem: "duplicate good id 4216292",
		},
		{
			name: "good references undeclared category",
			mutate: func(d *FeedDocument) {
				d.Goods[0].Category = 999
			},
			problem: "category 999 is not declared",
		},
		{
			name: "negative price",
			mutate: func(d *FeedDocument) {
				d.Goods[1].Price = -1
			},
			problem: "price cannot be negative",
		},
		{
			name: "negative quantity",
			mutate: func(d *FeedDocument) {
				d.Goods[0].Quantity = -3
			},
			problem: "quantity cannot be negative",
		},
		{
			name: "good without a name",
			mutate: func(d *FeedDocument) {
				d.Goods[0].Name = ""
			},
			problem: "name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validFeed()
			tt.mutate(&doc)

			err := doc.Validate()
			require.Error(t, err)

			var verr *FeedValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, err.Error(), tt.problem)
		})
	}

	t.Run("all problems are collected", func(t *testing.T) {
		doc := validFeed()
		doc.Shop = ""
		doc.Goods[0].Price = -1
		doc.Goods[1].Quantity = -1

		err := doc.Validate()
		require.Error(t, err)

		var verr *FeedValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Problems, 3)
	})

	t.Run("empty goods list is valid", func(t *testing.T) {
		doc := validFeed()
		doc.Goods = nil
		assert.NoError(t, doc.Validate())
	})
}
