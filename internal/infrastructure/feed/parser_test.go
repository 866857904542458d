package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markethub/backend/internal/domain/catalog"
)

const sampleFeed = `
shop: Svyaznoy
categories:
  - id: 224
    name: Smartphones
  - id: 15
    name: Accessories
goods:
  - id: 4216292
    category: 224
    model: apple/iphone/xs-max
    name: Smartphone Apple iPhone XS Max 512GB (golden)
    price: 110000
    price_rrc: 116990
    quantity: 14
    parameters:
      "Screen Size (inches)": 6.5
      "Internal Memory (GB)": 512
      "Color": golden
  - id: 4216313
    category: 15
    model: apple/cable
    name: Charging cable
    price: 990
    price_rrc: 1190
    quantity: 100
`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleFeed))
	require.NoError(t, err)

	assert.Equal(t, "Svyaznoy", doc.Shop)
	require.Len(t, doc.Categories, 2)
	assert.Equal(t, 224, doc.Categories[0].ID)
	require.Len(t, doc.Goods, 2)

	good := doc.Goods[0]
	assert.Equal(t, 4216292, good.ID)
	assert.Equal(t, 224, good.Category)
	assert.Equal(t, 110000.0, good.Price)
	assert.Equal(t, 14, good.Quantity)

	// Scalar parameter values are stringified regardless of YAML type
	assert.Equal(t, "6.5", good.Parameters["Screen Size (inches)"])
	assert.Equal(t, "512", good.Parameters["Internal Memory (GB)"])
	assert.Equal(t, "golden", good.Parameters["Color"])
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("shop: X\nextra_key: value\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse feed")
}

func TestParse_RejectsEmptyDocument(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParse_RejectsMalformedYAML(t *testing.T) {
	_, err := Parse(strings.NewReader("shop: [unclosed"))
	assert.Error(t, err)
}

func TestParse_RunsDocumentValidation(t *testing.T) {
	// Good references category 999 which is not declared
	bad := `
shop: Svyaznoy
categories:
  - id: 224
    name: Smartphones
goods:
  - id: 1
    category: 999
    name: Phone
    price: 100
    price_rrc: 120
    quantity: 1
`
	_, err := Parse(strings.NewReader(bad))
	require.Error(t, err)

	var verr *catalog.FeedValidationError
	assert.ErrorAs(t, err, &verr)
}
