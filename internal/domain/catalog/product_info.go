package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/shared"
)

// ProductInfo is one shop's offer of a product: its price, stock and
// feed-local id. Rows are replaced wholesale on every import of the
// owning shop's feed, except offers referenced by order lines: those are
// archived in place so placed orders keep their price and product data.
// The (shop, external id) pair is unique among live offers only.
type ProductInfo struct {
	shared.BaseEntity
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShopID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_info_shop_external,priority:1"`
	ExternalID int             `gorm:"not null;uniqueIndex:idx_info_shop_external,priority:2,where:archived = false"`
	Model      string          `gorm:"type:varchar(100)"`
	Quantity   int             `gorm:"not null;default:0"`
	Price      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PriceRRC   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Archived   bool            `gorm:"not null;default:false"`

	Product    *Product           `gorm:"foreignKey:ProductID"`
	Shop       *Shop              `gorm:"foreignKey:ShopID"`
	Parameters []ProductParameter `gorm:"foreignKey:ProductInfoID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductInfo) TableName() string {
	return "product_infos"
}

// NewProductInfo creates a new shop offer for a product
func NewProductInfo(productID, shopID uuid.UUID, externalID int, model string, quantity int, price, priceRRC decimal.Decimal) (*ProductInfo, error) {
	if externalID <= 0 {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "Offer id must be a positive integer")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if price.IsNegative() || priceRRC.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &ProductInfo{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		ShopID:     shopID,
		ExternalID: externalID,
		Model:      model,
		Quantity:   quantity,
		Price:      price,
		PriceRRC:   priceRRC,
	}, nil
}

// Parameter is a named product characteristic shared across offers
type Parameter struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Parameter) TableName() string {
	return "parameters"
}

// NewParameter creates a new parameter
func NewParameter(name string) (*Parameter, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PARAMETER_NAME", "Parameter name cannot be empty")
	}
	return &Parameter{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// ProductParameter holds the value of one parameter for one offer
type ProductParameter struct {
	shared.BaseEntity
	ProductInfoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_info_parameter,priority:1"`
	ParameterID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_info_parameter,priority:2"`
	Value         string    `gorm:"type:varchar(200);not null"`

	Parameter *Parameter `gorm:"foreignKey:ParameterID"`
}

// TableName returns the table name for GORM
func (ProductParameter) TableName() string {
	return "product_parameters"
}
