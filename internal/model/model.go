package model

// Timestamps are the server-assigned creation and update times carried by
// every entity. The formatted variants are display-only and never encoded.
type Timestamps struct {
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`

	FormattedCreatedAt string `json:"-"`
	FormattedUpdatedAt string `json:"-"`
}

// Stamps exposes the embedded timestamps for formatting
func (t *Timestamps) Stamps() *Timestamps {
	return t
}

// Category groups products
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Timestamps
}

// Coupon is a percentage discount code
type Coupon struct {
	ID       string `json:"_id"`
	Code     string `json:"code"`
	Discount int    `json:"discount"`
	Active   bool   `json:"active"`
	Timestamps
}

// SizeQuantity pairs a shoe size with a count
type SizeQuantity struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// StockSize is a stocked size as returned by the API
type StockSize struct {
	ID       string `json:"_id,omitempty"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// Photo is an uploaded product image
type Photo struct {
	SecureURL string `json:"secure_url"`
}

// CollectionRef is the category a product belongs to
type CollectionRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Product is a sneaker listing
type Product struct {
	ID           string         `json:"_id"`
	Name         string         `json:"name"`
	Price        int            `json:"price"`
	SellingPrice int            `json:"sellingPrice"`
	Description  string         `json:"description"`
	ColourShown  string         `json:"colourShown"`
	Style        string         `json:"style"`
	Collection   CollectionRef  `json:"collectionId"`
	Sizes        []StockSize    `json:"sizes"`
	Sold         []SizeQuantity `json:"sold"`
	Photos       []Photo        `json:"photos"`
	Timestamps
}

// OrderedProduct is one line item of an order
type OrderedProduct struct {
	ID        string `json:"_id,omitempty"`
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Count     int    `json:"count"`
	Price     string `json:"price"`
}

// OrderUser is the purchasing user as embedded in an order
type OrderUser struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Order is a storefront purchase
type Order struct {
	ID                string           `json:"_id"`
	Products          []OrderedProduct `json:"products"`
	User              *OrderUser       `json:"user,omitempty"`
	PhoneNumber       string           `json:"phoneNumber"`
	Address           string           `json:"address"`
	Amount            float64          `json:"amount"`
	Coupon            string           `json:"coupon,omitempty"`
	TransactionStatus string           `json:"transactionStatus"`
	Status            OrderStatus      `json:"status"`
	TransactionID     string           `json:"transactionId,omitempty"`
	Timestamps

	OrderBy      string `json:"-"`
	NoOfProducts int    `json:"-"`
}

// User is a platform account. Credentials are write-only and live on the
// input types.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Timestamps
}

// Sales is one total-sales aggregate
type Sales struct {
	TotalSales float64 `json:"totalSales"`
}

// Deleted is the acknowledgement returned by every delete endpoint
type Deleted struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
