package model

// RoleAdmin is the only role allowed into the console
const RoleAdmin = "ADMIN"

// ProductSizes is the fixed shoe size vocabulary shared by stock and sold lists
var ProductSizes = []string{
	"US 3.5Y", "US 4Y", "US 4.5Y", "US 5Y", "US 5.5Y", "US 6Y", "US 6.5Y", "US 7Y", "US 8Y",
	"US 5", "US 5.5", "US 6", "US 6.5", "US 7", "US 7.5", "US 8", "US 8.5", "US 9", "US 9.5",
	"US 10", "US 10.5", "US 11", "US 11.5", "US 12", "US 13",
}

// IsProductSize reports whether size belongs to the vocabulary
func IsProductSize(size string) bool {
	for _, s := range ProductSizes {
		if s == size {
			return true
		}
	}
	return false
}

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderOrdered   OrderStatus = "ORDERED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists every status in display order
var OrderStatuses = []OrderStatus{OrderPending, OrderOrdered, OrderShipped, OrderDelivered, OrderCancelled}

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// SalesRange selects the window of the total-sales aggregate
type SalesRange string

const (
	SalesLast7Days    SalesRange = "last7days"
	SalesLast30Days   SalesRange = "last30days"
	SalesLast6Months  SalesRange = "last6months"
	SalesLast12Months SalesRange = "last12months"
)

// SalesRanges lists every range, the first being the default
var SalesRanges = []SalesRange{SalesLast7Days, SalesLast30Days, SalesLast6Months, SalesLast12Months}

// Valid reports whether r is a known range
func (r SalesRange) Valid() bool {
	for _, v := range SalesRanges {
		if v == r {
			return true
		}
	}
	return false
}
