// Package domain defines the storefront entities, value types, and the
// persistence contracts shared by the store and service layers.
package domain

import "strings"

// EntityType identifies the kind of record referenced by errors and events.
type EntityType string

// Supported entity type identifiers.
const (
	// EntityProduct identifies a catalog product.
	EntityProduct EntityType = "product"
	// EntityAccount identifies a customer account.
	EntityAccount EntityType = "account"
	// EntityAdministrator identifies an administrator account.
	EntityAdministrator EntityType = "administrator"
	// EntityOrder identifies an order record.
	EntityOrder EntityType = "order"
	// EntityCarouselSlide identifies a promotional carousel slide.
	EntityCarouselSlide EntityType = "carousel_slide"
	// EntityCartLine identifies a cart line item.
	EntityCartLine EntityType = "cart_line"
)

// OrderStatus enumerates the fulfilment states of an order.
type OrderStatus string

const (
	// OrderProcessing is assigned by the ledger when an order is placed.
	OrderProcessing OrderStatus = "Processing"
	// OrderShipped marks an order handed to a carrier.
	OrderShipped OrderStatus = "Shipped"
	// OrderDelivered marks an order received by the customer.
	OrderDelivered OrderStatus = "Delivered"
	// OrderCancelled marks an order that will not be fulfilled.
	OrderCancelled OrderStatus = "Cancelled"
)

// OrderStatuses lists every status an administrator may assign.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}
}

// Valid reports whether the status is one of the known fulfilment states.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// ProductVariant is a purchasable size/material combination of a product.
type ProductVariant struct {
	ID            int64   `json:"id" yaml:"id"`
	Size          string  `json:"size" yaml:"size"`
	ClothMaterial string  `json:"clothMaterial" yaml:"clothMaterial"`
	Price         float64 `json:"price" yaml:"price"`
}

// Description renders the variant the way cart lines display it.
func (v ProductVariant) Description() string {
	return v.Size + " / " + v.ClothMaterial
}

// Product is a catalog entry. Variants are ordered as the admin entered them.
type Product struct {
	ID               int64            `json:"id" yaml:"id"`
	Name             string           `json:"name" yaml:"name"`
	Category         string           `json:"category" yaml:"category"`
	Price            float64          `json:"price" yaml:"price"`
	Material         string           `json:"material" yaml:"material"`
	Rating           float64          `json:"rating" yaml:"rating"`
	ImageURL         string           `json:"imageUrl" yaml:"imageUrl"`
	ShortDescription string           `json:"shortDescription" yaml:"shortDescription"`
	Description      string           `json:"description" yaml:"description"`
	IsFeatured       bool             `json:"isFeatured" yaml:"isFeatured"`
	Variants         []ProductVariant `json:"variants" yaml:"variants"`
}

// Clone returns a deep copy of the product.
func (p Product) Clone() Product {
	cp := p
	cp.Variants = append([]ProductVariant(nil), p.Variants...)
	return cp
}

// Variant looks up a variant of the product by id.
func (p Product) Variant(id int64) (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return ProductVariant{}, false
}

// ShippingAddress is the delivery destination captured with an order.
type ShippingAddress struct {
	FullName   string `json:"fullName,omitempty" yaml:"fullName"`
	Street     string `json:"street" yaml:"street"`
	City       string `json:"city" yaml:"city"`
	Region     string `json:"region" yaml:"region"`
	PostalCode string `json:"postalCode" yaml:"postalCode"`
	Phone      string `json:"phone,omitempty" yaml:"phone"`
}

// MissingFields names the required address fields that are blank.
func (a ShippingAddress) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(a.Street) == "" {
		missing = append(missing, "street")
	}
	if strings.TrimSpace(a.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		missing = append(missing, "postalCode")
	}
	return missing
}

// Account is a customer account. Passwords are stored as entered.
type Account struct {
	ID        int64             `json:"id" yaml:"id"`
	Name      string            `json:"name" yaml:"name"`
	Email     string            `json:"email" yaml:"email"`
	Password  string            `json:"password" yaml:"password"`
	Addresses []ShippingAddress `json:"addresses" yaml:"addresses"`
}

// Clone returns a deep copy of the account.
func (a Account) Clone() Account {
	cp := a
	cp.Addresses = append([]ShippingAddress{}, a.Addresses...)
	return cp
}

// EmailMatches compares the account email against email ignoring case.
func (a Account) EmailMatches(email string) bool {
	return strings.EqualFold(a.Email, email)
}

// AdminAccount is an administrator login kept outside the durable snapshot.
type AdminAccount struct {
	ID       int64  `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

// CartLineItem is one cart entry keyed by variant. Price and display fields
// are captured when the line is created.
type CartLineItem struct {
	ProductID          int64   `json:"productId"`
	VariantID          int64   `json:"variantId"`
	Name               string  `json:"name"`
	ImageURL           string  `json:"imageUrl"`
	Quantity           int     `json:"quantity"`
	VariantDescription string  `json:"variantDescription"`
	Price              float64 `json:"price"`
}

// Subtotal returns price times quantity for the line.
func (l CartLineItem) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Order is an immutable purchase record; only Status changes after creation.
type Order struct {
	ID              string          `json:"id"`
	UserID          int64           `json:"userId"`
	Date            string          `json:"date"`
	Items           []CartLineItem  `json:"items"`
	Total           float64         `json:"total"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	cp := o
	cp.Items = append([]CartLineItem{}, o.Items...)
	return cp
}

// SiteSettings holds branding and payment configuration.
type SiteSettings struct {
	LogoURL    string `json:"logoUrl" yaml:"logoUrl"`
	FaviconURL string `json:"faviconUrl" yaml:"faviconUrl"`
	UPIID      string `json:"upiId" yaml:"upiId"`
}

// SiteSettingsPatch carries a partial settings update; nil fields are kept.
type SiteSettingsPatch struct {
	LogoURL    *string
	FaviconURL *string
	UPIID      *string
}

// Apply merges the patch over current and returns the result.
func (p SiteSettingsPatch) Apply(current SiteSettings) SiteSettings {
	if p.LogoURL != nil {
		current.LogoURL = *p.LogoURL
	}
	if p.FaviconURL != nil {
		current.FaviconURL = *p.FaviconURL
	}
	if p.UPIID != nil {
		current.UPIID = *p.UPIID
	}
	return current
}

// CarouselSlide is a promotional banner on the home page.
type CarouselSlide struct {
	ID       int64  `json:"id" yaml:"id"`
	ImageURL string `json:"imageUrl" yaml:"imageUrl"`
	Headline string `json:"headline" yaml:"headline"`
}

// Credentials is a login request. Admin marks the administrator path.
type Credentials struct {
	Email    string
	Password string
	Admin    bool
	Username string
}

// Session is the per-device identity state.
type Session struct {
	IsLoggedIn     bool     `json:"isLoggedIn"`
	IsAdmin        bool     `json:"isAdmin"`
	CurrentAccount *Account `json:"currentAccount"`
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	cp := s
	if s.CurrentAccount != nil {
		acct := s.CurrentAccount.Clone()
		cp.CurrentAccount = &acct
	}
	return cp
}

// Consistent reports whether the flags satisfy the session invariants: an
// admin session is logged in and carries no customer account, and a customer
// session carries its account.
func (s Session) Consistent() bool {
	if s.IsAdmin {
		return s.IsLoggedIn && s.CurrentAccount == nil
	}
	if s.IsLoggedIn {
		return s.CurrentAccount != nil
	}
	return s.CurrentAccount == nil
}
