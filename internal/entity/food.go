package entity

import "time"

// Food is the menu item snapshot a cart line refers to.
type Food struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Allergens   []string `json:"allergens"`
	Category    string   `json:"category"`
	IsNew       bool     `json:"isNew,omitempty"`
}

type CartItem struct {
	ID           string    `json:"id"` // food id + normalized notes
	Food         Food      `json:"food"`
	Quantity     int       `json:"quantity"`
	ProductNotes string    `json:"productNotes"`
	AddedAt      time.Time `json:"addedAt"`
}

// CartSnapshot is the persisted form of a cart, stored under the
// "restaurant-cart" key family. Timestamps are epoch milliseconds.
type CartSnapshot struct {
	Items       []CartItem `json:"items"`
	OrderNotes  string     `json:"orderNotes"`
	TableNumber *string    `json:"tableNumber"`
	LastUpdated int64      `json:"lastUpdated"`
	ExpiresAt   int64      `json:"expiresAt"`
}
