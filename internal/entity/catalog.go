package entity

// Processed shapes served to the storefront.

type ProcessedMenuGroup struct {
	ID            int                   `json:"id"`
	Name          string                `json:"name"`
	DisplayOrder  int                   `json:"displayOrder"`
	PhotoURL      string                `json:"photoUrl"`
	ParentGroupID *int                  `json:"parentGroupId,omitempty"`
	SubGroups     []*ProcessedMenuGroup `json:"subGroups"`
}

type Dietary struct {
	Vegetarian bool `json:"vegetarian"`
	Alcohol    bool `json:"alcohol"`
	Pork       bool `json:"pork"`
	Gluten     bool `json:"gluten"`
}

type ProcessedMenuItem struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	PhotoURL     string   `json:"photoUrl"`
	Description  string   `json:"description,omitempty"`
	GroupID      int      `json:"groupId"`
	GroupName    string   `json:"groupName"`
	Allergens    []string `json:"allergens"`
	Dietary      Dietary  `json:"dietary"`
	DisplayOrder int      `json:"displayOrder"`
}

type ProcessedTable struct {
	ID          int     `json:"id"`
	UID         string  `json:"uid"`
	TableNo     string  `json:"tableNo"`
	MaxCapacity int     `json:"maxCapacity"`
	BookingFee  float64 `json:"bookingFee"`
	TableGroup  string  `json:"tableGroup"`
}

type Currency struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
}

type RestaurantSettings struct {
	OrderButtonActive    bool   `json:"orderButtonActive"`
	AskForTableNo        string `json:"askForTableNo,omitempty"`
	TableSelectionActive bool   `json:"tableSelectionActive"`
	HideEndTimes         bool   `json:"hideEndTimes"`
}

type ProcessedRestaurant struct {
	ID        int                `json:"id"`
	Name      string             `json:"name"`
	Logo      string             `json:"logo"`
	Phone     string             `json:"phone"`
	Address   string             `json:"address,omitempty"`
	Currency  Currency           `json:"currency"`
	Allergens []Allergen         `json:"allergens"`
	Rules     string             `json:"rules"`
	Settings  RestaurantSettings `json:"settings"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type MenuItemStats struct {
	Total        int        `json:"total"`
	Vegetarian   int        `json:"vegetarian"`
	WithAlcohol  int        `json:"withAlcohol"`
	WithPork     int        `json:"withPork"`
	GlutenFree   int        `json:"glutenFree"`
	AveragePrice float64    `json:"averagePrice"`
	PriceRange   PriceRange `json:"priceRange"`
}

type MenuGroupCounts struct {
	Total      int `json:"total"`
	RootGroups int `json:"rootGroups"`
	SubGroups  int `json:"subGroups"`
}

type Subcategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Food `json:"items"`
}

// CategoryData is one browsable category of the storefront, keyed by slug.
type CategoryData struct {
	Name          string                 `json:"name"`
	Subcategories map[string]Subcategory `json:"subcategories"`
}

type CapacityRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type TableGroupStats struct {
	Count         int `json:"count"`
	TotalCapacity int `json:"totalCapacity"`
}

type TableStats struct {
	Total                int                        `json:"total"`
	Groups               int                        `json:"groups"`
	TotalCapacity        int                        `json:"totalCapacity"`
	AverageCapacity      float64                    `json:"averageCapacity"`
	CapacityRange        CapacityRange              `json:"capacityRange"`
	TablesWithBookingFee int                        `json:"tablesWithBookingFee"`
	AverageBookingFee    float64                    `json:"averageBookingFee"`
	GroupStats           map[string]TableGroupStats `json:"groupStats"`
}
