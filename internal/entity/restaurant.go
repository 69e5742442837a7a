package entity

// RestaurantData is the single document the storefront is built from.
type RestaurantData struct {
	HotelParam       HotelParam         `json:"hotelParam" bson:"hotelParam"`
	MenuGroups       []MenuGroup        `json:"menuGroupArr" bson:"menuGroupArr"`
	MenuItems        []MenuItem         `json:"menuArr" bson:"menuArr"`
	BasketMenu       []BasketMenu       `json:"basketMenu" bson:"basketMenu"`
	BasketMenuDetail []BasketMenuDetail `json:"basketMenuDetail" bson:"basketMenuDetail"`
	ItemExtras       []ItemExtra        `json:"itemExtras" bson:"itemExtras"`
	Tables           []Table            `json:"tables" bson:"tables"`
}

type HotelParam struct {
	ID                   int     `json:"ID" bson:"ID"`
	DepID                int     `json:"DEPID" bson:"DEPID"`
	Name                 string  `json:"NAME" bson:"NAME"`
	Logo                 string  `json:"LOGO" bson:"LOGO"`
	DepartmentName       string  `json:"DEPARTMENTNAME" bson:"DEPARTMENTNAME"`
	Phone                string  `json:"PHONE" bson:"PHONE"`
	Address              *string `json:"ADDRESS" bson:"ADDRESS"`
	UID                  string  `json:"UID" bson:"UID"`
	CurrencyID           int     `json:"POSCURRENCYID" bson:"POSCURRENCYID"`
	CurrencyCode         string  `json:"POSCURRENCYCODE" bson:"POSCURRENCYCODE"`
	OrderButtonActive    bool    `json:"POSBOOKING_ORDERBUTTONACTIVE" bson:"POSBOOKING_ORDERBUTTONACTIVE"`
	AskForTableNo        *string `json:"POSBOOKING_ASKFORTABLENO" bson:"POSBOOKING_ASKFORTABLENO"`
	AllergensTable       string  `json:"ALLERGENSTBL" bson:"ALLERGENSTBL"` // JSON encoded []Allergen
	MenuDesignID         int     `json:"POSBOOKING_MENUDESIGNID" bson:"POSBOOKING_MENUDESIGNID"`
	HourOffset           string  `json:"HOUROFFSET" bson:"HOUROFFSET"`
	Rules                string  `json:"POSBOOKING_RULES" bson:"POSBOOKING_RULES"`
	TableSelectionActive bool    `json:"POSBOOKING_TABLESELECTIONACTIVE" bson:"POSBOOKING_TABLESELECTIONACTIVE"`
	HideEndTimes         bool    `json:"POSBOOKING_DONOTSHOW_ENDTIMES_INTHERESERVATION" bson:"POSBOOKING_DONOTSHOW_ENDTIMES_INTHERESERVATION"`
}

type MenuGroup struct {
	ID            int    `json:"ID" bson:"ID"`
	Name          string `json:"NAME" bson:"NAME"`
	DisplayOrder  int    `json:"DISPLAYORDER" bson:"DISPLAYORDER"`
	ProductTypeID *int   `json:"PRODUCTTYPEID" bson:"PRODUCTTYPEID"`
	ParentGroupID *int   `json:"PARENTGROUPID" bson:"PARENTGROUPID"`
	PhotoURL      string `json:"PHOTOURL" bson:"PHOTOURL"`
}

type MenuItem struct {
	ID             int     `json:"ID" bson:"ID"`
	Name           string  `json:"NAME" bson:"NAME"`
	PhotoURL       string  `json:"PHOTOURL" bson:"PHOTOURL"`
	Price          float64 `json:"PRICE" bson:"PRICE"`
	CurrencyCode   string  `json:"CURRENCYCODE" bson:"CURRENCYCODE"`
	CurrencySymbol string  `json:"CURRENCYSYMBOL" bson:"CURRENCYSYMBOL"`
	GroupID        int     `json:"GROUPID" bson:"GROUPID"`
	GroupName      string  `json:"GROUPNAME" bson:"GROUPNAME"`
	DisplayInfo    *string `json:"DISPLAYINFO" bson:"DISPLAYINFO"`
	Allergic       bool    `json:"ALLERGIC" bson:"ALLERGIC"`
	Vegetarian     bool    `json:"VEGETARIAN" bson:"VEGETARIAN"`
	Alcohol        bool    `json:"ALCOHOL" bson:"ALCOHOL"`
	Pork           bool    `json:"PORK" bson:"PORK"`
	Gluten         bool    `json:"GLUTEN" bson:"GLUTEN"`
	ProductTypeID  int     `json:"PRODUCTTYPEID" bson:"PRODUCTTYPEID"`
	Allergens      *string `json:"ALLERGENS" bson:"ALLERGENS"` // comma separated allergen ids
	DisplayOrder   int     `json:"DISPLAYORDER" bson:"DISPLAYORDER"`
}

// BasketMenu and BasketMenuDetail are carried through untouched.
type BasketMenu struct {
	ID             int    `json:"ID" bson:"ID"`
	Name           string `json:"NAME" bson:"NAME"`
	DisplayOrder   int    `json:"DISPLAYORDER" bson:"DISPLAYORDER"`
	SaleStartHour  string `json:"SALESTARTHOUR" bson:"SALESTARTHOUR"`
	SaleEndHour    string `json:"SALEENDHOUR" bson:"SALEENDHOUR"`
	PhotoURL       string `json:"PHOTOURL" bson:"PHOTOURL"`
	UseDepProducts bool   `json:"USE_DEPARTMENT_PRODUCTS" bson:"USE_DEPARTMENT_PRODUCTS"`
	DepIDs         string `json:"DEPIDS" bson:"DEPIDS"`
}

type BasketMenuDetail struct {
	ID             int  `json:"ID" bson:"ID"`
	MenuID         int  `json:"MENUID" bson:"MENUID"`
	ProductGroupID int  `json:"PRODUCTGROUPID" bson:"PRODUCTGROUPID"`
	DisplayOrder   *int `json:"DISPLAYORDER" bson:"DISPLAYORDER"`
	ProductID      int  `json:"PRODUCTID" bson:"PRODUCTID"`
}

type ItemExtra struct {
	ID          int     `json:"ID" bson:"ID"`
	Name        string  `json:"NAME" bson:"NAME"`
	Price       float64 `json:"PRICE" bson:"PRICE"`
	ProductID   int     `json:"PRODUCTID" bson:"PRODUCTID"`
	GroupName   *string `json:"GROUPNAME" bson:"GROUPNAME"`
	MultiSelect bool    `json:"MULTISELECT" bson:"MULTISELECT"`
}

type Table struct {
	ID         int     `json:"ID" bson:"ID"`
	UID        string  `json:"UID" bson:"UID"`
	TableNo    string  `json:"TABLENO" bson:"TABLENO"`
	BookingFee float64 `json:"BOOKINGFEE" bson:"BOOKINGFEE"`
	TableGroup string  `json:"TABLEGROUP" bson:"TABLEGROUP"`
	PaxCount   int     `json:"PAXCOUNT" bson:"PAXCOUNT"`
}

type Allergen struct {
	ID     int    `json:"ID"`
	Name   string `json:"NAME"`
	TrName string `json:"TR_NAME"`
}
