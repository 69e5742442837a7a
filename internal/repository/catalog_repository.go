package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restaurant-service/internal/entity"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

// CatalogRepository assembles the restaurant document from the MySQL catalog
// tables created by migrations.AutoMigrateCatalog.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db}
}

func (r *CatalogRepository) FetchRestaurantData(ctx context.Context) (*entity.RestaurantData, error) {
	hotel, err := r.getHotelParam(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := r.getMenuGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("menu groups: %w", err)
	}

	items, err := r.getMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("menu items: %w", err)
	}

	tables, err := r.getTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("tables: %w", err)
	}

	return &entity.RestaurantData{
		HotelParam: *hotel,
		MenuGroups: groups,
		MenuItems:  items,
		Tables:     tables,
	}, nil
}

func (r *CatalogRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *CatalogRepository) getHotelParam(ctx context.Context) (*entity.HotelParam, error) {
	query := `SELECT id, dep_id, name, logo, department_name, phone, address, uid, currency_id, currency_code,
		order_button_active, ask_for_table_no, allergens_tbl, rules, table_selection_active, hide_end_times
		FROM restaurants ORDER BY id LIMIT 1`

	var (
		hotel         entity.HotelParam
		address       sql.NullString
		askForTableNo sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query).Scan(&hotel.ID, &hotel.DepID, &hotel.Name, &hotel.Logo, &hotel.DepartmentName,
		&hotel.Phone, &address, &hotel.UID, &hotel.CurrencyID, &hotel.CurrencyCode, &hotel.OrderButtonActive,
		&askForTableNo, &hotel.AllergensTable, &hotel.Rules, &hotel.TableSelectionActive, &hotel.HideEndTimes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	hotel.Address = nullString(address)
	hotel.AskForTableNo = nullString(askForTableNo)
	return &hotel, nil
}

func (r *CatalogRepository) getMenuGroups(ctx context.Context) ([]entity.MenuGroup, error) {
	query := `SELECT id, name, display_order, product_type_id, parent_group_id, photo_url FROM menu_groups`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []entity.MenuGroup
	for rows.Next() {
		var (
			group         entity.MenuGroup
			productTypeID sql.NullInt64
			parentGroupID sql.NullInt64
		)
		err := rows.Scan(&group.ID, &group.Name, &group.DisplayOrder, &productTypeID, &parentGroupID, &group.PhotoURL)
		if err != nil {
			return nil, err
		}
		group.ProductTypeID = nullInt(productTypeID)
		group.ParentGroupID = nullInt(parentGroupID)
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

func (r *CatalogRepository) getMenuItems(ctx context.Context) ([]entity.MenuItem, error) {
	query := `SELECT id, name, photo_url, price, currency_code, currency_symbol, group_id, group_name, display_info,
		allergic, vegetarian, alcohol, pork, gluten, product_type_id, allergens, display_order FROM menu_items`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.MenuItem
	for rows.Next() {
		var (
			item        entity.MenuItem
			displayInfo sql.NullString
			allergens   sql.NullString
		)
		err := rows.Scan(&item.ID, &item.Name, &item.PhotoURL, &item.Price, &item.CurrencyCode, &item.CurrencySymbol,
			&item.GroupID, &item.GroupName, &displayInfo, &item.Allergic, &item.Vegetarian, &item.Alcohol, &item.Pork,
			&item.Gluten, &item.ProductTypeID, &allergens, &item.DisplayOrder)
		if err != nil {
			return nil, err
		}
		item.DisplayInfo = nullString(displayInfo)
		item.Allergens = nullString(allergens)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CatalogRepository) getTables(ctx context.Context) ([]entity.Table, error) {
	query := `SELECT id, uid, table_no, booking_fee, table_group, pax_count FROM restaurant_tables`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []entity.Table
	for rows.Next() {
		var table entity.Table
		err := rows.Scan(&table.ID, &table.UID, &table.TableNo, &table.BookingFee, &table.TableGroup, &table.PaxCount)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
