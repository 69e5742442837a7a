package migrations

import (
	"database/sql"
	"fmt"
	"time"
)

var catalogTables = []struct {
	name  string
	query string
}{
	{"restaurants", `
		CREATE TABLE IF NOT EXISTS restaurants (
			id INT PRIMARY KEY,
			dep_id INT NOT NULL DEFAULT 0,
			name VARCHAR(255) NOT NULL,
			logo VARCHAR(512) NOT NULL DEFAULT '',
			department_name VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(64) NOT NULL DEFAULT '',
			address VARCHAR(512) NULL,
			uid VARCHAR(64) NOT NULL UNIQUE,
			currency_id INT NOT NULL DEFAULT 0,
			currency_code VARCHAR(8) NOT NULL DEFAULT '',
			order_button_active BOOLEAN NOT NULL DEFAULT FALSE,
			ask_for_table_no VARCHAR(64) NULL,
			allergens_tbl TEXT NOT NULL,
			rules TEXT NOT NULL,
			table_selection_active BOOLEAN NOT NULL DEFAULT FALSE,
			hide_end_times BOOLEAN NOT NULL DEFAULT FALSE
		);
	`},
	{"menu_groups", `
		CREATE TABLE IF NOT EXISTS menu_groups (
			id INT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			display_order INT NOT NULL DEFAULT 0,
			product_type_id INT NULL,
			parent_group_id INT NULL,
			photo_url VARCHAR(512) NOT NULL DEFAULT ''
		);
	`},
	{"menu_items", `
		CREATE TABLE IF NOT EXISTS menu_items (
			id INT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			photo_url VARCHAR(512) NOT NULL DEFAULT '',
			price DOUBLE NOT NULL,
			currency_code VARCHAR(8) NOT NULL DEFAULT '',
			currency_symbol VARCHAR(8) NOT NULL DEFAULT '',
			group_id INT NOT NULL,
			group_name VARCHAR(255) NOT NULL DEFAULT '',
			display_info TEXT NULL,
			allergic BOOLEAN NOT NULL DEFAULT FALSE,
			vegetarian BOOLEAN NOT NULL DEFAULT FALSE,
			alcohol BOOLEAN NOT NULL DEFAULT FALSE,
			pork BOOLEAN NOT NULL DEFAULT FALSE,
			gluten BOOLEAN NOT NULL DEFAULT FALSE,
			product_type_id INT NOT NULL DEFAULT 0,
			allergens VARCHAR(255) NULL,
			display_order INT NOT NULL DEFAULT 0,
			INDEX idx_menu_items_group (group_id)
		);
	`},
	{"restaurant_tables", `
		CREATE TABLE IF NOT EXISTS restaurant_tables (
			id INT PRIMARY KEY,
			uid VARCHAR(64) NOT NULL UNIQUE,
			table_no VARCHAR(32) NOT NULL,
			booking_fee DOUBLE NOT NULL DEFAULT 0,
			table_group VARCHAR(255) NOT NULL DEFAULT '',
			pax_count INT NOT NULL DEFAULT 0
		);
	`},
}

// AutoMigrateCatalog creates the catalog tables if they do not exist,
// retrying each statement up to retries times.
func AutoMigrateCatalog(retries int, dbs ...*sql.DB) error {
	for _, db := range dbs {
		for _, table := range catalogTables {
			_, err := db.Exec(table.query)
			if err != nil {
				// Retry creating the table
				for i := 0; i < retries; i++ {
					time.Sleep(1 * time.Second)
					_, err = db.Exec(table.query)
					if err == nil {
						break
					}
				}
			}
			if err != nil {
				return fmt.Errorf("create table %s: %w", table.name, err)
			}
		}
	}
	return nil
}
