package service

import (
	"context"
	"errors"
	"sync/atomic"

	"restaurant-service/internal/entity"
)

type fakeSource struct {
	data  *entity.RestaurantData
	err   error
	calls atomic.Int32
}

func (f *fakeSource) FetchRestaurantData(context.Context) (*entity.RestaurantData, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

var errSourceDown = errors.New("source down")

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func testRestaurant() *entity.RestaurantData {
	return &entity.RestaurantData{
		HotelParam: entity.HotelParam{
			ID:                   3,
			Name:                 "Hünkar",
			Logo:                 "logo.svg",
			Phone:                "+90 212 000 00 00",
			Address:              strPtr("Nişantaşı"),
			UID:                  "hunkar",
			CurrencyID:           1,
			CurrencyCode:         "TRY",
			OrderButtonActive:    true,
			AllergensTable:       `[{"ID":1,"NAME":"Gluten","TR_NAME":"Gluten"},{"ID":2,"NAME":"Milk","TR_NAME":"Süt"}]`,
			Rules:                "No smoking",
			TableSelectionActive: true,
		},
		MenuGroups: []entity.MenuGroup{
			{ID: 20, Name: "İçecekler", DisplayOrder: 3},
			{ID: 10, Name: "Ana Yemekler", DisplayOrder: 1},
			{ID: 11, Name: "Izgara Çeşitleri", DisplayOrder: 2, ParentGroupID: intPtr(10)},
			{ID: 12, Name: "Sulu Yemekler", DisplayOrder: 1, ParentGroupID: intPtr(10)},
			{ID: 30, Name: "Tatlılar", DisplayOrder: 4, ParentGroupID: intPtr(99)},
			{ID: 40, Name: "Empty", DisplayOrder: 5, ParentGroupID: intPtr(0)},
		},
		MenuItems: []entity.MenuItem{
			{ID: 101, Name: "Adana Kebap", Price: 420, GroupID: 11, GroupName: "Izgara Çeşitleri", Allergens: strPtr("1"), DisplayOrder: 2, Gluten: true},
			{ID: 102, Name: "Kuru Fasulye", Price: 210.5, GroupID: 12, GroupName: "Sulu Yemekler", DisplayInfo: strPtr("With rice"), Vegetarian: true, DisplayOrder: 1},
			{ID: 201, Name: "Ayran", Price: 45, PhotoURL: "ayran.jpg", GroupID: 20, GroupName: "İçecekler", Allergens: strPtr("2, 7"), Vegetarian: true, DisplayOrder: 3},
			{ID: 202, Name: "Rakı", Price: 300, GroupID: 20, GroupName: "İçecekler", Alcohol: true, DisplayOrder: 4},
			{ID: 301, Name: "Künefe", Price: 180, GroupID: 30, GroupName: "Tatlılar", Allergens: strPtr("1,2"), Vegetarian: true, Gluten: true, DisplayOrder: 5},
		},
		Tables: []entity.Table{
			{ID: 1, UID: "t-b2", TableNo: "2", TableGroup: "Bahçe", PaxCount: 4, BookingFee: 50},
			{ID: 2, UID: "t-s1", TableNo: "1", TableGroup: "Salon", PaxCount: 2},
			{ID: 3, UID: "t-b1", TableNo: "1", TableGroup: "Bahçe", PaxCount: 6, BookingFee: 100},
			{ID: 4, UID: "t-t9", TableNo: "9", TableGroup: "Teras", PaxCount: 8},
		},
	}
}
