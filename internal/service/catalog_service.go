package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"restaurant-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var ErrNotFound = errors.New("not found")

const (
	// DefaultFoodImage is shown for menu items without a photo.
	DefaultFoodImage     = "https://images.unsplash.com/photo-1546833999-b9f581a1996d?w=500&h=400&fit=crop"
	allergenCacheTimeout = time.Hour
)

// RestaurantSource yields the raw restaurant document.
type RestaurantSource interface {
	FetchRestaurantData(ctx context.Context) (*entity.RestaurantData, error)
}

// CatalogService turns the raw restaurant document into the menu, table and
// restaurant views the storefront renders.
type CatalogService struct {
	source RestaurantSource
	now    func() time.Time

	mu             sync.Mutex
	allergenNames  map[int]string
	allergenExpiry time.Time
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(source RestaurantSource) *CatalogService {
	return &CatalogService{source: source, now: time.Now}
}

func (s *CatalogService) data(ctx context.Context) (*entity.RestaurantData, error) {
	data, err := s.source.FetchRestaurantData(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching restaurant data")
		return nil, fmt.Errorf("fetch restaurant data: %w", err)
	}
	return data, nil
}

// Restaurant returns the processed restaurant profile. An unreadable
// allergen table yields an empty allergen list.
func (s *CatalogService) Restaurant(ctx context.Context) (*entity.ProcessedRestaurant, error) {
	data, err := s.data(ctx)
	if err != nil {
		return nil, err
	}
	hotel := data.HotelParam

	allergens, err := parseAllergens(hotel.AllergensTable)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to parse allergens data")
		allergens = []entity.Allergen{}
	}

	return &entity.ProcessedRestaurant{
		ID:      hotel.ID,
		Name:    hotel.Name,
		Logo:    hotel.Logo,
		Phone:   hotel.Phone,
		Address: deref(hotel.Address),
		Currency: entity.Currency{
			ID:   hotel.CurrencyID,
			Code: hotel.CurrencyCode,
		},
		Allergens: allergens,
		Rules:     hotel.Rules,
		Settings: entity.RestaurantSettings{
			OrderButtonActive:    hotel.OrderButtonActive,
			AskForTableNo:        deref(hotel.AskForTableNo),
			TableSelectionActive: hotel.TableSelectionActive,
			HideEndTimes:         hotel.HideEndTimes,
		},
	}, nil
}

func (s *CatalogService) Allergens(ctx context.Context) ([]entity.Allergen, error) {
	data, err := s.data(ctx)
	if err != nil {
		return nil, err
	}
	allergens, err := parseAllergens(data.HotelParam.AllergensTable)
	if err != nil {
		return nil, fmt.Errorf("parse allergens: %w", err)
	}
	return allergens, nil
}

// AllergenNames maps allergen ids to display names. Unknown ids become
// "Allergen <id>"; entries that are not numbers are skipped.
func (s *CatalogService) AllergenNames(ctx context.Context, ids []string) []string {
	names := []string{}
	if len(ids) == 0 {
		return names
	}

	mapping := s.allergenMapping(ctx)
	for _, raw := range ids {
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		if name, ok := mapping[id]; ok {
			names = append(names, name)
		} else {
			names = append(names, fmt.Sprintf("Allergen %d", id))
		}
	}
	return names
}

// allergenMapping is cached for an hour, empty tables included. A failed
// load is not cached.
func (s *CatalogService) allergenMapping(ctx context.Context) map[int]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.allergenNames != nil && now.Before(s.allergenExpiry) {
		return s.allergenNames
	}

	allergens, err := s.Allergens(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to fetch allergens, using empty mapping")
		return map[int]string{}
	}

	mapping := make(map[int]string, len(allergens))
	for _, a := range allergens {
		if a.ID != 0 && a.Name != "" {
			mapping[a.ID] = a.Name
		}
	}
	s.allergenNames = mapping
	s.allergenExpiry = now.Add(allergenCacheTimeout)
	return mapping
}

// ClearAllergenCache forces the next lookup to reload the allergen table.
func (s *CatalogService) ClearAllergenCache() {
	s.mu.Lock()
	s.allergenNames = nil
	s.allergenExpiry = time.Time{}
	s.mu.Unlock()
}

// Food returns the cart snapshot of a menu item.
func (s *CatalogService) Food(ctx context.Context, itemID int) (entity.Food, error) {
	item, err := s.MenuItem(ctx, itemID)
	if err != nil {
		return entity.Food{}, err
	}
	return s.toFood(ctx, *item), nil
}

func (s *CatalogService) toFood(ctx context.Context, item entity.ProcessedMenuItem) entity.Food {
	image := item.PhotoURL
	if image == "" {
		image = DefaultFoodImage
	}
	return entity.Food{
		ID:          strconv.Itoa(item.ID),
		Name:        item.Name,
		Price:       item.Price,
		Image:       image,
		Description: item.Description,
		Allergens:   s.AllergenNames(ctx, item.Allergens),
		Category:    whitespace.ReplaceAllString(strings.ToLower(item.GroupName), "-"),
	}
}

// Categories groups the menu by root group slug. Root groups with children
// get one subcategory per child; leaf roots get a single subcategory of
// their own items. Categories without any subcategory are left out.
func (s *CatalogService) Categories(ctx context.Context) (map[string]entity.CategoryData, error) {
	groups, err := s.MenuGroups(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.MenuItems(ctx)
	if err != nil {
		return nil, err
	}

	byGroup := make(map[int][]entity.ProcessedMenuItem)
	for _, item := range items {
		byGroup[item.GroupID] = append(byGroup[item.GroupID], item)
	}
	foods := func(groupID int) []entity.Food {
		out := make([]entity.Food, 0, len(byGroup[groupID]))
		for _, item := range byGroup[groupID] {
			out = append(out, s.toFood(ctx, item))
		}
		return out
	}

	categories := make(map[string]entity.CategoryData)
	for _, root := range groups {
		subcategories := make(map[string]entity.Subcategory)
		if len(root.SubGroups) > 0 {
			for _, sub := range root.SubGroups {
				id := strconv.Itoa(sub.ID)
				subcategories[id] = entity.Subcategory{ID: id, Name: sub.Name, Items: foods(sub.ID)}
			}
		} else if len(byGroup[root.ID]) > 0 {
			id := strconv.Itoa(root.ID)
			subcategories[id] = entity.Subcategory{ID: id, Name: root.Name, Items: foods(root.ID)}
		}

		if len(subcategories) > 0 {
			categories[Slug(root.Name)] = entity.CategoryData{Name: root.Name, Subcategories: subcategories}
		}
	}
	return categories, nil
}

func (s *CatalogService) Category(ctx context.Context, slug string) (*entity.CategoryData, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	category, ok := categories[slug]
	if !ok {
		return nil, fmt.Errorf("category %q: %w", slug, ErrNotFound)
	}
	return &category, nil
}

var (
	whitespace    = regexp.MustCompile(`\s+`)
	turkishFolder = strings.NewReplacer("i\u0307", "i", "ğ", "g", "ü", "u", "ş", "s", "ı", "i", "ö", "o", "ç", "c")
)

// Slug lower-cases name, folds Turkish letters to ASCII and joins words
// with "-".
func Slug(name string) string {
	name = turkishFolder.Replace(strings.ToLower(name))
	return whitespace.ReplaceAllString(name, "-")
}

func parseAllergens(table string) ([]entity.Allergen, error) {
	allergens := []entity.Allergen{}
	if table == "" {
		return allergens, nil
	}
	if err := json.Unmarshal([]byte(table), &allergens); err != nil {
		return nil, err
	}
	return allergens, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
