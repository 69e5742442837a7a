package service

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"restaurant-service/internal/entity"
)

// MenuGroups returns the group hierarchy ordered by display order. A group
// whose parent does not exist is treated as a root.
func (s *CatalogService) MenuGroups(ctx context.Context) ([]*entity.ProcessedMenuGroup, error) {
	data, err := s.data(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]*entity.ProcessedMenuGroup, 0, len(data.MenuGroups))
	byID := make(map[int]*entity.ProcessedMenuGroup, len(data.MenuGroups))
	for _, g := range data.MenuGroups {
		group := &entity.ProcessedMenuGroup{
			ID:           g.ID,
			Name:         g.Name,
			DisplayOrder: g.DisplayOrder,
			PhotoURL:     g.PhotoURL,
			SubGroups:    []*entity.ProcessedMenuGroup{},
		}
		if g.ParentGroupID != nil && *g.ParentGroupID != 0 {
			parent := *g.ParentGroupID
			group.ParentGroupID = &parent
		}
		groups = append(groups, group)
		byID[group.ID] = group
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].DisplayOrder < groups[j].DisplayOrder })

	roots := []*entity.ProcessedMenuGroup{}
	for _, group := range groups {
		if group.ParentGroupID == nil {
			roots = append(roots, group)
			continue
		}
		parent, ok := byID[*group.ParentGroupID]
		if !ok {
			roots = append(roots, group)
			continue
		}
		parent.SubGroups = append(parent.SubGroups, group)
	}
	return roots, nil
}

// MenuGroup finds a group anywhere in the hierarchy.
func (s *CatalogService) MenuGroup(ctx context.Context, id int) (*entity.ProcessedMenuGroup, error) {
	groups, err := s.MenuGroups(ctx)
	if err != nil {
		return nil, err
	}
	if group := findGroup(groups, id); group != nil {
		return group, nil
	}
	return nil, fmt.Errorf("menu group %d: %w", id, ErrNotFound)
}

func (s *CatalogService) SubGroups(ctx context.Context, parentID int) ([]*entity.ProcessedMenuGroup, error) {
	group, err := s.MenuGroup(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return group.SubGroups, nil
}

// SearchMenuGroups matches group names case-insensitively, walking the
// hierarchy depth first.
func (s *CatalogService) SearchMenuGroups(ctx context.Context, term string) ([]*entity.ProcessedMenuGroup, error) {
	groups, err := s.MenuGroups(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(term)
	results := []*entity.ProcessedMenuGroup{}
	var walk func([]*entity.ProcessedMenuGroup)
	walk = func(groups []*entity.ProcessedMenuGroup) {
		for _, group := range groups {
			if strings.Contains(strings.ToLower(group.Name), term) {
				results = append(results, group)
			}
			walk(group.SubGroups)
		}
	}
	walk(groups)
	return results, nil
}

func (s *CatalogService) MenuGroupCounts(ctx context.Context) (entity.MenuGroupCounts, error) {
	data, err := s.data(ctx)
	if err != nil {
		return entity.MenuGroupCounts{}, err
	}

	counts := entity.MenuGroupCounts{Total: len(data.MenuGroups)}
	for _, g := range data.MenuGroups {
		if g.ParentGroupID == nil || *g.ParentGroupID == 0 {
			counts.RootGroups++
		}
	}
	counts.SubGroups = counts.Total - counts.RootGroups
	return counts, nil
}

func findGroup(groups []*entity.ProcessedMenuGroup, id int) *entity.ProcessedMenuGroup {
	for _, group := range groups {
		if group.ID == id {
			return group
		}
		if found := findGroup(group.SubGroups, id); found != nil {
			return found
		}
	}
	return nil
}

// MenuItems returns every item ordered by display order with its allergen
// ids split out of the comma separated column.
func (s *CatalogService) MenuItems(ctx context.Context) ([]entity.ProcessedMenuItem, error) {
	data, err := s.data(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]entity.ProcessedMenuItem, 0, len(data.MenuItems))
	for _, item := range data.MenuItems {
		items = append(items, entity.ProcessedMenuItem{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price,
			PhotoURL:    item.PhotoURL,
			Description: deref(item.DisplayInfo),
			GroupID:     item.GroupID,
			GroupName:   item.GroupName,
			Allergens:   splitAllergens(deref(item.Allergens)),
			Dietary: entity.Dietary{
				Vegetarian: item.Vegetarian,
				Alcohol:    item.Alcohol,
				Pork:       item.Pork,
				Gluten:     item.Gluten,
			},
			DisplayOrder: item.DisplayOrder,
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].DisplayOrder < items[j].DisplayOrder })
	return items, nil
}

func (s *CatalogService) filterItems(ctx context.Context, keep func(entity.ProcessedMenuItem) bool) ([]entity.ProcessedMenuItem, error) {
	items, err := s.MenuItems(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []entity.ProcessedMenuItem{}
	for _, item := range items {
		if keep(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (s *CatalogService) MenuItemsByGroup(ctx context.Context, groupID int) ([]entity.ProcessedMenuItem, error) {
	return s.filterItems(ctx, func(item entity.ProcessedMenuItem) bool { return item.GroupID == groupID })
}

func (s *CatalogService) MenuItem(ctx context.Context, id int) (*entity.ProcessedMenuItem, error) {
	items, err := s.MenuItems(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
}

// SearchMenuItems matches the name or description case-insensitively.
func (s *CatalogService) SearchMenuItems(ctx context.Context, term string) ([]entity.ProcessedMenuItem, error) {
	term = strings.ToLower(term)
	return s.filterItems(ctx, func(item entity.ProcessedMenuItem) bool {
		return strings.Contains(strings.ToLower(item.Name), term) ||
			(item.Description != "" && strings.Contains(strings.ToLower(item.Description), term))
	})
}

func (s *CatalogService) VegetarianItems(ctx context.Context) ([]entity.ProcessedMenuItem, error) {
	return s.filterItems(ctx, func(item entity.ProcessedMenuItem) bool { return item.Dietary.Vegetarian })
}

// ItemsWithoutAllergens drops items carrying any allergen that contains one
// of exclude, compared case-insensitively.
func (s *CatalogService) ItemsWithoutAllergens(ctx context.Context, exclude []string) ([]entity.ProcessedMenuItem, error) {
	return s.filterItems(ctx, func(item entity.ProcessedMenuItem) bool {
		for _, ex := range exclude {
			ex = strings.ToLower(ex)
			for _, allergen := range item.Allergens {
				if strings.Contains(strings.ToLower(allergen), ex) {
					return false
				}
			}
		}
		return true
	})
}

func (s *CatalogService) ItemsByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]entity.ProcessedMenuItem, error) {
	return s.filterItems(ctx, func(item entity.ProcessedMenuItem) bool {
		return item.Price >= minPrice && item.Price <= maxPrice
	})
}

func (s *CatalogService) ItemsSortedByPrice(ctx context.Context, ascending bool) ([]entity.ProcessedMenuItem, error) {
	items, err := s.MenuItems(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if ascending {
			return items[i].Price < items[j].Price
		}
		return items[i].Price > items[j].Price
	})
	return items, nil
}

func (s *CatalogService) MenuItemStats(ctx context.Context) (entity.MenuItemStats, error) {
	items, err := s.MenuItems(ctx)
	if err != nil {
		return entity.MenuItemStats{}, err
	}

	stats := entity.MenuItemStats{Total: len(items)}
	if len(items) == 0 {
		return stats, nil
	}

	var sum float64
	prices := make([]float64, 0, len(items))
	for _, item := range items {
		if item.Dietary.Vegetarian {
			stats.Vegetarian++
		}
		if item.Dietary.Alcohol {
			stats.WithAlcohol++
		}
		if item.Dietary.Pork {
			stats.WithPork++
		}
		if !item.Dietary.Gluten {
			stats.GlutenFree++
		}
		sum += item.Price
		prices = append(prices, item.Price)
	}
	stats.AveragePrice = roundCents(sum / float64(len(items)))
	stats.PriceRange = entity.PriceRange{Min: slices.Min(prices), Max: slices.Max(prices)}
	return stats, nil
}

// GroupedMenuItems buckets items by group name, each bucket in display order.
func (s *CatalogService) GroupedMenuItems(ctx context.Context) (map[string][]entity.ProcessedMenuItem, error) {
	items, err := s.MenuItems(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]entity.ProcessedMenuItem)
	for _, item := range items {
		grouped[item.GroupName] = append(grouped[item.GroupName], item)
	}
	return grouped, nil
}

func splitAllergens(raw string) []string {
	allergens := []string{}
	for _, a := range strings.Split(raw, ",") {
		if a = strings.TrimSpace(a); a != "" {
			allergens = append(allergens, a)
		}
	}
	return allergens
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
