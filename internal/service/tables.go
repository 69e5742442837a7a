package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"restaurant-service/internal/entity"
)

// Tables returns every table ordered by group, then table number.
func (s *CatalogService) Tables(ctx context.Context) ([]entity.ProcessedTable, error) {
	data, err := s.data(ctx)
	if err != nil {
		return nil, err
	}

	tables := make([]entity.ProcessedTable, 0, len(data.Tables))
	for _, t := range data.Tables {
		tables = append(tables, entity.ProcessedTable{
			ID:          t.ID,
			UID:         t.UID,
			TableNo:     t.TableNo,
			MaxCapacity: t.PaxCount,
			BookingFee:  t.BookingFee,
			TableGroup:  t.TableGroup,
		})
	}
	sort.SliceStable(tables, func(i, j int) bool {
		if tables[i].TableGroup != tables[j].TableGroup {
			return tables[i].TableGroup < tables[j].TableGroup
		}
		return tables[i].TableNo < tables[j].TableNo
	})
	return tables, nil
}

func (s *CatalogService) findTable(ctx context.Context, what string, match func(entity.ProcessedTable) bool) (*entity.ProcessedTable, error) {
	tables, err := s.Tables(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tables {
		if match(tables[i]) {
			return &tables[i], nil
		}
	}
	return nil, fmt.Errorf("table %s: %w", what, ErrNotFound)
}

func (s *CatalogService) TableByID(ctx context.Context, id int) (*entity.ProcessedTable, error) {
	return s.findTable(ctx, fmt.Sprintf("id %d", id), func(t entity.ProcessedTable) bool { return t.ID == id })
}

func (s *CatalogService) TableByUID(ctx context.Context, uid string) (*entity.ProcessedTable, error) {
	return s.findTable(ctx, fmt.Sprintf("uid %s", uid), func(t entity.ProcessedTable) bool { return t.UID == uid })
}

func (s *CatalogService) TableByNumber(ctx context.Context, tableNo string) (*entity.ProcessedTable, error) {
	return s.findTable(ctx, tableNo, func(t entity.ProcessedTable) bool { return t.TableNo == tableNo })
}

func (s *CatalogService) filterTables(ctx context.Context, keep func(entity.ProcessedTable) bool) ([]entity.ProcessedTable, error) {
	tables, err := s.Tables(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []entity.ProcessedTable{}
	for _, t := range tables {
		if keep(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (s *CatalogService) TablesByGroup(ctx context.Context, group string) ([]entity.ProcessedTable, error) {
	return s.filterTables(ctx, func(t entity.ProcessedTable) bool { return strings.EqualFold(t.TableGroup, group) })
}

// TablesByCapacity keeps tables seating at least minCapacity and, when
// maxCapacity is positive, at most maxCapacity.
func (s *CatalogService) TablesByCapacity(ctx context.Context, minCapacity, maxCapacity int) ([]entity.ProcessedTable, error) {
	return s.filterTables(ctx, func(t entity.ProcessedTable) bool {
		if maxCapacity > 0 && t.MaxCapacity > maxCapacity {
			return false
		}
		return t.MaxCapacity >= minCapacity
	})
}

func (s *CatalogService) TablesWithBookingFee(ctx context.Context, withFee bool) ([]entity.ProcessedTable, error) {
	return s.filterTables(ctx, func(t entity.ProcessedTable) bool { return (t.BookingFee > 0) == withFee })
}

// SearchTables matches the table number or group case-insensitively.
func (s *CatalogService) SearchTables(ctx context.Context, term string) ([]entity.ProcessedTable, error) {
	term = strings.ToLower(term)
	return s.filterTables(ctx, func(t entity.ProcessedTable) bool {
		return strings.Contains(strings.ToLower(t.TableNo), term) ||
			strings.Contains(strings.ToLower(t.TableGroup), term)
	})
}

// TableGroups lists the distinct group names, sorted.
func (s *CatalogService) TableGroups(ctx context.Context) ([]string, error) {
	tables, err := s.Tables(ctx)
	if err != nil {
		return nil, err
	}
	groups := []string{}
	for _, t := range tables {
		if !slices.Contains(groups, t.TableGroup) {
			groups = append(groups, t.TableGroup)
		}
	}
	sort.Strings(groups)
	return groups, nil
}

func (s *CatalogService) TableStats(ctx context.Context) (entity.TableStats, error) {
	tables, err := s.Tables(ctx)
	if err != nil {
		return entity.TableStats{}, err
	}

	stats := entity.TableStats{Total: len(tables), GroupStats: map[string]entity.TableGroupStats{}}
	if len(tables) == 0 {
		return stats, nil
	}

	var feeSum float64
	capacities := make([]int, 0, len(tables))
	for _, t := range tables {
		stats.TotalCapacity += t.MaxCapacity
		capacities = append(capacities, t.MaxCapacity)
		if t.BookingFee > 0 {
			stats.TablesWithBookingFee++
			feeSum += t.BookingFee
		}
		group := stats.GroupStats[t.TableGroup]
		group.Count++
		group.TotalCapacity += t.MaxCapacity
		stats.GroupStats[t.TableGroup] = group
	}

	stats.Groups = len(stats.GroupStats)
	stats.AverageCapacity = roundCents(float64(stats.TotalCapacity) / float64(len(tables)))
	stats.CapacityRange = entity.CapacityRange{Min: slices.Min(capacities), Max: slices.Max(capacities)}
	if stats.TablesWithBookingFee > 0 {
		stats.AverageBookingFee = roundCents(feeSum / float64(stats.TablesWithBookingFee))
	}
	return stats, nil
}
