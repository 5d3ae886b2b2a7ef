// Package production derives totals, capacities and affordability for the five
// order categories and validates new orders against them.
package production

import (
	"fmt"
	"time"

	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
)

// CategoryName identifies an orderable action
type CategoryName string

const (
	CategoryRecruits    CategoryName = "recruits"
	CategorySpecialists CategoryName = "specialists"
	CategoryStructures  CategoryName = "structures"
	CategoryMissiles    CategoryName = "missiles"
	CategoryEngineers   CategoryName = "engineers"
	CategorySettlement  CategoryName = "settle"
)

// Category describes how one kind of order is queued and how long it takes
type Category struct {
	Name           CategoryName
	Queue          kingdom.Queue
	TimeMultiplier int
	// Message is the single user-facing text for any rejection in this category
	Message string
}

// Duration is the build time: multiplier times the catalog epoch
func (c Category) Duration(epoch time.Duration) time.Duration {
	return time.Duration(c.TimeMultiplier) * epoch
}

// CompletionAt returns when an order placed at now resolves
func (c Category) CompletionAt(now time.Time, epoch time.Duration) time.Time {
	return now.Add(c.Duration(epoch))
}

// CategoryNames lists every orderable category in a stable order
func CategoryNames() []CategoryName {
	return []CategoryName{
		CategoryRecruits,
		CategorySpecialists,
		CategoryStructures,
		CategoryMissiles,
		CategoryEngineers,
		CategorySettlement,
	}
}

// ParseCategoryName validates a category name from the transport layer
func ParseCategoryName(raw string) (CategoryName, error) {
	for _, n := range CategoryNames() {
		if string(n) == raw {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown order category %q", raw)
}

// Describe returns the category descriptor built from the catalog constants
func Describe(cat *catalog.Catalog, name CategoryName) (Category, error) {
	k := cat.Constants
	switch name {
	case CategoryRecruits:
		return Category{name, kingdom.QueueMobilization, k.Recruits.TimeMultiplier, "Please enter valid recruits value"}, nil
	case CategorySpecialists:
		return Category{name, kingdom.QueueMobilization, k.Specialists.TimeMultiplier, "Please enter valid training values"}, nil
	case CategoryStructures:
		return Category{name, kingdom.QueueStructures, k.Structures.TimeMultiplier, "Please enter valid structures values"}, nil
	case CategoryMissiles:
		return Category{name, kingdom.QueueMissiles, k.Missiles.TimeMultiplier, "Please enter valid missiles values"}, nil
	case CategoryEngineers:
		return Category{name, kingdom.QueueEngineers, k.Engineers.TimeMultiplier, "Please enter valid engineers value"}, nil
	case CategorySettlement:
		return Category{name, kingdom.QueueSettlement, k.Settle.TimeMultiplier, "Please enter valid settle value"}, nil
	}
	return Category{}, fmt.Errorf("unknown order category %q", name)
}

// MustDescribe is Describe for names known at compile time
func MustDescribe(cat *catalog.Catalog, name CategoryName) Category {
	c, err := Describe(cat, name)
	if err != nil {
		panic(err)
	}
	return c
}
