package kingdom

import "sort"

// Inventory maps a kind (unit, structure, missile, project) to a count.
// A missing kind reads as zero.
type Inventory map[string]int

// Get returns the count for kind, zero when absent
func (i Inventory) Get(kind string) int {
	if i == nil {
		return 0
	}
	return i[kind]
}

// Sum adds every count in the inventory
func (i Inventory) Sum() int {
	total := 0
	for _, v := range i {
		total += v
	}
	return total
}

// SumOf adds the counts of the given kinds only
func (i Inventory) SumOf(kinds []string) int {
	total := 0
	for _, k := range kinds {
		total += i.Get(k)
	}
	return total
}

// Clone returns an independent copy; cloning nil yields an empty inventory
func (i Inventory) Clone() Inventory {
	out := make(Inventory, len(i))
	for k, v := range i {
		out[k] = v
	}
	return out
}

// Filter keeps only the given kinds, adding zero entries for missing ones
func (i Inventory) Filter(kinds []string) Inventory {
	out := make(Inventory, len(kinds))
	for _, k := range kinds {
		out[k] = i.Get(k)
	}
	return out
}

// Plus returns the kind-wise sum of i and other
func (i Inventory) Plus(other Inventory) Inventory {
	out := i.Clone()
	for k, v := range other {
		out[k] += v
	}
	return out
}

// Kinds returns the inventory's keys in sorted order
func (i Inventory) Kinds() []string {
	kinds := make([]string, 0, len(i))
	for k := range i {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
