package model

import "github.com/google/uuid"

// StockPreset represents a reusable stock rod definition.
type StockPreset struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Length   float64 `json:"length"`
	Material string  `json:"material"`
}

// NewStockPreset creates a new StockPreset with a generated ID.
func NewStockPreset(name string, length float64, material string) StockPreset {
	return StockPreset{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Length:   length,
		Material: material,
	}
}

// ToRodSpec converts a StockPreset into a stock RodSpec with the given quantity.
func (sp StockPreset) ToRodSpec(qty int) RodSpec {
	return NewRodSpec(sp.Name, sp.Length, qty)
}

// Inventory holds the user's saved stock presets and the leftover rods kept
// from earlier jobs.
type Inventory struct {
	Stocks    []StockPreset `json:"stocks"`
	Leftovers []RodSpec     `json:"leftovers"`
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	return Inventory{
		Stocks: []StockPreset{
			NewStockPreset("Aluminium profile 600", 600, "Aluminium"),
			NewStockPreset("Aluminium profile 650", 650, "Aluminium"),
			NewStockPreset("Aluminium tube 300", 300, "Aluminium"),
			NewStockPreset("Steel bar 600", 600, "Steel"),
			NewStockPreset("Timber batten 240", 240, "Timber"),
		},
		Leftovers: []RodSpec{},
	}
}

// FindStockByID returns a pointer to the stock preset with the given ID, or nil.
func (inv *Inventory) FindStockByID(id string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].ID == id {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// FindStockByName returns a pointer to the first stock preset with the given name, or nil.
func (inv *Inventory) FindStockByName(name string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].Name == name {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// StockNames returns a list of stock preset names.
func (inv *Inventory) StockNames() []string {
	names := make([]string, len(inv.Stocks))
	for i, s := range inv.Stocks {
		names[i] = s.Name
	}
	return names
}

// AddLeftovers merges leftover rods into the inventory, summing quantities
// for equal lengths.
func (inv *Inventory) AddLeftovers(specs []RodSpec) {
	for _, s := range specs {
		if !s.Valid() {
			continue
		}
		merged := false
		for i := range inv.Leftovers {
			if SameLength(inv.Leftovers[i].Length, s.Length, DefaultTolerance) {
				inv.Leftovers[i].Quantity += s.Quantity
				merged = true
				break
			}
		}
		if !merged {
			inv.Leftovers = append(inv.Leftovers, s)
		}
	}
}

// ConsumeLeftovers removes the leftover rods used by a plan from the inventory.
// Usage entries that do not match a stored leftover are ignored.
func (inv *Inventory) ConsumeLeftovers(used []RodSpec) {
	for _, u := range used {
		remaining := u.Quantity
		for i := range inv.Leftovers {
			if remaining == 0 {
				break
			}
			if !SameLength(inv.Leftovers[i].Length, u.Length, DefaultTolerance) {
				continue
			}
			take := remaining
			if take > inv.Leftovers[i].Quantity {
				take = inv.Leftovers[i].Quantity
			}
			inv.Leftovers[i].Quantity -= take
			remaining -= take
		}
	}

	kept := inv.Leftovers[:0]
	for _, l := range inv.Leftovers {
		if l.Quantity > 0 {
			kept = append(kept, l)
		}
	}
	inv.Leftovers = kept
}
