package entity

import "strconv"

type Restaurant struct {
	Name        string  `json:"name"`
	Location    string  `json:"location,omitempty"`
	Address     string  `json:"address,omitempty"`
	Logo        *string `json:"logo,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Description string  `json:"description,omitempty"`
}

type Table struct {
	ID     string `json:"id"`
	Token  string `json:"token"`
	Number int    `json:"number"`
}

type Customization struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	FontFamily     string `json:"font_family,omitempty"`
	Logo           string `json:"logo,omitempty"`
	CoverImage     string `json:"cover_image,omitempty"`
}

// MenuItem is immutable for the lifetime of a menu snapshot. Prices arrive
// as decimal strings from the order-management API.
type MenuItem struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         string  `json:"price"`
	DiscountPrice *string `json:"discount_price,omitempty"`
	Image         *string `json:"image,omitempty"`
	IsAvailable   *bool   `json:"is_available,omitempty"`
	IsPopular     bool    `json:"is_popular,omitempty"`
	PrepTime      string  `json:"prep_time,omitempty"`
}

// Category owns its items; the flat view is derived, never stored.
type Category struct {
	ID    int        `json:"id"`
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// MenuData is the snapshot fetched once per page load.
type MenuData struct {
	Restaurant    Restaurant    `json:"restaurant"`
	Table         Table         `json:"table"`
	Customization Customization `json:"customization"`
	Categories    []Category    `json:"categories"`
}

// FlatItem is an item with its category back-reference, used for the
// flattened presentation view.
type FlatItem struct {
	MenuItem
	CategoryID   int    `json:"category_id"`
	CategoryName string `json:"category_name"`
}

// CategoryGroup is one category in the grouped presentation view.
type CategoryGroup struct {
	ID    int        `json:"id"`
	Name  string     `json:"name"`
	Items []FlatItem `json:"items"`
}

// UnitPrice is the effective price of an item: the discount price when set,
// otherwise the list price. Unparsable strings count as zero.
func (m *MenuItem) UnitPrice() float64 {
	raw := m.Price
	if m.DiscountPrice != nil && *m.DiscountPrice != "" {
		raw = *m.DiscountPrice
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// Available treats items without the attribute as available.
func (m *MenuItem) Available() bool {
	return m.IsAvailable == nil || *m.IsAvailable
}

// Items flattens the catalog across categories.
func (d *MenuData) Items() []FlatItem {
	var out []FlatItem
	for _, cat := range d.Categories {
		for _, it := range cat.Items {
			out = append(out, FlatItem{MenuItem: it, CategoryID: cat.ID, CategoryName: cat.Name})
		}
	}
	return out
}

// FindItem looks an item up by id across all categories.
func (d *MenuData) FindItem(id int) (*MenuItem, bool) {
	for ci := range d.Categories {
		for ii := range d.Categories[ci].Items {
			if d.Categories[ci].Items[ii].ID == id {
				return &d.Categories[ci].Items[ii], true
			}
		}
	}
	return nil, false
}

// HasAvailabilityData reports whether any item in the snapshot carries the
// availability attribute. The availability filter is a no-op otherwise.
func (d *MenuData) HasAvailabilityData() bool {
	for _, cat := range d.Categories {
		for _, it := range cat.Items {
			if it.IsAvailable != nil {
				return true
			}
		}
	}
	return false
}

// MatchesCategory reports whether the selector (a category id or name)
// refers to this category.
func (c *Category) MatchesCategory(selector string) bool {
	return selector == c.Name || selector == strconv.Itoa(c.ID)
}
