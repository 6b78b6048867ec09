package entity

// Filter sentinels and bucket values. FilterAll means "no filter" for the
// field it is assigned to.
const (
	FilterAll = "all"

	PriceUnder500   = "under_500"
	Price500To1000  = "500_1000"
	Price1000To2000 = "1000_2000"
	PriceOver2000   = "over_2000"

	AvailabilityAvailable   = "available"
	AvailabilityUnavailable = "unavailable"
)

// FilterState is transient UI state, not persisted anywhere.
type FilterState struct {
	Category           string `json:"category"`
	Query              string `json:"query"`
	PriceBucket        string `json:"price_bucket"`
	Availability       string `json:"availability"`
	CategoryPickerOpen bool   `json:"category_picker_open"`
}

// NewFilterState returns a state with every field at its sentinel.
func NewFilterState() FilterState {
	return FilterState{
		Category:     FilterAll,
		PriceBucket:  FilterAll,
		Availability: FilterAll,
	}
}

// ClearAll resets every field to its sentinel and closes the category
// picker. Callers hold the session lock so the update is atomic.
func (f *FilterState) ClearAll() {
	*f = NewFilterState()
}
