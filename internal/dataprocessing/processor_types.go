package dataprocessing

// Bounds is an inclusive clamp range
type Bounds struct {
	Min float64
	Max float64
}

// Clamp returns v limited to [Min, Max] and whether it changed
func (b Bounds) Clamp(v float64) (float64, bool) {
	switch {
	case v < b.Min:
		return b.Min, true
	case v > b.Max:
		return b.Max, true
	}
	return v, false
}

// ProcessingOptions configures the cleaner
type ProcessingOptions struct {
	// EnableForwardFill fills missing cells from the row above
	EnableForwardFill bool

	// Units bounds Units_Sold
	Units Bounds

	// Price bounds Unit_Price
	Price Bounds
}

// DefaultOptions returns default processing options
func DefaultOptions() ProcessingOptions {
	return ProcessingOptions{
		EnableForwardFill: true,
		Units:             Bounds{Min: 1, Max: 20},
		Price:             Bounds{Min: 10, Max: 500},
	}
}

// MergeStatistics describes a join
type MergeStatistics struct {
	SalesRows          int
	JoinedRows         int
	UnmatchedProducts  int
	UnmatchedCustomers int
}

// CleaningStatistics describes a cleaner run
type CleaningStatistics struct {
	Rows          int
	FilledCells   int
	ClippedUnits  int
	ClippedPrices int
	MissingTotals int
}
