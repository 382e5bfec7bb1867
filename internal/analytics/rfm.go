package analytics

import (
	"math"
	"sort"
	"time"

	"retailcli/pkg/contracts/domain"
)

type customerAccumulator struct {
	lastPurchase time.Time
	hasDate      bool
	frequency    int
	monetary     float64
}

// ComputeRFM profiles every customer. Recency is measured against the
// latest Date across all rows, not per customer. Records are ordered by
// Customer_ID, numerically when the IDs are numbers.
func ComputeRFM(rows []domain.JoinedRow) []domain.RFMRecord {
	var (
		globalMax time.Time
		hasMax    bool
	)
	order := make([]string, 0)
	customers := make(map[string]*customerAccumulator)

	for i := range rows {
		r := &rows[i]
		if r.Date.Valid && (!hasMax || r.Date.V.After(globalMax)) {
			globalMax = r.Date.V
			hasMax = true
		}

		id, ok := ByCustomer(r)
		if !ok {
			continue
		}
		acc, seen := customers[id]
		if !seen {
			acc = &customerAccumulator{}
			customers[id] = acc
			order = append(order, id)
		}

		if r.Date.Valid && (!acc.hasDate || r.Date.V.After(acc.lastPurchase)) {
			acc.lastPurchase = r.Date.V
			acc.hasDate = true
		}
		if r.SaleID.Valid {
			acc.frequency++
		}
		if r.TotalSales.Valid {
			acc.monetary += r.TotalSales.V
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return domain.CompareKeys(order[i], order[j]) < 0
	})

	records := make([]domain.RFMRecord, 0, len(order))
	for _, id := range order {
		acc := customers[id]
		rec := domain.RFMRecord{
			CustomerID: id,
			Recency:    math.NaN(),
			Frequency:  acc.frequency,
			Monetary:   acc.monetary,
			CLV:        math.NaN(),
		}
		if acc.hasDate {
			rec.Recency = math.Floor(globalMax.Sub(acc.lastPurchase).Hours() / 24)
		}
		if acc.frequency > 0 {
			f := float64(acc.frequency)
			rec.CLV = f * (acc.monetary / f)
		}
		records = append(records, rec)
	}
	return records
}
