package domain

// RFMRecord is the recency/frequency/monetary profile of one customer.
//
// Recency is the number of whole days between the customer's last purchase
// and the latest purchase in the whole dataset; it is NaN when none of the
// customer's rows carries a date. Frequency counts the customer's rows that
// carry a Sale_ID. Monetary sums their Total_Sales. CLV is computed as
// Frequency × (Monetary / Frequency), which equals Monetary whenever
// Frequency is positive and is NaN otherwise.
type RFMRecord struct {
	CustomerID string  `json:"customer_id" csv:"Customer_ID"`
	Recency    float64 `json:"recency" csv:"Recency"`
	Frequency  int     `json:"frequency" csv:"Frequency"`
	Monetary   float64 `json:"monetary" csv:"Monetary"`
	CLV        float64 `json:"clv" csv:"CLV"`
}

// RFMColumns is the header of the customer RFM export
var RFMColumns = []string{"Customer_ID", "Recency", "Frequency", "Monetary", "CLV"}

// CorrelationMatrix is a square Pearson correlation matrix with labelled
// rows and columns. Values[i][j] correlates Labels[i] with Labels[j].
type CorrelationMatrix struct {
	Labels []string
	Values [][]float64
}

// At returns the coefficient for the pair (i, j)
func (m CorrelationMatrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// Size returns the number of variables
func (m CorrelationMatrix) Size() int {
	return len(m.Labels)
}
