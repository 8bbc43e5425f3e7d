package tabular

// Citation points back to a single supporting row in the facility table.
type Citation struct {
	PKUniqueID string `json:"pk_unique_id"`
	Field      string `json:"field"`
}

// Result is the uniform envelope every handler returns: an action tag, the
// pseudo-SQL the handler conceptually ran, one of the payload fields
// appropriate to that action, and bookkeeping fields that are appended by
// the dispatcher regardless of handler.
type Result struct {
	Action      string                 `json:"action"`
	PseudoSQL   string                 `json:"pseudo_sql"`
	Count       *int                   `json:"count,omitempty"`
	Aggregation map[string]int         `json:"aggregation,omitempty"`
	Top         *KV                    `json:"top,omitempty"`
	Facilities  []map[string]any       `json:"facilities,omitempty"`
	Records     []map[string]any       `json:"records,omitempty"`
	Anomaly     *AnomalyStats          `json:"anomaly,omitempty"`
	Citations   []Citation             `json:"citations,omitempty"`
	Utterance   string                 `json:"utterance"`
	DurationMS  int64                  `json:"duration_ms"`
	Extra       map[string]interface{} `json:"-"`
}

// KV is a single ranked entry, e.g. the top region in an aggregation.
type KV struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// AnomalyStats carries the quartile/threshold bookkeeping for
// anomaly_bed_doctor_ratio.
type AnomalyStats struct {
	Q1        *float64 `json:"q1"`
	Q3        *float64 `json:"q3"`
	IQR       *float64 `json:"iqr"`
	Mean      *float64 `json:"mean"`
	Threshold *float64 `json:"threshold"`
}
