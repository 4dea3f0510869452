package models

// PatientFact is the slim projection every aggregation works from.
type PatientFact struct {
	Procedure string
	Status    string
	Cost      float64
}

// CategoryStat describes a single procedure category on the dashboard.
type CategoryStat struct {
	Procedure string  `json:"procedure"`
	Total     int     `json:"total"`
	Converted int     `json:"converted"`
	Pending   int     `json:"pending"`
	Rate      float64 `json:"rate"`
}

// DashboardData is the KPI panel plus the two category cards.
type DashboardData struct {
	Total          int     `json:"total"`
	Converted      int     `json:"converted"`
	Pending        int     `json:"pending"`
	ConversionRate float64 `json:"conversion_rate"`
	RevenueDone    float64 `json:"revenue_done"`
	RevenuePending float64 `json:"revenue_pending"`

	// TopCategory is the procedure with the most patients; NeedsAttention
	// the one with the most pending cases. Nil when there is no data.
	TopCategory    *CategoryStat `json:"top_category"`
	NeedsAttention *CategoryStat `json:"needs_attention"`
}

// ProcedureConversion is one row of the conversion-by-procedure table.
type ProcedureConversion struct {
	Procedure      string  `json:"procedure"`
	Total          int     `json:"total"`
	Converted      int     `json:"converted"`
	Pending        int     `json:"pending"`
	ConversionRate float64 `json:"conversion_rate"`
}

// RevenueSlice is the cost of one procedure/status cell of the revenue chart.
type RevenueSlice struct {
	Procedure string  `json:"procedure"`
	Status    string  `json:"status"`
	Cost      float64 `json:"cost"`
}

// RevenueData is the admin-only revenue overview.
type RevenueData struct {
	TotalAdvised float64        `json:"total_advised"`
	Collected    float64        `json:"collected"`
	Pending      float64        `json:"pending"`
	ByProcedure  []RevenueSlice `json:"by_procedure"`
}

// DoctorStat is one doctor's leaderboard row.
type DoctorStat struct {
	Doctor         string  `json:"doctor"`
	TotalCases     int     `json:"total_cases"`
	Converted      int     `json:"converted"`
	ConversionRate float64 `json:"conversion_rate"`
	Revenue        float64 `json:"revenue"`
}

// DoctorLeaderboard lists every doctor plus the top performer by conversion
// rate. TopPerformer is nil when there is no data.
type DoctorLeaderboard struct {
	TopPerformer *DoctorStat  `json:"top_performer"`
	Doctors      []DoctorStat `json:"doctors"`
}

// GroupCount is a labelled count used by the demographic breakdowns.
type GroupCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Demographics is the age/gender/city breakdown.
type Demographics struct {
	AgeGroups []GroupCount `json:"age_groups"`
	Genders   []GroupCount `json:"genders"`
	Cities    []GroupCount `json:"cities"`
}
