package usage

// Kind names a governed resource.
type Kind string

const (
	KindAnalysis      Kind = "analysis"
	KindMarketingPlan Kind = "marketing_plan"
)

// Decision is the outcome of a quota check. Count is the counter value
// after the check: incremented on Allowed, the standing value on
// denial.
type Decision struct {
	Allowed bool `json:"allowed"`
	Count   int  `json:"count"`
	Limit   int  `json:"limit"`
}

// Snapshot reports current consumption for one kind, for the usage
// endpoint.
type Snapshot struct {
	Kind  Kind `json:"kind"`
	Count int  `json:"count"`
	Limit int  `json:"limit"`
}

const dayFormat = "2006-01-02"
