// Package analysis turns the model's loosely-shaped JSON reply into a
// typed report. Every field is defaulted explicitly here so the rest of
// the system never touches the raw decoded payload.
package analysis

// Scores are the ten call-quality dimensions, 0-10 each.
type Scores struct {
	Total     float64
	Rapport   float64
	Needs     float64
	Value     float64
	Objection float64
	Price     float64
	Closing   float64
	Followup  float64
	Empathy   float64
	Listening float64
}

// Metrics are the percentage and count figures alongside the scores.
type Metrics struct {
	LeadQualityPercent      float64
	OpenQuestionCount       float64
	ObjectionCount          float64
	ObjectionSuccessPercent float64
	ClosingAttemptCount     float64
	CustomerFeelingScore    float64
	ClosingReadinessPercent float64
	SellerTechDensity       float64
	CustomerTechDensity     float64
	PriceSensitivity        float64
	RiskSensitivity         float64
	TimeSensitivity         float64
	YesLadderCount          float64
}

// DISC is the four-axis behavioral classification.
type DISC struct {
	D float64
	I float64
	S float64
	C float64
}

// TextFields are the free-text attributes of one analysis.
type TextFields struct {
	SellerName          string
	SellerCode          string
	CustomerName        string
	CallDuration        string
	CallDirection       string
	CallStage           string
	CallWarmth          string
	CallNature          string
	Product             string
	SellerLevel         string
	DISCType            string
	DISCEvidence        []string
	DISCGuide           string
	PreferredChannel    string
	CustomerAwareness   string
	CustomerTalkRatio   string
	SellerTalkRatio     string
	Summary             string
	CustomerPersonality string
	SellerPerformance   string
	ReadinessAssessment string
	NextAction          string
}

// ReasonSet holds one list of reasons per score dimension.
type ReasonSet struct {
	Rapport   []string
	Needs     []string
	Value     []string
	Objection []string
	Price     []string
	Closing   []string
	Followup  []string
	Empathy   []string
	Listening []string
}

// ListSections are the nine list-valued child sections.
type ListSections struct {
	PositiveKeywords []string
	NegativeKeywords []string
	Risks            []string
	Strengths        []string
	Weaknesses       []string
	Objections       []string
	Techniques       []string
	MissedParameters []string
	CommonMistakes   []string
}

// ActiveUser is one call-center agent row from the stats section.
type ActiveUser struct {
	Name            string
	CallCount       int
	PerformanceNote string
}

// TopCustomer is one high-contact customer row from the stats section.
type TopCustomer struct {
	Name               string
	ContactCount       int
	InteractionQuality string
}

// Stats are the call-volume figures plus the two row lists.
type Stats struct {
	TotalCalls      int
	SuccessfulCalls int
	NoAnswerCalls   int
	ReferredCalls   int
	ActiveUsers     []ActiveUser
	TopCustomers    []TopCustomer
}

// Best names a single standout seller or customer with the reason.
type Best struct {
	Name   string
	Reason string
}

// Bests pairs the standout seller and customer.
type Bests struct {
	Seller   Best
	Customer Best
}

// Report is the fully-defaulted CRM analysis. Raw keeps the original
// payload for replay in history views.
type Report struct {
	Scores          Scores
	Metrics         Metrics
	DISC            DISC
	Text            TextFields
	DecreaseReasons ReasonSet
	IncreaseReasons ReasonSet
	Lists           ListSections
	Stats           Stats
	Bests           Bests
	Raw             map[string]interface{}
}

// ReferralSummary is the status-distribution-derived figure set for one
// referral spreadsheet analysis.
type ReferralSummary struct {
	Total          int
	Completed      int
	Pending        int
	InProgress     int
	Seen           int
	Accepted       int
	CompletionRate float64
	PendingRate    float64
	Raw            map[string]interface{}
}
