package model

import "time"

// TripSlots is the accumulating conversational fact set for one planning
// session. Optional fields are pointers; nil means the user has not provided
// the fact yet. Sentinel strings from the extractor ("not specified", "n/a",
// "anywhere", ...) are normalized to nil at the NLP boundary and never reach
// this struct.
type TripSlots struct {
	OriginCity  *string    `json:"originCity,omitempty"`
	Destination *string    `json:"destination,omitempty"`
	NumDays     *int       `json:"numDays,omitempty"`
	NumPeople   int        `json:"numPeople"`
	Budget      *float64   `json:"budget,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	Interests   *string    `json:"interests,omitempty"`

	PreferredLanguage string `json:"preferredLanguage,omitempty"`

	// OriginalDestination records the user's first-choice destination after a
	// failed feasibility check, so a later budget increase can restore it
	// instead of whatever fallback destination was substituted meanwhile.
	OriginalDestination *string `json:"originalDestination,omitempty"`
}

// Clone returns a deep copy; merge logic never aliases the caller's pointers.
func (s TripSlots) Clone() TripSlots {
	out := s
	out.OriginCity = cloneString(s.OriginCity)
	out.Destination = cloneString(s.Destination)
	out.NumDays = cloneInt(s.NumDays)
	out.Budget = cloneFloat(s.Budget)
	out.StartDate = cloneTime(s.StartDate)
	out.Interests = cloneString(s.Interests)
	out.OriginalDestination = cloneString(s.OriginalDestination)
	return out
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// CostResearch bundles the four raw text blobs returned by the destination
// research collaborator. Blobs are untrusted free-form prose; failed lookups
// leave the corresponding blob empty.
type CostResearch struct {
	BudgetInfo      string `json:"budgetInfo"`
	SafetyAdvisory  string `json:"safetyAdvisory"`
	Weather         string `json:"weather"`
	TravelDocuments string `json:"travelDocuments"`
}

// EstimateSource records which rung of the parser fallback chain produced a
// cost estimate.
type EstimateSource string

const (
	SourceExtracted EstimateSource = "extracted" // labeled machine-readable marker
	SourceParsed    EstimateSource = "parsed"    // currency amounts scanned from prose
	SourceDefault   EstimateSource = "default"   // hardcoded constant
)

// CostEstimate is the per-destination daily cost floor derived from research
// text. Amounts are INR.
type CostEstimate struct {
	DailyMinimumPerPerson float64        `json:"dailyMinimumPerPerson"`
	Source                EstimateSource `json:"source"`
}

// Tier classifies how far above the minimum viable spend the budget sits.
type Tier string

const (
	TierBudget   Tier = "budget"
	TierModerate Tier = "moderate"
	TierLuxury   Tier = "luxury"
)

// FeasibilityResult is the sufficiency verdict for one request. It is never
// persisted; it is recomputed from current inputs each time, and echoes those
// inputs so the verdict is explainable.
type FeasibilityResult struct {
	RequiredTotal float64 `json:"requiredTotal"`
	IsSufficient  bool    `json:"isSufficient"`
	Shortfall     float64 `json:"shortfall"`
	Surplus       float64 `json:"surplus"`
	Tier          Tier    `json:"tier"`

	DailyMinimumPerPerson float64        `json:"dailyMinimumPerPerson"`
	TransportTotal        float64        `json:"transportTotal"`
	BufferFactor          float64        `json:"bufferFactor"`
	EstimateSource        EstimateSource `json:"estimateSource"`
}

// TurnStatus is the fixed set of response types the orchestrator emits.
type TurnStatus string

const (
	StatusCollecting   TurnStatus = "COLLECTING"
	StatusSufficient   TurnStatus = "SUFFICIENT"
	StatusInsufficient TurnStatus = "INSUFFICIENT"
	StatusOffTopic     TurnStatus = "OFF_TOPIC"
)

// TurnResult is the orchestrator's answer for one utterance. Slots always
// carries the merged fact set the caller should persist for the next turn.
type TurnResult struct {
	Status        TurnStatus         `json:"status"`
	Slots         TripSlots          `json:"slots"`
	MissingFields []string           `json:"missingFields,omitempty"`
	KnownFields   map[string]string  `json:"knownFields,omitempty"`
	Feasibility   *FeasibilityResult `json:"feasibility,omitempty"`
	Strategy      string             `json:"strategy,omitempty"`
	Reply         string             `json:"reply"`
}

// Session binds a slot set to a conversation for persistence between turns.
type Session struct {
	SessionID    string    `json:"sessionId"`
	UserID       string    `json:"userId"`
	Slots        TripSlots `json:"slots"`
	CreationTime time.Time `json:"creationTime"`
	UpdateTime   time.Time `json:"updateTime"`
}

// Feedback is a post-trip feedback record, unique per (trip, user).
type Feedback struct {
	FeedbackID     string    `json:"feedbackId"`
	TripID         string    `json:"tripId"`
	UserID         string    `json:"userId"`
	Rating         int       `json:"rating"`
	Experience     string    `json:"experience"`
	WouldRecommend bool      `json:"wouldRecommend"`
	Highlights     []string  `json:"highlights,omitempty"`
	Improvements   []string  `json:"improvements,omitempty"`
	Comment        *string   `json:"comment,omitempty"`
	CreationTime   time.Time `json:"creationTime"`
	UpdateTime     time.Time `json:"updateTime"`
}

// FeedbackItemCount is one ranked highlight/improvement with its frequency.
type FeedbackItemCount struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// FeedbackStats aggregates all feedback records.
type FeedbackStats struct {
	TotalFeedback      int                 `json:"totalFeedback"`
	AverageRating      float64             `json:"averageRating"`
	RecommendationRate float64             `json:"recommendationRate"`
	TopHighlights      []FeedbackItemCount `json:"topHighlights"`
	CommonImprovements []FeedbackItemCount `json:"commonImprovements"`
}

// SecurityAlert is a safety advisory to fan out to a traveler.
type SecurityAlert struct {
	Severity       string `json:"severity"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Location       string `json:"location"`
	ActionRequired string `json:"actionRequired,omitempty"`
}

// NotificationPreferences selects delivery channels. Nil flags mean enabled;
// users opt out explicitly.
type NotificationPreferences struct {
	SMSEnabled      *bool   `json:"smsEnabled,omitempty"`
	WhatsAppEnabled *bool   `json:"whatsappEnabled,omitempty"`
	EmailEnabled    *bool   `json:"emailEnabled,omitempty"`
	WhatsAppNumber  *string `json:"whatsappNumber,omitempty"`
}

// UserProfile carries the contact surface needed for notification fan-out.
type UserProfile struct {
	UserID      string                  `json:"userId"`
	PhoneNumber *string                 `json:"phoneNumber,omitempty"`
	Email       *string                 `json:"email,omitempty"`
	Preferences NotificationPreferences `json:"notificationPreferences"`
}
