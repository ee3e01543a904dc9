package domain

// Application status values. An application is created as pending; the review
// pipeline moves it out-of-band, this service only reads the result.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
)

// BatchName is the current cohort label shown on the landing page.
const BatchName = "W26"

// Application is one founder's submission for the batch.
// It is storage-agnostic and used across repository and HTTP layers.
type Application struct {
	PublicID string `json:"id"`
	UserID   string `json:"-"`

	// Founder info
	FounderName  string `json:"founderName"`
	FounderEmail string `json:"founderEmail"`
	AgentType    string `json:"agentType"`

	// Startup info
	StartupName string `json:"startupName"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	Website     string `json:"website,omitempty"`

	// Application specifics
	ProblemSolving string `json:"problemSolving"`
	WhyMoltbots    string `json:"whyMoltbots"`
	Traction       string `json:"traction,omitempty"`
	FundingAsk     string `json:"fundingAsk"`

	Status      Status `json:"status"`
	SubmittedAt int64  `json:"submittedAt"` // epoch milliseconds
}

// PublicApplication is the anonymized projection served to unauthenticated
// visitors. Founder and pitch fields are excluded by construction: the type
// simply has no place to carry them.
type PublicApplication struct {
	StartupName string `json:"startupName"`
	Tagline     string `json:"tagline"`
	AgentType   string `json:"agentType"`
	Status      Status `json:"status"`
	SubmittedAt int64  `json:"submittedAt"`
}

// Stats is the aggregate view for the landing page.
type Stats struct {
	TotalApplications int    `json:"totalApplications"`
	AcceptedCount     int    `json:"acceptedCount"`
	BatchName         string `json:"batchName"`
}

// AgentTypes is the suggested list offered by the form wizard. Free-form
// values are still accepted; the server does not enforce membership.
var AgentTypes = []string{
	"Autonomous Agent",
	"Multi-Agent System",
	"Task Automation Bot",
	"Data Processing Agent",
	"Customer Service Bot",
	"Trading/Finance Agent",
	"Content Generation Agent",
	"Research Agent",
	"Developer Tools Agent",
	"Other",
}

// FundingTiers are the ask amounts offered by the form wizard, likewise not
// enforced server-side.
var FundingTiers = []string{"$125K", "$250K", "$500K", "$1M+"}
