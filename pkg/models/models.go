package models

// Domain models matching the JSON layout persisted by the web client.

type Role string

const (
	RoleProblemOwner   Role = "problem_owner"
	RoleITProfessional Role = "it_professional"
)

func (r Role) Valid() bool {
	return r == RoleProblemOwner || r == RoleITProfessional
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

type ProblemStatus string

const (
	ProblemOpen       ProblemStatus = "open"
	ProblemInProgress ProblemStatus = "in_progress"
	ProblemCompleted  ProblemStatus = "completed"
	ProblemClosed     ProblemStatus = "closed"
)

func (s ProblemStatus) Valid() bool {
	switch s {
	case ProblemOpen, ProblemInProgress, ProblemCompleted, ProblemClosed:
		return true
	}
	return false
}

type SolutionStatus string

const (
	SolutionPending  SolutionStatus = "pending"
	SolutionAccepted SolutionStatus = "accepted"
	SolutionRejected SolutionStatus = "rejected"
)

func (s SolutionStatus) Valid() bool {
	switch s {
	case SolutionPending, SolutionAccepted, SolutionRejected:
		return true
	}
	return false
}

type ConnectionStatus string

const (
	ConnectionRequested ConnectionStatus = "requested"
	ConnectionAccepted  ConnectionStatus = "accepted"
	ConnectionRejected  ConnectionStatus = "rejected"
	ConnectionCompleted ConnectionStatus = "completed"
)

func (s ConnectionStatus) Valid() bool {
	switch s {
	case ConnectionRequested, ConnectionAccepted, ConnectionRejected, ConnectionCompleted:
		return true
	}
	return false
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Phone     *string   `json:"phone,omitempty"`
	Company   *string   `json:"company,omitempty"`
	Skills    []string  `json:"skills,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
}

type Problem struct {
	ID          string        `json:"id"`
	OwnerID     string        `json:"ownerId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Urgency     Urgency       `json:"urgency"`
	Status      ProblemStatus `json:"status"`
	Budget      *string       `json:"budget,omitempty"`
	Timeline    *string       `json:"timeline,omitempty"`
	Attachments []string      `json:"attachments,omitempty"`
	CreatedAt   Timestamp     `json:"createdAt"`
	UpdatedAt   Timestamp     `json:"updatedAt"`
}

func (p Problem) Created() Timestamp { return p.CreatedAt }

type Solution struct {
	ID               string         `json:"id"`
	ProblemID        string         `json:"problemId"`
	ProfessionalID   string         `json:"professionalId"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	ProposedSolution string         `json:"proposedSolution"`
	EstimatedTime    *string        `json:"estimatedTime,omitempty"`
	EstimatedCost    *string        `json:"estimatedCost,omitempty"`
	Status           SolutionStatus `json:"status"`
	CreatedAt        Timestamp      `json:"createdAt"`
	UpdatedAt        Timestamp      `json:"updatedAt"`
}

func (s Solution) Created() Timestamp { return s.CreatedAt }

// Connection is persisted for parity with the web client; no workflow
// creates one yet.
type Connection struct {
	ID             string           `json:"id"`
	ProblemID      string           `json:"problemId"`
	ProfessionalID string           `json:"professionalId"`
	OwnerID        string           `json:"ownerId"`
	Status         ConnectionStatus `json:"status"`
	CreatedAt      Timestamp        `json:"createdAt"`
}

func (c Connection) Created() Timestamp { return c.CreatedAt }

// Optional returns a pointer to s, or nil when s is blank.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Value dereferences an optional field.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Categories offered when posting a problem.
var Categories = []string{
	"webDev",
	"mobileApp",
	"database",
	"infrastructure",
	"automation",
	"apiIntegration",
	"security",
	"other",
}

func IsCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
