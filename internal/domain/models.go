package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripTemplate is a shared trip plan. UserIDs lists the callers authorized to act on it.
type TripTemplate struct {
	ID        string    `db:"id" json:"id"`
	Topic     string    `db:"topic" json:"topic"`
	StartDate string    `db:"start_date" json:"startDate"`
	EndDate   string    `db:"end_date" json:"endDate"`
	OwnerID   string    `db:"owner_id" json:"ownerId"`
	UserIDs   []string  `db:"-" json:"userUIDs"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// HasUser reports whether userID appears in the template's authorized users.
func (t *TripTemplate) HasUser(userID string) bool {
	for _, u := range t.UserIDs {
		if u == userID {
			return true
		}
	}
	return false
}

// Amount is a money value read from model output. It accepts a JSON number
// or a numeric string such as "25.50", and always encodes as a number.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("amount %s is not a number: %w", string(b), err)
	}
	*a = Amount(d.InexactFloat64())
	return nil
}

// ReceiptItem is a single line on a receipt.
type ReceiptItem struct {
	Name  string `json:"name"`
	Price Amount `json:"price"`
}

// Receipt is the structured result of receipt parsing.
type Receipt struct {
	Vendor   string        `json:"vendor"`
	Date     string        `json:"date"`
	Amount   Amount        `json:"amount"`
	Currency string        `json:"currency"`
	Category string        `json:"category"`
	Items    []ReceiptItem `json:"items"`
}

// BudgetEstimate is the persisted budget record for a trip template.
// Record holds the model's object exactly as extracted; it is overwritten on every
// re-estimation.
type BudgetEstimate struct {
	TemplateID  string          `db:"template_id" json:"templateId"`
	Record      json.RawMessage `db:"record" json:"record"`
	Model       string          `db:"model" json:"model"`
	EstimatedBy string          `db:"estimated_by" json:"estimatedBy"`
	EstimatedAt time.Time       `db:"estimated_at" json:"estimatedAt"`
}

// BudgetRecord is the typed view of a budget estimate record.
// Fields the model omitted are left at their zero value.
type BudgetRecord struct {
	TotalBudgetPerPerson float64            `json:"totalBudgetPerPerson"`
	Currency             string             `json:"currency"`
	BudgetLevel          string             `json:"budgetLevel"`
	Breakdown            map[string]float64 `json:"breakdown"`
	DailyBreakdown       []DailyCost        `json:"dailyBreakdown"`
	BudgetTips           []string           `json:"budgetTips"`
	Disclaimer           string             `json:"disclaimer"`
}

// DailyCost is one day of a budget estimate.
type DailyCost struct {
	Day            int     `json:"day"`
	Date           string  `json:"date"`
	Accommodation  float64 `json:"accommodation"`
	Food           float64 `json:"food"`
	Transportation float64 `json:"transportation"`
	Activities     float64 `json:"activities"`
	Total          float64 `json:"total"`
}

// DailyTotal sums the per-day totals.
func (r *BudgetRecord) DailyTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, d := range r.DailyBreakdown {
		sum = sum.Add(decimal.NewFromFloat(d.Total))
	}
	return sum
}

// BreakdownTotal sums every named bucket, flights included.
func (r *BudgetRecord) BreakdownTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range r.Breakdown {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum
}

// Post is a community forum post.
type Post struct {
	ID        uuid.UUID `db:"id" json:"id"`
	AuthorID  string    `db:"author_id" json:"authorId"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	LikeCount int       `db:"like_count" json:"likeCount"`
	SaveCount int       `db:"save_count" json:"saveCount"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ReactionState is the result of toggling a reaction.
type ReactionState struct {
	Post   *Post        `json:"post"`
	Kind   ReactionKind `json:"kind"`
	Active bool         `json:"active"`
}

// Team is a group of travellers sharing a chat.
type Team struct {
	ID        uuid.UUID    `db:"id" json:"id"`
	Name      string       `db:"name" json:"name"`
	Members   []TeamMember `db:"-" json:"members"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time    `db:"updated_at" json:"updatedAt"`
}

// TeamMember is a user's membership in a team.
type TeamMember struct {
	TeamID   uuid.UUID `db:"team_id" json:"teamId"`
	UserID   string    `db:"user_id" json:"userId"`
	Role     TeamRole  `db:"role" json:"role"`
	JoinedAt time.Time `db:"joined_at" json:"joinedAt"`
}

// Member returns the membership entry for userID, or nil.
func (t *Team) Member(userID string) *TeamMember {
	for i := range t.Members {
		if t.Members[i].UserID == userID {
			return &t.Members[i]
		}
	}
	return nil
}

// AdminCount returns the number of admins in the team.
func (t *Team) AdminCount() int {
	n := 0
	for _, m := range t.Members {
		if m.Role == TeamRoleAdmin {
			n++
		}
	}
	return n
}

// ChatMessage is a message posted to a team chat.
type ChatMessage struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TeamID    uuid.UUID `db:"team_id" json:"teamId"`
	SenderID  string    `db:"sender_id" json:"senderId"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Event is a server-push notification delivered to topic subscribers.
type Event struct {
	Type  string      `json:"type"`
	Topic string      `json:"topic"`
	Data  interface{} `json:"data"`
	At    time.Time   `json:"at"`
}
