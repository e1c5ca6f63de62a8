package domain

// ReactionKind identifies a per-user toggle on a post.
type ReactionKind string

const (
	ReactionLike ReactionKind = "like"
	ReactionSave ReactionKind = "save"
)

// TeamRole is a member's role within a team.
type TeamRole string

const (
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleMember TeamRole = "member"
)

// BudgetLevel is the spending tier requested for an estimate.
type BudgetLevel string

const (
	BudgetLevelBudget   BudgetLevel = "budget"
	BudgetLevelModerate BudgetLevel = "moderate"
	BudgetLevelLuxury   BudgetLevel = "luxury"
)

// ValidBudgetLevels is the set of accepted budget levels.
var ValidBudgetLevels = map[BudgetLevel]bool{
	BudgetLevelBudget:   true,
	BudgetLevelModerate: true,
	BudgetLevelLuxury:   true,
}

// Event types published on realtime topics.
const (
	EventBudgetEstimated = "budget.estimated"
	EventPostReaction    = "post.reaction"
	EventTeamMemberLeft  = "team.member_left"
	EventTeamDeleted     = "team.deleted"
	EventTeamAdminAdded  = "team.admin_promoted"
	EventChatMessage     = "team.message"
)
