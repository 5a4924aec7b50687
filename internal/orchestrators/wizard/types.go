package wizard

import "github.com/wastelandrpg/wasteland-api/internal/entities"

// Status classifies what an Advance call did with the input.
type Status string

// Advance statuses.
const (
	// StatusReprompt means the input was rejected and the step repeats.
	StatusReprompt Status = "reprompt"
	// StatusAdvanced means the input was accepted and the flow moved on.
	StatusAdvanced Status = "advanced"
	// StatusCompleted means the flow finished and persisted its result.
	StatusCompleted Status = "completed"
)

// StartInput opens a creation flow.
type StartInput struct {
	GuildID   string
	GuildName string
	UserID    string
	Kind      entities.WizardKind
}

// StartOutput carries the first prompt.
type StartOutput struct {
	Kind   entities.WizardKind
	Step   string
	Prompt string
}

// AdvanceInput feeds one chat message into the active flow.
type AdvanceInput struct {
	GuildID string
	UserID  string
	Text    string
}

// AdvanceOutput reports the step result. Character is set when a player
// flow completes, StatBlock when a GM flow completes.
type AdvanceOutput struct {
	Status    Status
	Step      string
	Message   string
	Character *entities.Character
	StatBlock *entities.StatBlock
}

// CancelInput discards the active flow.
type CancelInput struct {
	GuildID string
	UserID  string
}

// CancelOutput names the cancelled flow kind.
type CancelOutput struct {
	Kind entities.WizardKind
}

// HasSessionInput asks whether a flow is active.
type HasSessionInput struct {
	GuildID string
	UserID  string
}

// HasSessionOutput reports whether a flow is active.
type HasSessionOutput struct {
	Active bool
}
