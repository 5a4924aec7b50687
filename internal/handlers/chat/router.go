// Package chat routes inbound user messages to the wizard, game,
// pool, and combat orchestrators and turns their results into plain
// reply objects for the transport to render.
package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/wastelandrpg/wasteland-api/internal/errors"
	combatorc "github.com/wastelandrpg/wasteland-api/internal/orchestrators/combat"
	"github.com/wastelandrpg/wasteland-api/internal/orchestrators/game"
	"github.com/wastelandrpg/wasteland-api/internal/orchestrators/pool"
	"github.com/wastelandrpg/wasteland-api/internal/orchestrators/wizard"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/character"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/creature"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/recipe"
)

const commandPrefix = "!"

// Config holds the dependencies for the router
type Config struct {
	WizardService wizard.Service
	GameService   game.Service
	PoolService   pool.Service
	CombatService combatorc.Service
	CharacterRepo character.Repository
	CreatureRepo  creature.Repository
	RecipeRepo    recipe.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.WizardService == nil {
		vb.RequiredField("WizardService")
	}
	if c.GameService == nil {
		vb.RequiredField("GameService")
	}
	if c.PoolService == nil {
		vb.RequiredField("PoolService")
	}
	if c.CombatService == nil {
		vb.RequiredField("CombatService")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.CreatureRepo == nil {
		vb.RequiredField("CreatureRepo")
	}
	if c.RecipeRepo == nil {
		vb.RequiredField("RecipeRepo")
	}

	return vb.Build()
}

// Router dispatches inbound messages to the core services.
type Router struct {
	wizardService wizard.Service
	gameService   game.Service
	poolService   pool.Service
	combatService combatorc.Service
	characterRepo character.Repository
	creatureRepo  creature.Repository
	recipeRepo    recipe.Repository
}

// NewRouter creates a new router with the provided dependencies
func NewRouter(cfg *Config) (*Router, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Router{
		wizardService: cfg.WizardService,
		gameService:   cfg.GameService,
		poolService:   cfg.PoolService,
		combatService: cfg.CombatService,
		characterRepo: cfg.CharacterRepo,
		creatureRepo:  cfg.CreatureRepo,
		recipeRepo:    cfg.RecipeRepo,
	}, nil
}

// OnUserMessage handles one raw chat message. Command-prefixed text is
// dispatched as a command; anything else feeds the user's active
// wizard session when there is one.
func (r *Router) OnUserMessage(ctx context.Context, userID, guildID, text string) (*Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.InvalidArgument("message text is required")
	}
	if userID == "" || guildID == "" {
		return nil, errors.InvalidArgument("user ID and guild ID are required")
	}

	if strings.HasPrefix(text, commandPrefix) {
		fields := strings.Fields(strings.TrimPrefix(text, commandPrefix))
		if len(fields) == 0 {
			return r.usageReply(), nil
		}
		return r.dispatch(ctx, userID, guildID, strings.ToLower(fields[0]), fields[1:])
	}

	active, err := r.wizardService.HasSession(ctx, &wizard.HasSessionInput{GuildID: guildID, UserID: userID})
	if err != nil {
		return nil, err
	}
	if !active.Active {
		return r.usageReply(), nil
	}

	return r.advanceWizard(ctx, userID, guildID, text)
}

// OnSlashInvocation handles a structured command invocation. The
// command name and arguments arrive pre-tokenized by the transport.
func (r *Router) OnSlashInvocation(ctx context.Context, command string, args []string, userID, guildID string) (*Reply, error) {
	if userID == "" || guildID == "" {
		return nil, errors.InvalidArgument("user ID and guild ID are required")
	}
	command = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(command), commandPrefix))
	if command == "" {
		return r.usageReply(), nil
	}
	return r.dispatch(ctx, userID, guildID, command, args)
}

func (r *Router) dispatch(ctx context.Context, userID, guildID, command string, args []string) (*Reply, error) {
	var (
		reply *Reply
		err   error
	)

	switch command {
	case "criar-personagem":
		reply, err = r.cmdStartWizard(ctx, userID, guildID, "player")
	case "gm-criar":
		reply, err = r.cmdStartWizard(ctx, userID, guildID, "gm")
	case "cancelar", "gm-cancelar":
		reply, err = r.cmdCancelWizard(ctx, userID, guildID)
	case "registrar":
		reply, err = r.cmdRegister(ctx, userID, guildID, args)
	case "pericia":
		reply, err = r.cmdSetSkill(ctx, userID, guildID, args)
	case "ficha":
		reply, err = r.cmdSheet(ctx, userID, guildID)
	case "personagens":
		reply, err = r.cmdRoster(ctx, guildID)
	case "teste":
		reply, err = r.cmdSkillTest(ctx, userID, guildID, args)
	case "rerrolar":
		reply, err = r.cmdReroll(ctx, userID, guildID, args)
	case "dano":
		reply, err = r.cmdDamage(ctx, args)
	case "fabricar":
		reply, err = r.cmdCraft(ctx, userID, guildID, args)
	case "receita":
		reply, err = r.cmdRecipe(ctx, guildID, args)
	case "npc":
		reply, err = r.cmdStatBlock(ctx, guildID, args)
	case "pa":
		reply, err = r.cmdActionPoints(ctx, guildID, args)
	case "ps":
		reply, err = r.cmdLuck(ctx, userID, guildID, args)
	case "xp":
		reply, err = r.cmdXP(ctx, userID, guildID, args)
	case "combate":
		reply, err = r.cmdCombat(ctx, userID, guildID, args)
	case "ajuda", "help":
		reply = r.usageReply()
	default:
		reply = r.usageReply()
	}

	if err != nil {
		if userReply := replyFromError(err); userReply != nil {
			return userReply, nil
		}
		slog.Error("command failed",
			"command", command,
			"guild_id", guildID,
			"user_id", userID,
			"error", err,
		)
		return nil, err
	}

	return reply, nil
}

func (r *Router) advanceWizard(ctx context.Context, userID, guildID, text string) (*Reply, error) {
	out, err := r.wizardService.Advance(ctx, &wizard.AdvanceInput{
		GuildID: guildID,
		UserID:  userID,
		Text:    text,
	})
	if err != nil {
		if userReply := replyFromError(err); userReply != nil {
			return userReply, nil
		}
		return nil, err
	}

	return &Reply{Text: out.Message}, nil
}

// replyFromError turns recoverable coded errors into user-facing
// replies. Internal errors pass through as errors.
func replyFromError(err error) *Reply {
	if errors.IsRecoverable(err) {
		return &Reply{Text: err.Error(), Private: true}
	}
	return nil
}

func (r *Router) usageReply() *Reply {
	return &Reply{
		Private: true,
		Text:    "Comandos disponíveis:",
		Fields: []Field{
			{Name: "Personagem", Value: "`!criar-personagem` · `!cancelar` · `!registrar <nome> <7 atributos>` · `!pericia <perícia> <grau> [marcada]` · `!ficha` · `!personagens`"},
			{Name: "Testes", Value: "`!teste <perícia> <dificuldade> [dados <n>] [sorte]` · `!rerrolar <dado>` · `!dano <n> [extra <n>]` · `!fabricar <receita>`"},
			{Name: "Recursos", Value: "`!pa [adicionar|gastar|definir <n>|zerar]` · `!ps [gastar [n]|definir <n>|max]` · `!xp <n>` · `!xp derrota <nome>`"},
			{Name: "Combate", Value: "`!combate iniciar|encerrar|entrar|add <nome> <inic>|remover <nome>|proximo|ordem`"},
			{Name: "Mestre", Value: "`!gm-criar` · `!gm-cancelar` · `!npc <nome>` · `!receita <nome> | <perícia> | <complexidade> [| materiais [| raridade]]`"},
		},
	}
}
