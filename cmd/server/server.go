package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/wastelandrpg/wasteland-api/internal/handlers/chat"
	combatorc "github.com/wastelandrpg/wasteland-api/internal/orchestrators/combat"
	"github.com/wastelandrpg/wasteland-api/internal/orchestrators/game"
	"github.com/wastelandrpg/wasteland-api/internal/orchestrators/pool"
	"github.com/wastelandrpg/wasteland-api/internal/orchestrators/wizard"
	"github.com/wastelandrpg/wasteland-api/internal/pkg/clock"
	"github.com/wastelandrpg/wasteland-api/internal/pkg/dice"
	"github.com/wastelandrpg/wasteland-api/internal/pkg/idgen"
	"github.com/wastelandrpg/wasteland-api/internal/pkg/keymutex"
	redisclient "github.com/wastelandrpg/wasteland-api/internal/redis"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/character"
	combatrepo "github.com/wastelandrpg/wasteland-api/internal/repositories/combat"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/creature"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/party"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/recipe"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/rollsession"
	"github.com/wastelandrpg/wasteland-api/internal/repositories/wizardsession"
)

// serveConfig is read from the environment, then overridden by flags.
type serveConfig struct {
	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	MaxActionPoints  int           `env:"MAX_ACTION_POINTS" envDefault:"6"`
	WizardSessionTTL time.Duration `env:"WIZARD_SESSION_TTL" envDefault:"24h"`
	RollSessionTTL   time.Duration `env:"ROLL_SESSION_TTL" envDefault:"15m"`
	GuildID          string        `env:"GUILD_ID" envDefault:"local"`
	UserID           string        `env:"USER_ID" envDefault:"console"`
}

var serveFlags struct {
	redisAddr string
	maxAP     int
	guildID   string
	userID    string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the session server on a console transport",
	Long:  `Start the session server. Each stdin line is handled as one inbound chat message for the configured guild and user; replies print to stdout.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.redisAddr, "redis-addr", "", "redis address (overrides REDIS_ADDR)")
	serveCmd.Flags().IntVar(&serveFlags.maxAP, "max-ap", 0, "action point pool maximum (overrides MAX_ACTION_POINTS)")
	serveCmd.Flags().StringVar(&serveFlags.guildID, "guild", "", "guild id for console messages (overrides GUILD_ID)")
	serveCmd.Flags().StringVar(&serveFlags.userID, "user", "", "user id for console messages (overrides USER_ID)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	router, err := buildRouter(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("shutdown signal received")
		cancel()
	}()

	slog.Info("server started",
		"redis_addr", cfg.RedisAddr,
		"guild_id", cfg.GuildID,
		"user_id", cfg.UserID,
	)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("server stopped")
			return nil
		case line, ok := <-lines:
			if !ok {
				slog.Info("input closed, stopping")
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			reply, err := router.OnUserMessage(ctx, cfg.UserID, cfg.GuildID, line)
			if err != nil {
				slog.Error("message handling failed", "error", err)
				fmt.Println("Algo deu errado. Tente novamente.")
				continue
			}
			printReply(reply)
		}
	}
}

func loadServeConfig() (*serveConfig, error) {
	cfg := &serveConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if serveFlags.redisAddr != "" {
		cfg.RedisAddr = serveFlags.redisAddr
	}
	if serveFlags.maxAP != 0 {
		cfg.MaxActionPoints = serveFlags.maxAP
	}
	if serveFlags.guildID != "" {
		cfg.GuildID = serveFlags.guildID
	}
	if serveFlags.userID != "" {
		cfg.UserID = serveFlags.userID
	}

	return cfg, nil
}

// buildRouter is the composition root: redis client, repositories,
// orchestrators, and finally the chat router.
func buildRouter(cfg *serveConfig) (*chat.Router, error) {
	client, err := redisclient.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	clk := clock.New()

	charRepo, err := character.NewRedis(&character.RedisConfig{Client: client})
	if err != nil {
		return nil, err
	}
	partyRepo, err := party.NewRedis(&party.RedisConfig{Client: client})
	if err != nil {
		return nil, err
	}
	combatRepo, err := combatrepo.NewRedis(&combatrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, err
	}
	creatureRepo, err := creature.NewRedis(&creature.RedisConfig{Client: client})
	if err != nil {
		return nil, err
	}
	recipeRepo, err := recipe.NewRedis(&recipe.RedisConfig{Client: client})
	if err != nil {
		return nil, err
	}
	rollRepo, err := rollsession.NewRedis(&rollsession.RedisConfig{
		Client: client,
		Clock:  clk,
		TTL:    cfg.RollSessionTTL,
	})
	if err != nil {
		return nil, err
	}
	sessionRepo, err := wizardsession.NewRedis(&wizardsession.RedisConfig{
		Client: client,
		Clock:  clk,
		TTL:    cfg.WizardSessionTTL,
	})
	if err != nil {
		return nil, err
	}

	locks := keymutex.New()

	poolService, err := pool.NewOrchestrator(&pool.Config{
		PartyRepo:       partyRepo,
		CharacterRepo:   charRepo,
		Locks:           locks,
		MaxActionPoints: cfg.MaxActionPoints,
	})
	if err != nil {
		return nil, err
	}
	gameService, err := game.NewOrchestrator(&game.Config{
		CharacterRepo:   charRepo,
		RollSessionRepo: rollRepo,
		RecipeRepo:      recipeRepo,
		CreatureRepo:    creatureRepo,
		PoolService:     poolService,
		Roller:          dice.Default(),
		IDGenerator:     idgen.NewUUID("roll"),
	})
	if err != nil {
		return nil, err
	}
	combatService, err := combatorc.NewOrchestrator(&combatorc.Config{
		CombatRepo:    combatRepo,
		CharacterRepo: charRepo,
		Locks:         locks,
	})
	if err != nil {
		return nil, err
	}
	wizardService, err := wizard.NewOrchestrator(&wizard.Config{
		SessionRepo:   sessionRepo,
		CharacterRepo: charRepo,
		CreatureRepo:  creatureRepo,
		Locks:         locks,
	})
	if err != nil {
		return nil, err
	}

	return chat.NewRouter(&chat.Config{
		WizardService: wizardService,
		GameService:   gameService,
		PoolService:   poolService,
		CombatService: combatService,
		CharacterRepo: charRepo,
		CreatureRepo:  creatureRepo,
		RecipeRepo:    recipeRepo,
	})
}

func printReply(reply *chat.Reply) {
	fmt.Println(reply.Text)
	for _, field := range reply.Fields {
		fmt.Printf("  %s: %s\n", field.Name, field.Value)
	}
}
