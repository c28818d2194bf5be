// Package main provides the terminal game binary: it loads content
// catalogs, wires the turn engine, and runs an interactive command loop
// over stdin.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/soverby/diceforge/internal/config"
	"github.com/soverby/diceforge/internal/game/dice"
	"github.com/soverby/diceforge/internal/game/enemy"
	"github.com/soverby/diceforge/internal/game/engine"
	"github.com/soverby/diceforge/internal/game/item"
	"github.com/soverby/diceforge/internal/game/player"
	"github.com/soverby/diceforge/internal/observability"
	"github.com/soverby/diceforge/internal/storage"
	"github.com/soverby/diceforge/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	storeKind := flag.String("store", "memory", "best-run store: memory or postgres")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	contentStart := time.Now()
	classes, err := dice.LoadClassDefs(cfg.Content.ClassesDir)
	if err != nil {
		logger.Fatal("loading class dice", zap.Error(err))
	}
	enemies, err := enemy.LoadTemplates(cfg.Content.EnemiesDir)
	if err != nil {
		logger.Fatal("loading enemy archetypes", zap.Error(err))
	}
	registry, err := enemy.NewRegistry(enemies)
	if err != nil {
		logger.Fatal("building enemy registry", zap.Error(err))
	}
	items, err := item.LoadCatalog(cfg.Content.ItemsDir)
	if err != nil {
		logger.Fatal("loading item catalog", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("classes", len(classes)),
		zap.Int("enemies", len(enemies)),
		zap.Int("items", items.Len()),
		zap.Duration("elapsed", time.Since(contentStart)),
	)

	var runs storage.Store
	switch *storeKind {
	case "memory":
		runs = storage.NewMemoryStore()
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to postgres", zap.Error(err))
		}
		defer pool.Close()
		runs = postgres.NewRunStore(pool)
	default:
		logger.Fatal("unknown store kind", zap.String("store", *storeKind))
	}

	session, err := engine.New(engine.Params{
		Tuning: engine.Tuning{
			PlayerMaxHP:     cfg.Game.PlayerMaxHP,
			StartingGold:    cfg.Game.StartingGold,
			RerollAllowance: cfg.Game.RerollAllowance,
			MerchantCadence: cfg.Game.MerchantCadence,
			BestRunLimit:    cfg.Game.BestRunLimit,
		},
		Logger:  logger,
		Source:  dice.NewCryptoSource(),
		Classes: classes,
		Enemies: registry,
		Items:   items,
		Runs:    runs,
	})
	if err != nil {
		logger.Fatal("creating session", zap.Error(err))
	}

	logger.Info("game ready", zap.Duration("startup", time.Since(start)))
	fmt.Println("Diceforge. Type 'help' for commands, 'classes' to list classes.")
	runLoop(ctx, session)
}

// runLoop reads commands from stdin until quit or EOF.
func runLoop(ctx context.Context, s *engine.Session) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "classes":
			for _, c := range player.Classes() {
				fmt.Printf("  %s\n", c.ID())
			}
		case "start":
			if len(args) != 1 {
				fmt.Println("usage: start <class-id>")
				continue
			}
			class, err := player.ParseClass(args[0])
			if err != nil {
				fmt.Println(err)
				continue
			}
			report(s.StartRun(class))
		case "restart":
			report(s.Reset())
		case "roll":
			report(s.RollDice())
		case "reroll":
			if id, ok := dieArg(s, args); ok {
				report(s.Reroll(id))
			}
		case "assign":
			if len(args) != 2 {
				fmt.Println("usage: assign <die 1-3> <attack|defense|special>")
				continue
			}
			id, ok := dieArg(s, args[:1])
			if !ok {
				continue
			}
			slot, err := engine.ParseSlot(args[1])
			if err != nil {
				fmt.Println(err)
				continue
			}
			report(s.AssignDie(id, slot))
		case "unassign":
			if id, ok := dieArg(s, args); ok {
				report(s.UnassignDie(id))
			}
		case "fight":
			report(s.ExecuteTurn(ctx))
		case "buy":
			if len(args) != 1 {
				fmt.Println("usage: buy <slot number>")
				continue
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				fmt.Println("slot must be a number starting at 1")
				continue
			}
			report(s.PurchaseItem(n - 1))
		case "leave":
			report(s.LeaveMerchant())
		case "status":
			printStatus(s.Snapshot())
		case "best":
			printBestRuns(ctx, s)
		default:
			fmt.Printf("unknown command %q; type 'help'\n", cmd)
		}
	}
}

// dieArg maps a 1-based die position to its id via the snapshot.
func dieArg(s *engine.Session, args []string) (string, bool) {
	if len(args) != 1 {
		fmt.Println("name a die by position: 1, 2, or 3")
		return "", false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("name a die by position: 1, 2, or 3")
		return "", false
	}
	snap := s.Snapshot()
	if snap.Player == nil || n < 1 || n > len(snap.Player.Dice) {
		fmt.Println("no such die")
		return "", false
	}
	return snap.Player.Dice[n-1].ID, true
}

func report(r engine.Result) {
	for _, line := range r.Log {
		fmt.Println("  " + line)
	}
	if r.Message != "" {
		fmt.Println(r.Message)
	}
}

func printStatus(snap engine.Snapshot) {
	fmt.Printf("state: %s  round: %d\n", snap.State, snap.Round)
	if p := snap.Player; p != nil {
		fmt.Printf("%s  HP %d/%d  gold %d  crit %.0f%%  rerolls left %d\n",
			p.Class, p.CurrentHP, p.MaxHP, p.Gold, p.CritChance, p.RerollsLeft)
		for _, e := range p.Effects {
			fmt.Printf("  effect: %s (%s)\n", e.Name, durationLabel(e.Duration))
		}
		for i, d := range p.Dice {
			label := "unrolled"
			if d.Rolled {
				label = d.Face
			}
			if d.Slot != "" {
				label += " -> " + d.Slot
			}
			fmt.Printf("  die %d: %s\n", i+1, label)
		}
	}
	if e := snap.Enemy; e != nil {
		fmt.Printf("enemy: %s (%s) %s\n", e.Name, e.Category, e.Condition)
		for _, ef := range e.Effects {
			fmt.Printf("  effect: %s (%s)\n", ef.Name, durationLabel(ef.Duration))
		}
	}
	if m := snap.Merchant; m != nil {
		fmt.Printf("merchant (%s):\n", m.Variant)
		for i, w := range m.Wares {
			sold := ""
			if w.Sold {
				sold = " [sold]"
			}
			fmt.Printf("  %d. %s (%s) %dg%s - %s\n", i+1, w.Name, w.Rarity, w.Price, sold, w.Description)
		}
	}
}

func durationLabel(d int) string {
	if d < 0 {
		return "permanent"
	}
	return fmt.Sprintf("%d rounds", d)
}

func printBestRuns(ctx context.Context, s *engine.Session) {
	runs, err := s.BestRuns(ctx)
	if err != nil {
		fmt.Printf("loading best runs: %v\n", err)
		return
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs yet")
		return
	}
	for i, r := range runs {
		fmt.Printf("  %d. %s - %d rounds, %d enemies, %d damage, %d gold\n",
			i+1, r.Class, r.RoundsSurvived, r.EnemiesDefeated, r.DamageDealt, r.GoldEarned)
	}
}

func printHelp() {
	fmt.Print(`commands:
  classes                         list playable classes
  start <class-id>                begin a run
  restart                         restart with the same class
  roll                            roll all three dice
  reroll <die>                    reroll one die (limited per round)
  assign <die> <slot>             place a die in attack/defense/special
  unassign <die>                  take a die back out of its slot
  fight                           resolve the turn
  buy <slot>                      buy from the merchant
  leave                           leave the merchant
  status                          show the current state
  best                            show the best-runs list
  quit                            exit
`)
}
