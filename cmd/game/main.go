// Command game runs Quiz Pursuit in a window.
//
// Levels come from Postgres when --dsn is set, else from a directory of
// YAML packs when --levels is set, else from the embedded pack. With
// --hud-addr the engine notifications are broadcast over a websocket.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/Garsondee/Quiz-Pursuit/internal/content"
	"github.com/Garsondee/Quiz-Pursuit/internal/game"
	"github.com/Garsondee/Quiz-Pursuit/internal/hudfeed"
	"github.com/Garsondee/Quiz-Pursuit/internal/session"
	"github.com/Garsondee/Quiz-Pursuit/internal/settings"
	"github.com/Garsondee/Quiz-Pursuit/internal/view"
)

const appName = "quiz_pursuit"

func main() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	cmd := &cli.Command{
		Name:  "quiz-pursuit",
		Usage: "maze trivia chase",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "levels", Usage: "directory of YAML level packs"},
			&cli.StringFlag{Name: "dsn", Usage: "Postgres DSN for the level table", Sources: cli.EnvVars("QUIZ_PURSUIT_DSN")},
			&cli.BoolFlag{Name: "import", Usage: "seed the Postgres table from --levels or the embedded pack, then play"},
			&cli.StringFlag{Name: "hud-addr", Usage: "listen address for the HUD websocket feed (empty disables)", Sources: cli.EnvVars("QUIZ_PURSUIT_HUD_ADDR")},
			&cli.StringFlag{Name: "camera", Usage: "camera mode: chase, field or mobile (default: stored preference)"},
			&cli.StringFlag{Name: "tuning", Usage: "YAML tuning override file"},
			&cli.BoolFlag{Name: "demo", Usage: "let the autopilot play"},
			&cli.BoolFlag{Name: "no-save", Usage: "keep preferences in memory only"},
			&cli.IntFlag{Name: "width", Value: 1280, Usage: "window width"},
			&cli.IntFlag{Name: "height", Value: 720, Usage: "window height"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "RNG seed for enemy wander"},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	tuning := game.DefaultTuning()
	if path := cmd.String("tuning"); path != "" {
		t, err := game.LoadTuning(path)
		if err != nil {
			return err
		}
		tuning = t
	}

	levels, err := loadLevels(ctx, cmd)
	if err != nil {
		return err
	}

	var prefs *settings.Manager
	if cmd.Bool("no-save") {
		prefs = settings.NewManager(nil)
	} else {
		prefs = settings.Open(appName)
	}
	if name := cmd.String("camera"); name != "" {
		mode, err := game.ParseCameraMode(name)
		if err != nil {
			return err
		}
		prefs.SetCameraMode(mode)
	}

	opts := []session.Option{
		session.WithEngineOptions(game.WithTuning(tuning), game.WithSeed(cmd.Int64("seed"))),
	}
	if addr := cmd.String("hud-addr"); addr != "" {
		notifier, shutdown := startHUD(ctx, addr, levels)
		defer shutdown()
		opts = append(opts, session.WithListener(notifier), session.WithObserver(notifier))
	}

	sess, err := session.New(levels, opts...)
	if err != nil {
		return err
	}
	g, err := view.New(view.Config{Session: sess, Settings: prefs, Demo: cmd.Bool("demo")})
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle("Quiz Pursuit")
	ebiten.SetWindowSize(cmd.Int("width"), cmd.Int("height"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, view.ErrQuit) {
		return err
	}
	return nil
}

// loadLevels picks the level source from the flags.
func loadLevels(ctx context.Context, cmd *cli.Command) ([]game.LevelDescriptor, error) {
	var local content.Source = content.EmbeddedSource{}
	if dir := cmd.String("levels"); dir != "" {
		local = content.DirSource{Dir: dir}
	}

	dsn := cmd.String("dsn")
	if dsn == "" {
		if cmd.Bool("import") {
			return nil, errors.New("--import needs --dsn")
		}
		return local.Levels(ctx)
	}

	pg, err := content.NewPostgresSource(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer pg.Close()

	if cmd.Bool("import") {
		levels, err := local.Levels(ctx)
		if err != nil {
			return nil, err
		}
		if err := pg.Import(ctx, levels); err != nil {
			return nil, err
		}
		log.Printf("[Content] imported %d levels into Postgres", len(levels))
	}
	return pg.Levels(ctx)
}

// startHUD runs the websocket hub and its HTTP server until ctx ends or
// the returned shutdown is called.
func startHUD(ctx context.Context, addr string, levels []game.LevelDescriptor) (*hudfeed.Notifier, func()) {
	ctx, cancel := context.WithCancel(ctx)
	hub := hudfeed.NewHub()
	go hub.Run(ctx)

	infos := make([]hudfeed.LevelInfo, len(levels))
	for i, lv := range levels {
		infos[i] = hudfeed.LevelInfo{Number: i + 1, Name: lv.Name, Question: lv.Question}
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           hudfeed.NewServer(hub, infos),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("[HUDFeed] listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[HUDFeed] server error: %v", err)
		}
	}()

	return hudfeed.NewNotifier(hub), func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[HUDFeed] shutdown: %v", err)
		}
		cancel()
	}
}
