package main

import (
	"flag"
	"log"
	"os"

	"github.com/automoto/doomerang-audio/assets"
	"github.com/automoto/doomerang-audio/config"
	"github.com/automoto/doomerang-audio/scenes"
	"github.com/automoto/doomerang-audio/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Game struct {
	scene *scenes.DemoScene
}

func (g *Game) Update() error {
	g.scene.Update()
	return g.scene.Err()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(config.Debug.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var l zerolog.Logger
	if config.Debug.Console {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		l = zerolog.New(os.Stderr)
	}
	return l.Level(level).With().Timestamp().Logger()
}

func main() {
	// Optional .env next to the binary
	_ = godotenv.Load()
	config.LoadEnv()

	root := flag.String("root", ".", "directory sounds and levels are read from")
	flag.StringVar(&config.Demo.ClipsDir, "clips", config.Demo.ClipsDir, "clip directory, relative to -root")
	flag.StringVar(&config.Demo.LevelPath, "level", config.Demo.LevelPath, "Tiled map with an AudioEmitters layer, relative to -root")
	flag.Parse()

	logger := newLogger()
	systems.SetLogger(logger)

	if err := systems.InitPersistence(); err != nil {
		logger.Warn().Err(err).Msg("settings will not be saved")
	}

	ctx := audio.NewContext(config.Audio.SampleRate)
	loader := assets.NewLoader(os.DirFS(*root), config.Audio.SampleRate, logger)
	scene := scenes.NewDemoScene(ctx, loader, logger)
	defer scene.Close()

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle("doomerang audio")
	ebiten.SetTPS(config.Audio.TPS)

	if err := ebiten.RunGame(&Game{scene: scene}); err != nil {
		log.Fatalf("audio demo: %v", err)
	}
}
