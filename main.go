package main

import (
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/snakeq/agent"
	"github.com/samuelfneumann/snakeq/agent/deepq"
	"github.com/samuelfneumann/snakeq/config"
	"github.com/samuelfneumann/snakeq/environment/snake"
	"github.com/samuelfneumann/snakeq/experiment"
	"github.com/samuelfneumann/snakeq/experiment/trackers"
	"github.com/samuelfneumann/snakeq/expreplay"
)

func main() {
	c, err := config.Load(config.Filename)
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}

	// Create the environment
	game, err := snake.New(c.Cols, c.Rows, c.Seed)
	if err != nil {
		log.Fatalf("could not create game: %v", err)
	}

	// Create the learning algorithm
	q, err := deepq.New(c.QNet())
	if err != nil {
		log.Fatalf("could not create model: %v", err)
	}
	defer q.Close()

	replay, err := expreplay.New(c.MaxMemory, rand.NewSource(c.Seed+1))
	if err != nil {
		log.Fatalf("could not create replay buffer: %v", err)
	}

	a, err := agent.New(q, replay, rand.New(rand.NewSource(c.Seed+2)),
		c.BatchSize, c.Gamma)
	if err != nil {
		log.Fatalf("could not create agent: %v", err)
	}

	// Experiment
	pngFile, htmlFile := c.PlotFiles()
	e := experiment.NewOnline(game, a,
		trackers.NewConsole(os.Stdout, isatty.IsTerminal(os.Stdout.Fd())),
		trackers.NewScores(pngFile, htmlFile),
		trackers.NewRunState(c.VarsFile()),
	)
	if err := e.Run(); err != nil {
		log.Fatalf("training stopped: %v", err)
	}
}
