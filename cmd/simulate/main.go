package main

import (
	"flag"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"schafkopf-server/internal/bots"
	"schafkopf-server/internal/config"
	"schafkopf-server/internal/rng"
	"schafkopf-server/pkg/playable/schafkopf"
)

var hands = flag.Int("hands", 100, "the number of hands to simulate")
var seed = flag.Int64("seed", 0, "fixed seed for reproducible runs (0 uses the clock)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	opts := cfg.GameOptions()

	generator := func(i int64) rng.Generator {
		if *seed != 0 {
			return rng.NewSeeded(*seed + i)
		}

		return rng.Crypto{}
	}

	playerIDs := []int64{1, 2, 3, 4}
	players := make([]*bots.Bot, len(playerIDs))
	for i, id := range playerIDs {
		players[i] = bots.New(id, generator(id))
	}

	totals := make(map[int64]int)
	dealerSeat := 0
	for i := 0; i < *hands; i++ {
		if *seed != 0 {
			opts.Seed = *seed + int64(i)
		}

		g, err := schafkopf.NewGame(logrus.StandardLogger(), playerIDs, dealerSeat, opts)
		if err != nil {
			logrus.WithError(err).Fatal("could not create the game")
		}

		if err := playHand(g, players); err != nil {
			logrus.WithError(err).Fatal("the hand could not be played out")
		}

		result := g.Result()
		for id, payout := range result.Payouts {
			totals[id] += payout
		}

		logrus.WithField("hand", i+1).Info(result.Summary())
		dealerSeat = (dealerSeat + 1) % 4
	}

	for _, id := range playerIDs {
		logrus.WithFields(logrus.Fields{
			"playerID": id,
			"balance":  totals[id],
		}).Info("final standing")
	}
}

// playHand drives a single hand to its settlement, playing the dealer's part
// between the tricks
func playHand(g *schafkopf.Game, players []*bots.Bot) error {
	const maxSteps = 1000

	for steps := 0; g.Phase() != schafkopf.PhaseHandSettled; steps++ {
		if steps > maxSteps {
			logrus.Fatal("the simulation stalled")
		}

		acted := false
		for _, b := range players {
			didAct, err := b.Act(g)
			if err != nil {
				return err
			}

			acted = acted || didAct
		}

		if g.Phase() == schafkopf.PhaseTrickSettled {
			if err := g.AdvanceTrick(); err != nil {
				return err
			}

			acted = true
		}

		if !acted {
			logrus.Fatal("no player can act")
		}

		drainLogs(g)
	}

	return g.Settle()
}

// drainLogs empties the game's log channel so it never blocks a long run
func drainLogs(g *schafkopf.Game) {
	for {
		select {
		case <-g.LogChan():
		default:
			return
		}
	}
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
