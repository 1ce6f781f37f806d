// Command leduc-cfr trains a CFR solver on Leduc hold'em and prints the
// resulting average strategy and exploitability. Leduc is large enough
// that CFR+ is the default variant.
package main

import (
	"flag"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	cfr "github.com/cfrlab/tabular-cfr"
	"github.com/cfrlab/tabular-cfr/csvlog"
	"github.com/cfrlab/tabular-cfr/leduc"
)

var cli struct {
	Iterations  int    `help:"number of CFR iterations" default:"1000000"`
	Variant     string `help:"CFR variant" enum:"vanilla,plus" default:"plus"`
	Alternating bool   `help:"update one player per iteration instead of both"`
	CSV         string `help:"path to write metric snapshots as CSV rows"`
	LogInterval int    `help:"iterations between metric snapshots (0 picks automatically)"`
	Verbose     bool   `help:"emit progress milestones and regret diagnostics"`
	Quiet       bool   `help:"suppress the strategy dump"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("leduc-cfr"),
		kong.Description("Tabular CFR solver for Leduc hold'em"),
		kong.UsageOnError(),
	)

	setupLogging(cli.Verbose)

	variant, err := cfr.ParseVariant(cli.Variant)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid variant")
	}

	game := leduc.New()
	solver := cfr.New[leduc.State, leduc.Action](game, cfr.Params{
		Variant:     variant,
		Alternating: cli.Alternating,
	})

	cfg := cfr.Config{
		Iterations:  cli.Iterations,
		LogInterval: cli.LogInterval,
		Verbose:     cli.Verbose,
	}

	if cli.CSV != "" {
		w, err := csvlog.Create(cli.CSV)
		if err != nil {
			log.Fatal().Err(err).Msg("opening metrics file")
		}
		defer w.Close()

		cfg.Logger = w
	}

	log.Info().
		Int("iterations", cli.Iterations).
		Str("variant", variant.String()).
		Bool("alternating", cli.Alternating).
		Msg("training on Leduc hold'em")

	if err := solver.Train(cfg); err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}

	policy := solver.AverageStrategy()
	log.Info().
		Int("infosets", solver.NumInfoSets()).
		Float64("policy_value", cfr.ExpectedValue(game, policy, cfr.Player1)).
		Float64("nash_conv", cfr.NashConv(game, policy)).
		Float64("exploitability", cfr.Exploitability(game, policy)).
		Msg("training complete")

	if !cli.Quiet {
		if err := solver.WriteStrategies(os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("writing strategies")
		}
	}
}

func setupLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	flag.Set("logtostderr", "true")
	flag.CommandLine.Parse(nil)
}
