// Command kuhn-cfr trains a CFR solver on Kuhn poker and prints the
// resulting average strategy and exploitability.
package main

import (
	"flag"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	cfr "github.com/cfrlab/tabular-cfr"
	"github.com/cfrlab/tabular-cfr/csvlog"
	"github.com/cfrlab/tabular-cfr/kuhn"
)

var cli struct {
	Iterations  int    `help:"number of CFR iterations" default:"10000"`
	Variant     string `help:"CFR variant" enum:"vanilla,plus" default:"vanilla"`
	Alternating bool   `help:"update one player per iteration instead of both"`
	CSV         string `help:"path to write metric snapshots as CSV rows"`
	LogInterval int    `help:"iterations between metric snapshots (0 picks automatically)"`
	Verbose     bool   `help:"emit progress milestones and regret diagnostics"`
	Quiet       bool   `help:"suppress the strategy dump"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("kuhn-cfr"),
		kong.Description("Tabular CFR solver for Kuhn poker"),
		kong.UsageOnError(),
	)

	setupLogging(cli.Verbose)

	variant, err := cfr.ParseVariant(cli.Variant)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid variant")
	}

	game := kuhn.New()
	solver := cfr.New[kuhn.State, kuhn.Action](game, cfr.Params{
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
		Msg("training on Kuhn poker")

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

// setupLogging configures zerolog for the CLI and routes the solver's glog
// output to stderr.
func setupLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	flag.Set("logtostderr", "true")
	flag.CommandLine.Parse(nil)
}
