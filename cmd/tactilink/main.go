package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cfoust/tactilink/pkg/config"
	"github.com/cfoust/tactilink/pkg/version"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Version bool `help:"Print version information and exit." short:"v"`
	Debug   bool `help:"Whether to enable debug logging."`

	Serve struct {
		Configs []string `arg:"" optional:"" name:"configs" help:"Configuration files for the server." type:"file"`
	} `cmd:"" help:"Start the transcription server."`

	Encode struct {
		Text               string `arg:"" help:"Spanish text to transcribe."`
		MultiplicationSign bool   `help:"Write an x between digits as the multiplication sign."`
	} `cmd:"" help:"Transcribe Spanish text to Braille dot codes."`

	Decode struct {
		Codes string `arg:"" help:"Space-separated Braille dot codes."`
	} `cmd:"" help:"Transcribe Braille dot codes back to Spanish text."`

	Render struct {
		Text   string `arg:"" help:"Spanish text for the sign."`
		Mirror bool   `help:"Draw the sign mirrored, for embossing from the back."`
		PNG    bool   `name:"png" help:"Write a PNG instead of an SVG."`
		Scale  int    `help:"Pixels per unit for PNG output." default:"2"`
		Output string `help:"File to write to instead of standard output." short:"o" type:"path"`
	} `cmd:"" help:"Render Braille signage."`

	Config struct {
	} `cmd:"" help:"Write the default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if len(os.Args) == 1 {
		err := serve([]string{})
		if err != nil {
			writeError(err)
		}
		return
	}

	ctx := kong.Parse(&CLI,
		kong.Name("tactilink"),
		kong.Description("Spanish Braille transcription and signage"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if CLI.Version {
		fmt.Printf(
			"tactilink %s (commit %s)\n",
			version.Version,
			version.GitCommit,
		)
		fmt.Printf(
			"built %s\n",
			version.BuildTime,
		)
		os.Exit(0)
	}

	var err error
	switch ctx.Command() {
	case "serve", "serve <configs>":
		err = serve(CLI.Serve.Configs)
	case "encode <text>":
		err = encode(os.Stdout, CLI.Encode.Text, CLI.Encode.MultiplicationSign)
	case "decode <codes>":
		err = decode(os.Stdout, CLI.Decode.Codes)
	case "render <text>":
		err = renderSign(CLI.Render.Text, CLI.Render.Mirror, CLI.Render.PNG, CLI.Render.Scale, CLI.Render.Output)
	case "config":
		_, err = os.Stdout.Write(config.DEFAULT)
	}

	if err != nil {
		writeError(err)
	}
}
