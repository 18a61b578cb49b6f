package main

import (
	"flag"

	"github.com/matheus3301/outreach/internal/app"
	"go.uber.org/fx"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	baseURLFlag := flag.String("base-url", "", "backend address (overrides config and env)")
	debugFlag := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	fx.New(
		app.Core(app.Params{
			Binary:      "outreach",
			ProfileFlag: *profileFlag,
			BaseURLFlag: *baseURLFlag,
			Debug:       *debugFlag,
		}),
		app.TUI(),
	).Run()
}
