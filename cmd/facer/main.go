// Facer: face milling feeds, speeds and GCode.
//
// A desktop calculator that derives spindle speed, feed, removal rate and
// power for a material and cutter, and writes a zig-zag facing program.
//
// Build:
//   go build -o facer ./cmd/facer
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o facer.exe ./cmd/facer
//   GOOS=darwin  GOARCH=amd64 go build -o facer-darwin ./cmd/facer

package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"github.com/rs/zerolog"

	"github.com/piwi3910/facer/internal/ui"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	application := app.NewWithID("com.piwi3910.facer")
	window := application.NewWindow("Facer")

	appUI := ui.NewApp(application, window, log)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1280, 820))
	window.CenterOnScreen()

	log.Info().Msg("facer started")
	window.ShowAndRun()
}
