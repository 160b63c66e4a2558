package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"github.com/notepainter/notepainter/oto"
	"github.com/notepainter/notepainter/timeline"
	"github.com/notepainter/notepainter/timeline/gioui"
	"github.com/notepainter/notepainter/version"
)

var configFile = flag.String("config", "", "read the configuration from `file` instead of the user config directory")
var noRecovery = flag.Bool("no-recovery", false, "do not load or write the recovery file")
var versionFlag = flag.Bool("v", false, "print version and exit")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: notepainter [flags] [drawing.yml]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	cfg, err := timeline.ReadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	audioContext, err := oto.NewContext()
	if err != nil {
		log.Fatal(err)
	}
	recoveryFile := ""
	if !*noRecovery {
		recoveryFile = timeline.RecoveryFilePath()
	}
	device := gioui.NewDevice()
	model, err := timeline.NewModel(timeline.NewBroker(), audioContext.Output(), device, cfg, recoveryFile)
	if err != nil {
		log.Fatal(err)
	}
	if a := flag.Args(); len(a) > 0 {
		model.OpenFile(a[0])
	} else if ok, err := model.LoadRecovery(); err != nil {
		log.Printf("could not load recovery file: %v", err)
	} else if ok {
		model.Alerts().Add("Recovered unsaved work from the previous session", timeline.Info)
	}
	editor := gioui.NewEditor(model, device)
	go func() {
		editor.Main()
		if err := audioContext.Close(); err != nil {
			log.Printf("could not close audio: %v", err)
		}
		os.Exit(0)
	}()
	app.Main()
}
