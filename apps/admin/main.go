package main

import (
	"log"
	"os"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/storage/local"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// start CLI
	cli := commandLine{
		oprRepo: local.NewOperatorRepository(conf.DataDir),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
