package main

import (
	"log"
	"os"

	echoapi "github.com/Ramcharan123-lang/hackthon/apps/api/echo"
	"github.com/Ramcharan123-lang/hackthon/core"
	logsvc "github.com/Ramcharan123-lang/hackthon/services/logger"
	boltstore "github.com/Ramcharan123-lang/hackthon/storage/bolt"
)

func main() {
	conf := core.NewConfig()
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var logger core.Logger
	if conf.Debug || conf.RollbarToken == "" {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up the local store backing the API
	store, err := boltstore.Open(conf.Storage.Path)
	errAndDie(err)
	defer func() { _ = store.Close() }()

	validate, translator := core.NewValidator()

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Addr:       conf.Server.Addr,
		Token:      conf.API.Token,
		Debug:      conf.Debug,
		TestMode:   conf.TestMode,
		Store:      store,
		Validate:   validate,
		Translator: translator,
		Logger:     logger,
	})
	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
