package main

import (
	"log"
	"os"

	"github.com/Ramcharan123-lang/hackthon/core"
	boltstore "github.com/Ramcharan123-lang/hackthon/storage/bolt"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// the admin CLI always works on the local store
	store, err := boltstore.Open(conf.Storage.Path)
	errAndDie(err)
	defer func() { _ = store.Close() }()

	cli := commandLine{
		store:    store,
		seedFunc: store.Seed,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
