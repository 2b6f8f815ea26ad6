package main

import (
	"context"
	"log"
	"os"

	"github.com/Ramcharan123-lang/hackthon/core"
	"github.com/Ramcharan123-lang/hackthon/core/portal"
	logsvc "github.com/Ramcharan123-lang/hackthon/services/logger"
	boltstore "github.com/Ramcharan123-lang/hackthon/storage/bolt"
	reststore "github.com/Ramcharan123-lang/hackthon/storage/rest"
)

func main() {
	conf := core.NewConfig()
	std := log.New(os.Stdout, "", log.LstdFlags)

	var logger core.Logger
	if conf.Debug || conf.RollbarToken == "" {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// the bolt store is always open: it is the durable mirror for dashboard
	// edits even when reads go through the remote API
	local, err := boltstore.Open(conf.Storage.Path)
	errAndDie(err)
	defer func() { _ = local.Close() }()

	var store portal.Store = local
	if conf.Storage.Backend == core.StorageRemote {
		store = reststore.NewStore(conf)
	}

	app := portal.NewApp(store, local, logger)
	ctx := context.Background()
	if err = app.Hydrate(ctx); err != nil {
		// degraded start: carry on with whatever the local mirror holds
		logger.Warn("starting with locally mirrored data only")
	}

	ui := newConsole(app, conf)
	if err := ui.run(ctx); err != nil {
		logger.Fatal(err.Error())
	}
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
