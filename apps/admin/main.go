package main

import (
	"log"
	"os"

	"github.com/dojanghq/dojang/core"
	backupsvc "github.com/dojanghq/dojang/services/backup"
	logsvc "github.com/dojanghq/dojang/services/logger"
	"github.com/dojanghq/dojang/storage/database"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)

	// set up DB
	errAndDie(std, database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(std, err)
	defer func() { _ = db.Close() }()
	errAndDie(std, db.Ping())

	// start CLI
	cli := commandLine{
		db:     db,
		backup: backupsvc.NewManager(conf, logger),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
