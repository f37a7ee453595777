package main

import (
	"database/sql"
	"errors"
	"fmt"

	backupsvc "github.com/dojanghq/dojang/services/backup"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db     *sql.DB
	backup *backupsvc.Manager
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a migration command: up, up-by-one, up-to, down, down-to, redo, reset, status, version, create, fix")
	fmt.Println("  backup                 - take a manual database snapshot")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "backup":
		return cli.takeBackup()
	default:
		cli.printUsage()
		return errHelp
	}
}
