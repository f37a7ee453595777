package main

import (
	"fmt"

	backupsvc "github.com/dojanghq/dojang/services/backup"
)

func (cli *commandLine) takeBackup() error {
	path, err := cli.backup.Snapshot(backupsvc.KindManual)
	if err != nil {
		return err
	}
	fmt.Printf("snapshot written to %s\n", path)
	return nil
}
