package main

import (
	"context"

	"github.com/Ramcharan123-lang/hackthon/core"
	"github.com/Ramcharan123-lang/hackthon/core/portal"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	email = core.CleanString(email, true /* lower */)
	_, err := cli.store.UpdateAccount(context.Background(), email, portal.Patch{"password": pwd})
	return err
}
