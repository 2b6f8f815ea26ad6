package main

import (
	"context"
	"fmt"

	"github.com/Ramcharan123-lang/hackthon/core"
	"github.com/Ramcharan123-lang/hackthon/core/portal"
)

// addStudent creates a student account the way an admin dashboard does:
// profile marked complete, no profile-setup step.
func (cli *commandLine) addStudent(email, name, pwd, studentID, year, branch, group string) error {
	acc := portal.Account{
		Email:           core.CleanString(email, true /* lower */),
		Password:        pwd,
		UserType:        portal.UserTypeStudent,
		ProfileComplete: true,
		Name:            core.CleanString(name),
		StudentID:       studentID,
		AcademicYear:    year,
		Branch:          branch,
		GroupNumber:     group,
	}

	created, err := cli.store.CreateAccount(context.Background(), acc)
	if err != nil {
		return err
	}
	fmt.Printf("created account #%d (%s)\n", created.ID, created.Email)
	return nil
}

func (cli *commandLine) listAccounts() error {
	accounts, err := cli.store.Accounts(context.Background())
	if err != nil {
		return err
	}
	for _, acc := range accounts {
		fmt.Printf("#%-3d %-8s %-35s %s\n", acc.ID, acc.UserType, acc.Email, acc.Name)
	}
	return nil
}
