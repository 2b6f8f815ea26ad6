package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/Ramcharan123-lang/hackthon/core/portal"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	store    portal.Store
	seedFunc func() error
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed - merge the bootstrap accounts into the store")
	fmt.Println("  accounts - list all accounts")
	fmt.Println("  addstudent -email EMAIL -name NAME [-studentid ID] [-year YEAR] [-branch BRANCH] [-group GROUP] - create a student account")
	fmt.Println("  resetpassword -email EMAIL - reset an account's password")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	addStudentEmail := addStudentCmd.String("email", "", "The student's email. The password will be prompted next.")
	addStudentName := addStudentCmd.String("name", "", "The student's full name.")
	addStudentID := addStudentCmd.String("studentid", "", "The student's university id.")
	addStudentYear := addStudentCmd.String("year", "", "The student's academic year.")
	addStudentBranch := addStudentCmd.String("branch", "", "The student's branch.")
	addStudentGroup := addStudentCmd.String("group", "", "The student's group number.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The account's email. The password will be prompted next.")

	switch args[1] {
	case "seed":
		return cli.seedFunc()
	case "accounts":
		return cli.listAccounts()
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStudentEmail == "" || *addStudentName == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(*addStudentEmail, *addStudentName, string(pwd), *addStudentID, *addStudentYear, *addStudentBranch, *addStudentGroup)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordEmail, string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}
