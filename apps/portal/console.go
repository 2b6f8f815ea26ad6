package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/Ramcharan123-lang/hackthon/core"
	"github.com/Ramcharan123-lang/hackthon/core/portal"
)

var readPasswordFunc = term.ReadPassword // mockable

var errQuit = fmt.Errorf("quit")

// console is a minimal line-based front over the portal.App state machine.
// It renders whatever view the controller is on and feeds user actions back
// into it; all routing decisions stay in the controller.
type console struct {
	app  *portal.App
	conf *core.Config
	in   *bufio.Scanner
}

func newConsole(app *portal.App, conf *core.Config) *console {
	return &console{
		app:  app,
		conf: conf,
		in:   bufio.NewScanner(os.Stdin),
	}
}

func (c *console) run(ctx context.Context) error {
	fmt.Printf("%s (%s backend)\n", c.conf.AppName, c.conf.Storage.Backend)
	for {
		var err error
		switch c.app.View() {
		case portal.ViewLogin:
			err = c.loginView()
		case portal.ViewRegistration:
			err = c.registrationView(ctx)
		case portal.ViewProfileSetup:
			err = c.profileSetupView(ctx)
		case portal.ViewProfile:
			err = c.profileView(ctx)
		case portal.ViewDashboard:
			err = c.dashboardView()
		}
		if err == errQuit {
			return nil
		}
		if err != nil {
			// all failures degrade to a non-blocking notice; the view is unchanged
			fmt.Printf("! %v\n", err)
		}
	}
}

func (c *console) prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *console) promptPassword(label string) string {
	fmt.Printf("%s: ", label)
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(pwd)
}

func (c *console) loginView() error {
	fmt.Println("\n-- Login -- (email, or 'register' / 'quit')")
	email := core.CleanString(c.prompt("email"), true)
	switch email {
	case "quit", "":
		return errQuit
	case "register":
		c.app.ShowRegistration()
		return nil
	}
	pwd := c.promptPassword("password")

	// credential matching is the login screen's job, not the controller's
	for _, acc := range c.app.Accounts() {
		if acc.Email == email && acc.CheckPassword(pwd) {
			c.app.Login(acc.UserType, acc)
			fmt.Printf("welcome, %s\n", acc.Name)
			return nil
		}
	}
	return fmt.Errorf("invalid email or password")
}

func (c *console) registrationView(ctx context.Context) error {
	fmt.Println("\n-- Registration -- (empty email to go back)")
	email := core.CleanString(c.prompt("email"), true)
	if email == "" {
		c.app.BackToLogin()
		return nil
	}
	na := portal.NewAccount{
		Email:    email,
		Name:     c.prompt("name"),
		Password: c.promptPassword("password"),
	}
	userType := c.prompt("role (admin/student)")
	if err := c.app.Register(ctx, userType, na); err != nil {
		return err
	}
	fmt.Println("account created")
	return nil
}

func (c *console) profileSetupView(ctx context.Context) error {
	fmt.Println("\n-- Profile setup --")
	sess := c.app.Session()
	profile := portal.Patch{"phone": c.prompt("phone")}
	if sess.UserType == portal.UserTypeStudent {
		profile["studentId"] = c.prompt("student id")
		profile["academicYear"] = c.prompt("academic year")
		profile["branch"] = c.prompt("branch")
		profile["groupNumber"] = c.prompt("group number")
	} else {
		profile["department"] = c.prompt("department")
	}
	if err := c.app.CompleteProfileSetup(ctx, profile); err != nil {
		return err
	}
	fmt.Println("profile setup completed")
	return nil
}

func (c *console) profileView(ctx context.Context) error {
	sess := c.app.Session()
	fmt.Printf("\n-- Profile: %s (%s) --\n", sess.Account.Name, sess.UserType)
	fmt.Printf("email: %s  phone: %s\n", sess.Account.Email, sess.Account.Phone)
	switch c.prompt("command (edit/back/logout)") {
	case "edit":
		patch := portal.Patch{}
		if name := c.prompt("name"); name != "" {
			patch["name"] = name
		}
		if phone := c.prompt("phone"); phone != "" {
			patch["phone"] = phone
		}
		if err := c.app.UpdateProfile(ctx, patch); err != nil {
			return err
		}
		fmt.Println("profile updated")
	case "logout":
		c.app.Logout()
	default:
		c.app.BackToDashboard()
	}
	return nil
}

func (c *console) dashboardView() error {
	sess := c.app.Session()
	fmt.Printf("\n-- %s dashboard: %s --\n", sess.UserType, sess.Account.Name)
	fmt.Printf("projects: %d  submissions: %d  tasks: %d  messages: %d\n",
		len(c.app.Projects()), len(c.app.Submissions()), len(c.app.Tasks()), len(c.app.Messages()))

	switch c.prompt("command (profile/logout/quit)") {
	case "profile":
		c.app.ShowProfile()
	case "logout":
		c.app.Logout()
	case "quit":
		return errQuit
	}
	return nil
}
