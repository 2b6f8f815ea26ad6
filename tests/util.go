package testutil

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/Ramcharan123-lang/hackthon/core"
	"github.com/Ramcharan123-lang/hackthon/core/portal"
	logsvc "github.com/Ramcharan123-lang/hackthon/services/logger"
)

// NewLogger returns a quiet core.Logger for tests.
func NewLogger() core.Logger {
	return logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))
}

func CreateAccount(t *testing.T, store portal.Store, email, name, pwd, userType string, profileComplete bool) portal.Account {
	t.Helper()

	acc, err := store.CreateAccount(context.Background(), portal.Account{
		Email:           email,
		Name:            name,
		Password:        pwd,
		UserType:        userType,
		ProfileComplete: profileComplete,
	})
	if err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	return acc
}

func CreateProject(t *testing.T, store portal.Store, title, createdBy string) portal.Project {
	t.Helper()

	prj, err := store.CreateProject(context.Background(), portal.Project{
		Title:     title,
		CreatedBy: createdBy,
		Status:    "open",
	})
	if err != nil {
		t.Fatalf("CreateProject() failed: %v", err)
	}
	return prj
}
