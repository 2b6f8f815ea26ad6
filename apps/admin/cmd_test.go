package main

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramcharan123-lang/hackthon/core/portal"
	dummystore "github.com/Ramcharan123-lang/hackthon/storage/dummy"
)

func setup(t *testing.T) (*commandLine, *dummystore.Store, *int) {
	t.Helper()
	store := dummystore.Open()
	var seeds int
	cli := &commandLine{
		store:    store,
		seedFunc: func() error { seeds++; return nil },
	}
	return cli, store, &seeds
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
}

func Test_commandLine_run(t *testing.T) {
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "seed", args: []string{"seed"}},
		{name: "accounts", args: []string{"accounts"}},
		{name: "addstudent: no flags", args: []string{"addstudent"}, wantErr: errHelp},
		{name: "addstudent: email but no name", args: []string{"addstudent", "-email", "a@x.com"}, wantErr: errHelp},
		{name: "addstudent: no password", args: []string{"addstudent", "-email", "a@x.com", "-name", "A"}, wantErr: errHelp},
		{name: "addstudent", args: []string{"addstudent", "-email", "a@x.com", "-name", "A"}, pwd: "pwd"},
		{name: "addstudent: duplicate email", args: []string{"addstudent", "-email", "rahul123@gmail.com", "-name", "R"}, pwd: "pwd", wantErr: portal.ErrEmailExists},
		{name: "resetpassword: no email", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "resetpassword: no password", args: []string{"resetpassword", "-email", "a@x.com"}, wantErr: errHelp},
		{name: "resetpassword: unknown account", args: []string{"resetpassword", "-email", "ghost@x.com"}, pwd: "pwd", wantErr: portal.ErrNotFound},
		{name: "resetpassword", args: []string{"resetpassword", "-email", "rahul123@gmail.com"}, pwd: "newpwd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _, _ := setup(t)
			readPasswordFunc = func(fd int) ([]byte, error) {
				return []byte(tt.pwd), nil
			}

			err := cli.run(append([]string{"admin"}, tt.args...))
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, errors.Cause(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_commandLine_addStudent(t *testing.T) {
	cli, store, _ := setup(t)
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("pwd"), nil }

	args := []string{"admin", "addstudent", "-email", "S@X.com", "-name", "Stu", "-studentid", "250001", "-year", "2", "-branch", "CSE", "-group", "3"}
	require.NoError(t, cli.run(args))

	accounts, err := store.Accounts(context.Background())
	require.NoError(t, err)
	created := accounts[len(accounts)-1]
	assert.Equal(t, "s@x.com", created.Email) // cleaned and lowered
	assert.Equal(t, portal.UserTypeStudent, created.UserType)
	assert.True(t, created.ProfileComplete) // admin-created accounts skip setup
	assert.Equal(t, "250001", created.StudentID)
	assert.Equal(t, 5, created.ID)
}

func Test_commandLine_seed(t *testing.T) {
	cli, _, seeds := setup(t)

	require.NoError(t, cli.run([]string{"admin", "seed"}))
	require.NoError(t, cli.run([]string{"admin", "seed"}))

	assert.Equal(t, 2, *seeds)
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli, store, _ := setup(t)
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("newpwd"), nil }

	require.NoError(t, cli.run([]string{"admin", "resetpassword", "-email", "rahul123@gmail.com"}))

	accounts, err := store.Accounts(context.Background())
	require.NoError(t, err)
	for _, acc := range accounts {
		if acc.Email == "rahul123@gmail.com" {
			assert.Equal(t, "newpwd", acc.Password)
		}
	}
}
