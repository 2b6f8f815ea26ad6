package portal_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramcharan123-lang/hackthon/core/portal"
	dummystore "github.com/Ramcharan123-lang/hackthon/storage/dummy"
	testutil "github.com/Ramcharan123-lang/hackthon/tests"
)

func setup(t *testing.T) (*portal.App, *dummystore.Store, *dummystore.Store) {
	t.Helper()
	store := dummystore.Open()
	mirror := dummystore.OpenEmpty()
	app := portal.NewApp(store, mirror, testutil.NewLogger())
	require.NoError(t, app.Hydrate(context.Background()))
	return app, store, mirror
}

func Test_App_initialView(t *testing.T) {
	app, _, _ := setup(t)
	assert.Equal(t, portal.ViewLogin, app.View())
	assert.Nil(t, app.Session().Account)
}

func Test_App_registerThenCompleteSetup(t *testing.T) {
	app, _, _ := setup(t)
	ctx := context.Background()

	app.ShowRegistration()
	err := app.Register(ctx, portal.UserTypeStudent, portal.NewAccount{
		Email:    "a@x.com",
		Password: "pwd",
		Name:     "A",
	})
	require.NoError(t, err)

	sess := app.Session()
	require.NotNil(t, sess.Account)
	assert.Equal(t, portal.UserTypeStudent, sess.UserType)
	assert.False(t, sess.Account.ProfileComplete)
	assert.Equal(t, portal.ViewProfileSetup, app.View())

	err = app.CompleteProfileSetup(ctx, portal.Patch{
		"studentId":    "250001",
		"academicYear": "1",
		"branch":       "CSE",
	})
	require.NoError(t, err)

	sess = app.Session()
	assert.True(t, sess.Account.ProfileComplete)
	assert.Nil(t, sess.Account.AverageGrade)
	assert.Equal(t, "250001", sess.Account.StudentID)
	assert.Equal(t, portal.ViewDashboard, app.View())
}

func Test_App_registerDuplicateEmailStaysPut(t *testing.T) {
	app, store, _ := setup(t)
	ctx := context.Background()
	testutil.CreateAccount(t, store, "a@x.com", "A", "pwd", portal.UserTypeStudent, true)
	require.NoError(t, app.Hydrate(ctx))

	app.ShowRegistration()
	before := len(app.Accounts())
	err := app.Register(ctx, portal.UserTypeStudent, portal.NewAccount{
		Email:    "a@x.com",
		Password: "other",
		Name:     "A2",
	})

	assert.Equal(t, portal.ErrEmailExists, errors.Cause(err))
	assert.Equal(t, portal.ViewRegistration, app.View())
	assert.Len(t, app.Accounts(), before)
	assert.Nil(t, app.Session().Account)
}

func Test_App_registerValidatesInput(t *testing.T) {
	tests := []struct {
		name     string
		userType string
		na       portal.NewAccount
	}{
		{
			name:     "malformed email",
			userType: portal.UserTypeStudent,
			na:       portal.NewAccount{Email: "not-an-email", Password: "pwd", Name: "A"},
		},
		{
			name:     "missing password",
			userType: portal.UserTypeStudent,
			na:       portal.NewAccount{Email: "a@x.com", Name: "A"},
		},
		{
			name:     "unknown role",
			userType: "teacher",
			na:       portal.NewAccount{Email: "a@x.com", Password: "pwd", Name: "A"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := setup(t)
			app.ShowRegistration()
			before := len(app.Accounts())

			err := app.Register(context.Background(), tt.userType, tt.na)

			assert.Error(t, err)
			assert.Equal(t, portal.ViewRegistration, app.View())
			assert.Len(t, app.Accounts(), before) // nothing stored
			assert.Nil(t, app.Session().Account)
		})
	}
}

func Test_App_createStudentAccountValidatesInput(t *testing.T) {
	app, _, _ := setup(t)

	_, err := app.CreateStudentAccount(context.Background(), portal.NewAccount{
		Email:    "not-an-email",
		Password: "pwd",
		Name:     "X",
	})

	assert.Error(t, err)
}

func Test_App_loginRouting(t *testing.T) {
	tests := []struct {
		name            string
		profileComplete bool
		wantView        portal.View
	}{
		{name: "complete profile goes to dashboard", profileComplete: true, wantView: portal.ViewDashboard},
		{name: "incomplete profile goes to setup", profileComplete: false, wantView: portal.ViewProfileSetup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, store, _ := setup(t)
			acc := testutil.CreateAccount(t, store, "s@x.com", "S", "pwd", portal.UserTypeStudent, tt.profileComplete)

			app.Login(portal.UserTypeStudent, acc)

			assert.Equal(t, tt.wantView, app.View())
			assert.Equal(t, "s@x.com", app.Session().Account.Email)
		})
	}
}

func Test_App_updateProfileKeepsView(t *testing.T) {
	app, store, _ := setup(t)
	ctx := context.Background()
	acc := testutil.CreateAccount(t, store, "s@x.com", "S", "pwd", portal.UserTypeStudent, true)
	require.NoError(t, app.Hydrate(ctx))

	app.Login(portal.UserTypeStudent, acc)
	app.ShowProfile()

	require.NoError(t, app.UpdateProfile(ctx, portal.Patch{"phone": "9111111111"}))

	assert.Equal(t, portal.ViewProfile, app.View())
	assert.Equal(t, "9111111111", app.Session().Account.Phone)
	// the in-memory mirror is refreshed in place
	for _, a := range app.Accounts() {
		if a.Email == "s@x.com" {
			assert.Equal(t, "9111111111", a.Phone)
		}
	}
}

func Test_App_createStudentAccountSkipsSetup(t *testing.T) {
	app, _, _ := setup(t)

	created, err := app.CreateStudentAccount(context.Background(), portal.NewAccount{
		Email:    "new@x.com",
		Password: "pwd",
		Name:     "New Student",
		UserType: portal.UserTypeAdmin, // forced back to student
	})
	require.NoError(t, err)

	assert.Equal(t, portal.UserTypeStudent, created.UserType)
	assert.True(t, created.ProfileComplete)
	assert.Equal(t, portal.ViewLogin, app.View()) // no view transition
}

func Test_App_logoutClearsSession(t *testing.T) {
	app, store, _ := setup(t)
	acc := testutil.CreateAccount(t, store, "s@x.com", "S", "pwd", portal.UserTypeStudent, true)

	app.Login(portal.UserTypeStudent, acc)
	app.Logout()

	assert.Equal(t, portal.ViewLogin, app.View())
	assert.Nil(t, app.Session().Account)
	assert.Empty(t, app.Session().UserType)
}

func Test_App_collectionCallbacksMirrorLocally(t *testing.T) {
	app, _, mirror := setup(t)
	ctx := context.Background()

	projects := []portal.Project{{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}}
	app.SetProjects(projects)

	assert.Equal(t, projects, app.Projects())
	mirrored, err := mirror.Projects(ctx)
	require.NoError(t, err)
	assert.Equal(t, projects, mirrored)

	tasks := []portal.Task{{ID: 1, Title: "T"}}
	app.SetTasks(tasks)
	mirroredTasks, err := mirror.Tasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, tasks, mirroredTasks)
}

// flakyStore serves one successful hydration, then loses its account fetch.
type flakyStore struct {
	portal.Store
	calls int
}

func (s *flakyStore) Accounts(ctx context.Context) ([]portal.Account, error) {
	s.calls++
	if s.calls > 1 {
		return nil, errors.New("network down")
	}
	return s.Store.Accounts(ctx)
}

func Test_App_hydrateFailureKeepsMirrors(t *testing.T) {
	store := &flakyStore{Store: dummystore.Open()}
	app := portal.NewApp(store, dummystore.OpenEmpty(), testutil.NewLogger())
	ctx := context.Background()

	require.NoError(t, app.Hydrate(ctx))
	before := app.Accounts()
	require.NotEmpty(t, before)

	// the second hydration fails wholesale; in-memory mirrors are untouched
	assert.Error(t, app.Hydrate(ctx))
	assert.Equal(t, before, app.Accounts())
}
