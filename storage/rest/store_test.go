package reststore

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/Ramcharan123-lang/hackthon/apps/api/echo"
	"github.com/Ramcharan123-lang/hackthon/core"
	"github.com/Ramcharan123-lang/hackthon/core/portal"
	dummystore "github.com/Ramcharan123-lang/hackthon/storage/dummy"
	testutil "github.com/Ramcharan123-lang/hackthon/tests"
)

const testToken = "test-token"

// setup runs the real portal API over a dummy store and points the client at
// it: the cheapest way to prove both backends stay interchangeable.
func setup(t *testing.T) (*Store, *dummystore.Store) {
	t.Helper()

	store := dummystore.Open()
	validate, translator := core.NewValidator()
	srv := echoapi.NewServer(&echoapi.Options{
		Addr:           ":0",
		Token:          testToken,
		TestMode:       true,
		DisableReqLogs: true,
		Store:          store,
		Validate:       validate,
		Translator:     translator,
		Logger:         testutil.NewLogger(),
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	conf := &core.Config{}
	conf.API.BaseURL = ts.URL
	conf.API.Token = testToken
	conf.API.Timeout = 5 * time.Second
	return NewStore(conf), store
}

func Test_Accounts_matchesLocalBackend(t *testing.T) {
	remote, local := setup(t)
	ctx := context.Background()

	fromRemote, err := remote.Accounts(ctx)
	require.NoError(t, err)
	fromLocal, err := local.Accounts(ctx)
	require.NoError(t, err)

	assert.Equal(t, fromLocal, fromRemote)
}

func Test_CreateAccount(t *testing.T) {
	remote, _ := setup(t)
	ctx := context.Background()

	acc, err := remote.CreateAccount(ctx, portal.Account{
		Email:    "a@x.com",
		Password: "pwd",
		UserType: portal.UserTypeStudent,
		Name:     "A",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, acc.ID)

	_, err = remote.CreateAccount(ctx, portal.Account{
		Email:    "a@x.com",
		Password: "other",
		UserType: portal.UserTypeStudent,
		Name:     "A2",
	})
	assert.Equal(t, portal.ErrEmailExists, errors.Cause(err))
}

func Test_UpdateAccount(t *testing.T) {
	remote, _ := setup(t)
	ctx := context.Background()

	acc, err := remote.UpdateAccount(ctx, "rahul123@gmail.com", portal.Patch{"phone": "9000000001"})
	require.NoError(t, err)
	assert.Equal(t, "9000000001", acc.Phone)
	assert.Equal(t, "Rahul", acc.Name)

	_, err = remote.UpdateAccount(ctx, "ghost@x.com", portal.Patch{"phone": "1"})
	assert.Equal(t, portal.ErrNotFound, errors.Cause(err))
}

func Test_projectLifecycle(t *testing.T) {
	remote, local := setup(t)
	ctx := context.Background()

	prj, err := remote.CreateProject(ctx, portal.Project{Title: "One"})
	require.NoError(t, err)
	assert.Equal(t, 1, prj.ID)

	prj, err = remote.UpdateProject(ctx, prj.ID, portal.Patch{"status": "closed"})
	require.NoError(t, err)
	assert.Equal(t, "closed", prj.Status)

	_, err = remote.UpdateProject(ctx, 99, portal.Patch{"status": "x"})
	assert.Equal(t, portal.ErrNotFound, errors.Cause(err))

	// idempotent delete, straight through to the backing store
	require.NoError(t, remote.DeleteProject(ctx, 99))
	require.NoError(t, remote.DeleteProject(ctx, prj.ID))
	projects, err := local.Projects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func Test_tasksAndMessages(t *testing.T) {
	remote, _ := setup(t)
	ctx := context.Background()

	tsk, err := remote.CreateTask(ctx, portal.Task{Title: "T"})
	require.NoError(t, err)
	tsk, err = remote.UpdateTask(ctx, tsk.ID, portal.Patch{"completed": true})
	require.NoError(t, err)
	assert.True(t, tsk.Completed)

	msg, err := remote.CreateMessage(ctx, portal.Message{From: "a@x.com", Body: "hi"})
	require.NoError(t, err)
	assert.Equal(t, 1, msg.ID)

	messages, err := remote.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Body)
}

func Test_badToken(t *testing.T) {
	remote, _ := setup(t)
	remote.token = "wrong"

	_, err := remote.Accounts(context.Background())
	assert.Error(t, err)
}

func Test_transportFailure(t *testing.T) {
	remote, _ := setup(t)
	remote.baseURL = "http://127.0.0.1:1" // nothing listens here

	_, err := remote.Accounts(context.Background())
	assert.Error(t, err)
}
