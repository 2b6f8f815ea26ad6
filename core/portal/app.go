package portal

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Ramcharan123-lang/hackthon/core"
)

// Views
type View string

const (
	ViewLogin        View = "login"
	ViewRegistration View = "registration"
	ViewProfileSetup View = "profileSetup"
	ViewProfile      View = "profile"
	ViewDashboard    View = "dashboard"
)

var errNoSession = errors.New("no active session")

// Session is the transient identity/role pair of the active user. It is never
// persisted and is destroyed on logout.
type Session struct {
	UserType string
	Account  *Account
}

// App is the view controller: it owns the current Session, the view selector
// and an in-memory mirror of each collection, and mediates every transition
// between the login, registration, profile-setup, profile and dashboard
// screens. All operations run on a single UI event loop; App is not safe for
// concurrent use.
type App struct {
	store    Store
	mirror   Mirror
	log      core.Logger
	validate *validator.Validate

	view    View
	session Session

	accounts    []Account
	projects    []Project
	submissions []Submission
	tasks       []Task
	messages    []Message
}

func NewApp(store Store, mirror Mirror, log core.Logger) *App {
	validate, _ := core.NewValidator()
	return &App{
		store:    store,
		mirror:   mirror,
		log:      log,
		validate: validate,
		view:     ViewLogin,
	}
}

// Hydrate fetches all five collections concurrently and waits for all of them
// before any view renders. If any fetch fails the whole hydration is
// abandoned and the mirrors keep whatever they already hold (degraded start,
// no retry).
func (app *App) Hydrate(ctx context.Context) error {
	var (
		accounts    []Account
		projects    []Project
		submissions []Submission
		tasks       []Task
		messages    []Message
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { accounts, err = app.store.Accounts(ctx); return })
	g.Go(func() (err error) { projects, err = app.store.Projects(ctx); return })
	g.Go(func() (err error) { submissions, err = app.store.Submissions(ctx); return })
	g.Go(func() (err error) { tasks, err = app.store.Tasks(ctx); return })
	g.Go(func() (err error) { messages, err = app.store.Messages(ctx); return })
	if err := g.Wait(); err != nil {
		app.log.Error("hydration failed; starting from the local mirror", err)
		return errors.Wrap(err, "hydrating collections")
	}

	app.accounts = accounts
	app.projects = projects
	app.submissions = submissions
	app.tasks = tasks
	app.messages = messages
	return nil
}

// State accessors

func (app *App) View() View          { return app.view }
func (app *App) Session() Session    { return app.session }
func (app *App) Accounts() []Account { return app.accounts }
func (app *App) Projects() []Project { return app.projects }

func (app *App) Submissions() []Submission { return app.submissions }
func (app *App) Tasks() []Task             { return app.tasks }
func (app *App) Messages() []Message       { return app.messages }

// Pure view moves

func (app *App) ShowRegistration() { app.view = ViewRegistration }
func (app *App) BackToLogin()      { app.view = ViewLogin }
func (app *App) ShowProfile()      { app.view = ViewProfile }
func (app *App) BackToDashboard()  { app.view = ViewDashboard }

// Register validates the registration form and creates an account for the
// given role with an incomplete profile. On success the new identity becomes
// the session and the view moves to profile setup; on failure (an invalid
// form, a duplicate email) the view stays put and the error is surfaced to
// the caller. Validating here keeps the local backend as strict as the
// remote one, whose server rejects bad input itself.
func (app *App) Register(ctx context.Context, userType string, na NewAccount) error {
	na.UserType = userType
	na.ProfileComplete = false
	if err := na.Validate(app.validate); err != nil {
		return err
	}

	created, err := app.store.CreateAccount(ctx, na.Account())
	if err != nil {
		return err
	}

	app.accounts = append(app.accounts, created)
	app.session = Session{UserType: userType, Account: &created}
	app.view = ViewProfileSetup
	return nil
}

// Login installs an already-matched account as the session; credential
// matching is the login screen's responsibility. Accounts with an incomplete
// profile are routed to profile setup, the rest straight to the dashboard.
func (app *App) Login(userType string, acc Account) {
	app.session = Session{UserType: userType, Account: &acc}
	if !acc.ProfileComplete {
		app.view = ViewProfileSetup
	} else {
		app.view = ViewDashboard
	}
}

// CompleteProfileSetup merges the role-specific profile fields into the
// session account, marks the profile complete and clears the average grade
// (grades are admin-assigned, never student-set). The view only moves to the
// dashboard once the update persisted.
func (app *App) CompleteProfileSetup(ctx context.Context, profile Patch) error {
	if app.session.Account == nil {
		return errNoSession
	}

	patch := make(Patch, len(profile)+2)
	for k, v := range profile {
		patch[k] = v
	}
	patch["profileComplete"] = true
	patch["averageGrade"] = nil

	updated, err := app.store.UpdateAccount(ctx, app.session.Account.Email, patch)
	if err != nil {
		return err
	}

	app.refreshAccount(updated)
	app.view = ViewDashboard
	return nil
}

// UpdateProfile persists post-setup profile edits and refreshes the session
// and mirror in place. The current view is kept.
func (app *App) UpdateProfile(ctx context.Context, patch Patch) error {
	if app.session.Account == nil {
		return errNoSession
	}

	updated, err := app.store.UpdateAccount(ctx, app.session.Account.Email, patch)
	if err != nil {
		return err
	}

	app.refreshAccount(updated)
	return nil
}

// CreateStudentAccount is the admin-initiated account creation: the role is
// forced to student and the profile marked complete, skipping the setup step.
func (app *App) CreateStudentAccount(ctx context.Context, na NewAccount) (Account, error) {
	na.UserType = UserTypeStudent
	na.ProfileComplete = true
	if err := na.Validate(app.validate); err != nil {
		return Account{}, err
	}

	created, err := app.store.CreateAccount(ctx, na.Account())
	if err != nil {
		return Account{}, err
	}

	app.accounts = append(app.accounts, created)
	return created, nil
}

// Logout clears the session unconditionally and returns to the login view.
func (app *App) Logout() {
	app.session = Session{}
	app.view = ViewLogin
}

// Collection edit callbacks: a dashboard hands back the full replacement
// slice; it replaces the in-memory mirror and is written wholesale to the
// durable local store, regardless of the active Store backend. Write failures
// are logged, not reported back.

func (app *App) SetProjects(projects []Project) {
	app.projects = projects
	if err := app.mirror.PutProjects(projects); err != nil {
		app.log.Error("mirroring projects", err)
	}
}

func (app *App) SetSubmissions(submissions []Submission) {
	app.submissions = submissions
	if err := app.mirror.PutSubmissions(submissions); err != nil {
		app.log.Error("mirroring submissions", err)
	}
}

func (app *App) SetTasks(tasks []Task) {
	app.tasks = tasks
	if err := app.mirror.PutTasks(tasks); err != nil {
		app.log.Error("mirroring tasks", err)
	}
}

func (app *App) SetMessages(messages []Message) {
	app.messages = messages
	if err := app.mirror.PutMessages(messages); err != nil {
		app.log.Error("mirroring messages", err)
	}
}

func (app *App) refreshAccount(updated Account) {
	app.session.Account = &updated
	for i, acc := range app.accounts {
		if acc.Email == updated.Email {
			app.accounts[i] = updated
			break
		}
	}
}
