package reststore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Ramcharan123-lang/hackthon/core"
	"github.com/Ramcharan123-lang/hackthon/core/portal"
)

// envelope is the wire shape shared by every endpoint:
// {success, error?, <resource>?}.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	Accounts    []portal.Account    `json:"accounts,omitempty"`
	Account     *portal.Account     `json:"account,omitempty"`
	Projects    []portal.Project    `json:"projects,omitempty"`
	Project     *portal.Project     `json:"project,omitempty"`
	Submissions []portal.Submission `json:"submissions,omitempty"`
	Submission  *portal.Submission  `json:"submission,omitempty"`
	Tasks       []portal.Task       `json:"tasks,omitempty"`
	Task        *portal.Task        `json:"task,omitempty"`
	Messages    []portal.Message    `json:"messages,omitempty"`
	Message     *portal.Message     `json:"message,omitempty"`
}

// Store is the remote storage backend: an authenticated JSON client against
// the portal API, returning the exact same results as the local backend.
type Store struct {
	client   *http.Client
	baseURL  string
	token    string
	clientID string // per-process, for server-side request correlation
}

var _ portal.Store = (*Store)(nil)

func NewStore(conf *core.Config) *Store {
	return &Store{
		client:   &http.Client{Timeout: conf.API.Timeout},
		baseURL:  strings.TrimRight(conf.API.BaseURL, "/"),
		token:    conf.API.Token,
		clientID: uuid.NewString(),
	}
}

func (s *Store) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "%s %s: encoding body", method, path)
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, buf)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("X-Client-ID", s.clientID)

	res, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer func() { _ = res.Body.Close() }()

	var env envelope
	decodeErr := json.NewDecoder(res.Body).Decode(&env)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		if res.StatusCode == http.StatusNotFound {
			return nil, portal.ErrNotFound
		}
		msg := res.Status
		if decodeErr == nil && env.Error != "" {
			msg = env.Error
		}
		return nil, errors.Errorf("%s %s: %s", method, path, msg)
	}
	if decodeErr != nil {
		return nil, errors.Wrapf(decodeErr, "%s %s: decoding response", method, path)
	}
	if !env.Success {
		if env.Error == portal.ErrEmailExists.Error() {
			return nil, portal.ErrEmailExists
		}
		return nil, errors.Errorf("%s %s: %s", method, path, env.Error)
	}
	return &env, nil
}

// Accounts

func (s *Store) Accounts(ctx context.Context) ([]portal.Account, error) {
	env, err := s.do(ctx, http.MethodGet, "/accounts", nil)
	if err != nil {
		return nil, err
	}
	return env.Accounts, nil
}

func (s *Store) CreateAccount(ctx context.Context, acc portal.Account) (portal.Account, error) {
	env, err := s.do(ctx, http.MethodPost, "/accounts", acc)
	if err != nil {
		return portal.Account{}, err
	}
	if env.Account == nil {
		return portal.Account{}, errors.New("POST /accounts: missing account in response")
	}
	return *env.Account, nil
}

func (s *Store) UpdateAccount(ctx context.Context, email string, patch portal.Patch) (portal.Account, error) {
	env, err := s.do(ctx, http.MethodPut, "/accounts/"+url.PathEscape(email), patch)
	if err != nil {
		return portal.Account{}, err
	}
	if env.Account == nil {
		return portal.Account{}, portal.ErrNotFound
	}
	return *env.Account, nil
}

// Projects

func (s *Store) Projects(ctx context.Context) ([]portal.Project, error) {
	env, err := s.do(ctx, http.MethodGet, "/projects", nil)
	if err != nil {
		return nil, err
	}
	return env.Projects, nil
}

func (s *Store) CreateProject(ctx context.Context, prj portal.Project) (portal.Project, error) {
	env, err := s.do(ctx, http.MethodPost, "/projects", prj)
	if err != nil {
		return portal.Project{}, err
	}
	if env.Project == nil {
		return portal.Project{}, errors.New("POST /projects: missing project in response")
	}
	return *env.Project, nil
}

func (s *Store) UpdateProject(ctx context.Context, id int, patch portal.Patch) (portal.Project, error) {
	env, err := s.do(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", id), patch)
	if err != nil {
		return portal.Project{}, err
	}
	if env.Project == nil {
		return portal.Project{}, portal.ErrNotFound
	}
	return *env.Project, nil
}

func (s *Store) DeleteProject(ctx context.Context, id int) error {
	_, err := s.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil)
	return err
}

// Submissions

func (s *Store) Submissions(ctx context.Context) ([]portal.Submission, error) {
	env, err := s.do(ctx, http.MethodGet, "/submissions", nil)
	if err != nil {
		return nil, err
	}
	return env.Submissions, nil
}

func (s *Store) CreateSubmission(ctx context.Context, sub portal.Submission) (portal.Submission, error) {
	env, err := s.do(ctx, http.MethodPost, "/submissions", sub)
	if err != nil {
		return portal.Submission{}, err
	}
	if env.Submission == nil {
		return portal.Submission{}, errors.New("POST /submissions: missing submission in response")
	}
	return *env.Submission, nil
}

func (s *Store) UpdateSubmission(ctx context.Context, id int, patch portal.Patch) (portal.Submission, error) {
	env, err := s.do(ctx, http.MethodPut, fmt.Sprintf("/submissions/%d", id), patch)
	if err != nil {
		return portal.Submission{}, err
	}
	if env.Submission == nil {
		return portal.Submission{}, portal.ErrNotFound
	}
	return *env.Submission, nil
}

func (s *Store) DeleteSubmission(ctx context.Context, id int) error {
	_, err := s.do(ctx, http.MethodDelete, fmt.Sprintf("/submissions/%d", id), nil)
	return err
}

// Tasks

func (s *Store) Tasks(ctx context.Context) ([]portal.Task, error) {
	env, err := s.do(ctx, http.MethodGet, "/tasks", nil)
	if err != nil {
		return nil, err
	}
	return env.Tasks, nil
}

func (s *Store) CreateTask(ctx context.Context, tsk portal.Task) (portal.Task, error) {
	env, err := s.do(ctx, http.MethodPost, "/tasks", tsk)
	if err != nil {
		return portal.Task{}, err
	}
	if env.Task == nil {
		return portal.Task{}, errors.New("POST /tasks: missing task in response")
	}
	return *env.Task, nil
}

func (s *Store) UpdateTask(ctx context.Context, id int, patch portal.Patch) (portal.Task, error) {
	env, err := s.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), patch)
	if err != nil {
		return portal.Task{}, err
	}
	if env.Task == nil {
		return portal.Task{}, portal.ErrNotFound
	}
	return *env.Task, nil
}

// Messages

func (s *Store) Messages(ctx context.Context) ([]portal.Message, error) {
	env, err := s.do(ctx, http.MethodGet, "/messages", nil)
	if err != nil {
		return nil, err
	}
	return env.Messages, nil
}

func (s *Store) CreateMessage(ctx context.Context, msg portal.Message) (portal.Message, error) {
	env, err := s.do(ctx, http.MethodPost, "/messages", msg)
	if err != nil {
		return portal.Message{}, err
	}
	if env.Message == nil {
		return portal.Message{}, errors.New("POST /messages: missing message in response")
	}
	return *env.Message, nil
}
