package boltstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/Ramcharan123-lang/hackthon/core/portal"
)

// One bucket, one key per collection, each value the JSON-encoded slice --
// the same layout the browser deployment kept in localStorage.
var (
	bucketCollections = []byte("collections")

	keyAccounts    = []byte("accounts")
	keyProjects    = []byte("projects")
	keySubmissions = []byte("submissions")
	keyTasks       = []byte("tasks")
	keyMessages    = []byte("messages")
)

// Store is the local storage backend, a bbolt database on disk. It doubles as
// the durable mirror for the dashboard collection-edit callbacks.
type Store struct {
	db *bbolt.DB
}

var (
	_ portal.Store  = (*Store)(nil)
	_ portal.Mirror = (*Store)(nil)
)

// Open opens (or creates) the database at path and seeds the bootstrap
// accounts: written outright when no account collection exists, merged into
// whatever is there otherwise.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "opening bolt database")
	}

	s := &Store{db: db}
	if err = s.Seed(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Seed runs the bootstrap merge and makes sure every collection key exists.
// It is idempotent.
func (s *Store) Seed() error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketCollections)
		if err != nil {
			return err
		}

		var accounts []portal.Account
		if err = getIn(tx, keyAccounts, &accounts); err != nil {
			return err
		}
		if err = putIn(tx, keyAccounts, portal.MergeBootstrap(accounts)); err != nil {
			return err
		}

		for _, key := range [][]byte{keyProjects, keySubmissions, keyTasks, keyMessages} {
			if b.Get(key) == nil {
				if err = b.Put(key, []byte("[]")); err != nil {
					return err
				}
			}
		}
		return nil
	})
	return errors.Wrap(err, "seeding bootstrap data")
}

// Accounts

func (s *Store) Accounts(_ context.Context) ([]portal.Account, error) {
	var accounts []portal.Account
	err := s.db.View(func(tx *bbolt.Tx) error {
		return getIn(tx, keyAccounts, &accounts)
	})
	return accounts, err
}

func (s *Store) CreateAccount(_ context.Context, acc portal.Account) (portal.Account, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		var accounts []portal.Account
		if err := getIn(tx, keyAccounts, &accounts); err != nil {
			return err
		}
		ids := make([]int, len(accounts))
		for i, a := range accounts {
			if a.Email == acc.Email {
				return portal.ErrEmailExists
			}
			ids[i] = a.ID
		}
		acc.ID = portal.NextID(ids)
		return putIn(tx, keyAccounts, append(accounts, acc))
	})
	if err != nil {
		return portal.Account{}, err
	}
	return acc, nil
}

func (s *Store) UpdateAccount(_ context.Context, email string, patch portal.Patch) (portal.Account, error) {
	var updated portal.Account
	err := s.db.Update(func(tx *bbolt.Tx) error {
		var accounts []portal.Account
		if err := getIn(tx, keyAccounts, &accounts); err != nil {
			return err
		}
		for i, acc := range accounts {
			if acc.Email == email {
				if err := portal.ApplyPatch(&acc, patch); err != nil {
					return err
				}
				accounts[i], updated = acc, acc
				return putIn(tx, keyAccounts, accounts)
			}
		}
		return portal.ErrNotFound
	})
	return updated, err
}

// Projects

func (s *Store) Projects(_ context.Context) ([]portal.Project, error) {
	var projects []portal.Project
	err := s.db.View(func(tx *bbolt.Tx) error {
		return getIn(tx, keyProjects, &projects)
	})
	return projects, err
}

func (s *Store) CreateProject(_ context.Context, prj portal.Project) (portal.Project, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		var projects []portal.Project
		if err := getIn(tx, keyProjects, &projects); err != nil {
			return err
		}
		ids := make([]int, len(projects))
		for i, p := range projects {
			ids[i] = p.ID
		}
		prj.ID = portal.NextID(ids)
		return putIn(tx, keyProjects, append(projects, prj))
	})
	if err != nil {
		return portal.Project{}, err
	}
	return prj, nil
}

func (s *Store) UpdateProject(_ context.Context, id int, patch portal.Patch) (portal.Project, error) {
	var updated portal.Project
	err := s.db.Update(func(tx *bbolt.Tx) error {
		var projects []portal.Project
		if err := getIn(tx, keyProjects, &projects); err != nil {
			return err
		}
		for i, prj := range projects {
			if prj.ID == id {
				if err := portal.ApplyPatch(&prj, patch); err != nil {
					return err
				}
				projects[i], updated = prj, prj
				return putIn(tx, keyProjects, projects)
			}
		}
		return portal.ErrNotFound
	})
	return updated, err
}

func (s *Store) DeleteProject(_ context.Context, id int) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		var projects []portal.Project
		if err := getIn(tx, keyProjects, &projects); err != nil {
			return err
		}
		kept := projects[:0]
		for _, prj := range projects {
			if prj.ID != id {
				kept = append(kept, prj)
			}
		}
		return putIn(tx, keyProjects, kept)
	})
}

// Submissions

func (s *Store) Submissions(_ context.Context) ([]portal.Submission, error) {
	var submissions []portal.Submission
	err := s.db.View(func(tx *bbolt.Tx) error {
		return getIn(tx, keySubmissions, &submissions)
	})
	return submissions, err
}

func (s *Store) CreateSubmission(_ context.Context, sub portal.Submission) (portal.Submission, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		var submissions []portal.Submission
		if err := getIn(tx, keySubmissions, &submissions); err != nil {
			return err
		}
		ids := make([]int, len(submissions))
		for i, sb := range submissions {
			ids[i] = sb.ID
		}
		sub.ID = portal.NextID(ids)
		return putIn(tx, keySubmissions, append(submissions, sub))
	})
	if err != nil {
		return portal.Submission{}, err
	}
	return sub, nil
}

func (s *Store) UpdateSubmission(_ context.Context, id int, patch portal.Patch) (portal.Submission, error) {
	var updated portal.Submission
	err := s.db.Update(func(tx *bbolt.Tx) error {
		var submissions []portal.Submission
		if err := getIn(tx, keySubmissions, &submissions); err != nil {
			return err
		}
		for i, sub := range submissions {
			if sub.ID == id {
				if err := portal.ApplyPatch(&sub, patch); err != nil {
					return err
				}
				submissions[i], updated = sub, sub
				return putIn(tx, keySubmissions, submissions)
			}
		}
		return portal.ErrNotFound
	})
	return updated, err
}

func (s *Store) DeleteSubmission(_ context.Context, id int) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		var submissions []portal.Submission
		if err := getIn(tx, keySubmissions, &submissions); err != nil {
			return err
		}
		kept := submissions[:0]
		for _, sub := range submissions {
			if sub.ID != id {
				kept = append(kept, sub)
			}
		}
		return putIn(tx, keySubmissions, kept)
	})
}

// Tasks

func (s *Store) Tasks(_ context.Context) ([]portal.Task, error) {
	var tasks []portal.Task
	err := s.db.View(func(tx *bbolt.Tx) error {
		return getIn(tx, keyTasks, &tasks)
	})
	return tasks, err
}

func (s *Store) CreateTask(_ context.Context, tsk portal.Task) (portal.Task, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		var tasks []portal.Task
		if err := getIn(tx, keyTasks, &tasks); err != nil {
			return err
		}
		ids := make([]int, len(tasks))
		for i, t := range tasks {
			ids[i] = t.ID
		}
		tsk.ID = portal.NextID(ids)
		return putIn(tx, keyTasks, append(tasks, tsk))
	})
	if err != nil {
		return portal.Task{}, err
	}
	return tsk, nil
}

func (s *Store) UpdateTask(_ context.Context, id int, patch portal.Patch) (portal.Task, error) {
	var updated portal.Task
	err := s.db.Update(func(tx *bbolt.Tx) error {
		var tasks []portal.Task
		if err := getIn(tx, keyTasks, &tasks); err != nil {
			return err
		}
		for i, tsk := range tasks {
			if tsk.ID == id {
				if err := portal.ApplyPatch(&tsk, patch); err != nil {
					return err
				}
				tasks[i], updated = tsk, tsk
				return putIn(tx, keyTasks, tasks)
			}
		}
		return portal.ErrNotFound
	})
	return updated, err
}

// Messages

func (s *Store) Messages(_ context.Context) ([]portal.Message, error) {
	var messages []portal.Message
	err := s.db.View(func(tx *bbolt.Tx) error {
		return getIn(tx, keyMessages, &messages)
	})
	return messages, err
}

func (s *Store) CreateMessage(_ context.Context, msg portal.Message) (portal.Message, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		var messages []portal.Message
		if err := getIn(tx, keyMessages, &messages); err != nil {
			return err
		}
		ids := make([]int, len(messages))
		for i, m := range messages {
			ids[i] = m.ID
		}
		msg.ID = portal.NextID(ids)
		return putIn(tx, keyMessages, append(messages, msg))
	})
	if err != nil {
		return portal.Message{}, err
	}
	return msg, nil
}

// Mirror writes (dashboard collection-edit callbacks)

func (s *Store) PutProjects(projects []portal.Project) error {
	return s.putAll(keyProjects, projects)
}

func (s *Store) PutSubmissions(submissions []portal.Submission) error {
	return s.putAll(keySubmissions, submissions)
}

func (s *Store) PutTasks(tasks []portal.Task) error {
	return s.putAll(keyTasks, tasks)
}

func (s *Store) PutMessages(messages []portal.Message) error {
	return s.putAll(keyMessages, messages)
}

func (s *Store) putAll(key []byte, v interface{}) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return putIn(tx, key, v)
	})
}

// tx helpers

func getIn(tx *bbolt.Tx, key []byte, v interface{}) error {
	b := tx.Bucket(bucketCollections)
	if b == nil {
		return nil
	}
	data := b.Get(key)
	if data == nil {
		return nil
	}
	return errors.Wrapf(json.Unmarshal(data, v), "decoding %s", key)
}

func putIn(tx *bbolt.Tx, key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}
	// a nil slice must not demote the stored value to JSON null
	if string(data) == "null" {
		data = []byte("[]")
	}
	return tx.Bucket(bucketCollections).Put(key, data)
}
