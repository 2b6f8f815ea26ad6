package dummystore

import (
	"context"
	"sync"

	"github.com/Ramcharan123-lang/hackthon/core/portal"
)

// Store is an in-memory portal.Store used in tests and as a throwaway
// backend. Same semantics as the real backends.
type Store struct {
	mu sync.RWMutex

	accounts    []portal.Account
	projects    []portal.Project
	submissions []portal.Submission
	tasks       []portal.Task
	messages    []portal.Message
}

var (
	_ portal.Store  = (*Store)(nil)
	_ portal.Mirror = (*Store)(nil)
)

func Open() *Store {
	return &Store{accounts: portal.MergeBootstrap(nil)}
}

// OpenEmpty skips the bootstrap seed; handy for id-assignment tests.
func OpenEmpty() *Store {
	return &Store{}
}

func (s *Store) Accounts(_ context.Context) ([]portal.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]portal.Account(nil), s.accounts...), nil
}

func (s *Store) CreateAccount(_ context.Context, acc portal.Account) (portal.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, len(s.accounts))
	for i, a := range s.accounts {
		if a.Email == acc.Email {
			return portal.Account{}, portal.ErrEmailExists
		}
		ids[i] = a.ID
	}
	acc.ID = portal.NextID(ids)
	s.accounts = append(s.accounts, acc)
	return acc, nil
}

func (s *Store) UpdateAccount(_ context.Context, email string, patch portal.Patch) (portal.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, acc := range s.accounts {
		if acc.Email == email {
			if err := portal.ApplyPatch(&acc, patch); err != nil {
				return portal.Account{}, err
			}
			s.accounts[i] = acc
			return acc, nil
		}
	}
	return portal.Account{}, portal.ErrNotFound
}

func (s *Store) Projects(_ context.Context) ([]portal.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]portal.Project(nil), s.projects...), nil
}

func (s *Store) CreateProject(_ context.Context, prj portal.Project) (portal.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, len(s.projects))
	for i, p := range s.projects {
		ids[i] = p.ID
	}
	prj.ID = portal.NextID(ids)
	s.projects = append(s.projects, prj)
	return prj, nil
}

func (s *Store) UpdateProject(_ context.Context, id int, patch portal.Patch) (portal.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, prj := range s.projects {
		if prj.ID == id {
			if err := portal.ApplyPatch(&prj, patch); err != nil {
				return portal.Project{}, err
			}
			s.projects[i] = prj
			return prj, nil
		}
	}
	return portal.Project{}, portal.ErrNotFound
}

func (s *Store) DeleteProject(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.projects[:0]
	for _, prj := range s.projects {
		if prj.ID != id {
			kept = append(kept, prj)
		}
	}
	s.projects = kept
	return nil
}

func (s *Store) Submissions(_ context.Context) ([]portal.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]portal.Submission(nil), s.submissions...), nil
}

func (s *Store) CreateSubmission(_ context.Context, sub portal.Submission) (portal.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, len(s.submissions))
	for i, sb := range s.submissions {
		ids[i] = sb.ID
	}
	sub.ID = portal.NextID(ids)
	s.submissions = append(s.submissions, sub)
	return sub, nil
}

func (s *Store) UpdateSubmission(_ context.Context, id int, patch portal.Patch) (portal.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.submissions {
		if sub.ID == id {
			if err := portal.ApplyPatch(&sub, patch); err != nil {
				return portal.Submission{}, err
			}
			s.submissions[i] = sub
			return sub, nil
		}
	}
	return portal.Submission{}, portal.ErrNotFound
}

func (s *Store) DeleteSubmission(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.submissions[:0]
	for _, sub := range s.submissions {
		if sub.ID != id {
			kept = append(kept, sub)
		}
	}
	s.submissions = kept
	return nil
}

func (s *Store) Tasks(_ context.Context) ([]portal.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]portal.Task(nil), s.tasks...), nil
}

func (s *Store) CreateTask(_ context.Context, tsk portal.Task) (portal.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, len(s.tasks))
	for i, t := range s.tasks {
		ids[i] = t.ID
	}
	tsk.ID = portal.NextID(ids)
	s.tasks = append(s.tasks, tsk)
	return tsk, nil
}

func (s *Store) UpdateTask(_ context.Context, id int, patch portal.Patch) (portal.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tsk := range s.tasks {
		if tsk.ID == id {
			if err := portal.ApplyPatch(&tsk, patch); err != nil {
				return portal.Task{}, err
			}
			s.tasks[i] = tsk
			return tsk, nil
		}
	}
	return portal.Task{}, portal.ErrNotFound
}

func (s *Store) Messages(_ context.Context) ([]portal.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]portal.Message(nil), s.messages...), nil
}

func (s *Store) CreateMessage(_ context.Context, msg portal.Message) (portal.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, len(s.messages))
	for i, m := range s.messages {
		ids[i] = m.ID
	}
	msg.ID = portal.NextID(ids)
	s.messages = append(s.messages, msg)
	return msg, nil
}

// Mirror writes

func (s *Store) PutProjects(projects []portal.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = projects
	return nil
}

func (s *Store) PutSubmissions(submissions []portal.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = submissions
	return nil
}

func (s *Store) PutTasks(tasks []portal.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	return nil
}

func (s *Store) PutMessages(messages []portal.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = messages
	return nil
}
