package portal

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned by update operations on a missing key.
	ErrNotFound = errors.New("record not found")
	// ErrEmailExists is a normal failure result of account creation, not a fault.
	ErrEmailExists = errors.New("Email already exists")
)

type (
	// Patch is a shallow merge applied to a stored record: fields present in
	// the patch overwrite the record's, all others are retained.
	Patch map[string]interface{}

	// Store is the storage gateway contract over the five portal collections.
	// Implementations (local bbolt, remote HTTP, in-memory) must be
	// behaviorally interchangeable: create assigns id = max(existing)+1,
	// account creation enforces email uniqueness, update on a missing key
	// returns ErrNotFound and delete is an idempotent no-op on a missing id.
	Store interface {
		Accounts(ctx context.Context) ([]Account, error)
		CreateAccount(ctx context.Context, acc Account) (Account, error)
		UpdateAccount(ctx context.Context, email string, patch Patch) (Account, error)

		Projects(ctx context.Context) ([]Project, error)
		CreateProject(ctx context.Context, prj Project) (Project, error)
		UpdateProject(ctx context.Context, id int, patch Patch) (Project, error)
		DeleteProject(ctx context.Context, id int) error

		Submissions(ctx context.Context) ([]Submission, error)
		CreateSubmission(ctx context.Context, sub Submission) (Submission, error)
		UpdateSubmission(ctx context.Context, id int, patch Patch) (Submission, error)
		DeleteSubmission(ctx context.Context, id int) error

		Tasks(ctx context.Context) ([]Task, error)
		CreateTask(ctx context.Context, tsk Task) (Task, error)
		UpdateTask(ctx context.Context, id int, patch Patch) (Task, error)

		Messages(ctx context.Context) ([]Message, error)
		CreateMessage(ctx context.Context, msg Message) (Message, error)
	}

	// Mirror is the durable local sink for the dashboard collection-edit
	// callbacks. Whole collections are written as-is, independently of which
	// Store backend is active.
	Mirror interface {
		PutProjects(projects []Project) error
		PutSubmissions(submissions []Submission) error
		PutTasks(tasks []Task) error
		PutMessages(messages []Message) error
	}
)

// ApplyPatch shallow-merges patch into rec (a struct pointer) through a JSON
// round-trip, so patch keys use the records' wire names. Applying the same
// patch twice yields the same record.
func ApplyPatch(rec interface{}, patch Patch) error {
	base, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "marshalling record")
	}
	var merged map[string]interface{}
	if err = json.Unmarshal(base, &merged); err != nil {
		return errors.Wrap(err, "unmarshalling record")
	}
	for k, v := range patch {
		merged[k] = v
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return errors.Wrap(err, "marshalling patched record")
	}
	return errors.Wrap(json.Unmarshal(data, rec), "unmarshalling patched record")
}

// NextID assigns ids the way the original deployment did: max of the existing
// ids (0 when the collection is empty) plus one.
func NextID(ids []int) int {
	var max int
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
