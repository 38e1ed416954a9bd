//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"community-messaging/domain/messaging"
	"context"
	"reflect"

	"github.com/google/uuid"
)

// IUserDirectory is the external user-directory collaborator. The core calls
// it for display names and avatars on enrichment and for existence/active
// checks when validating participant references. It never owns user data.
type IUserDirectory interface {
	Profile(ctx context.Context, id uuid.UUID) (messaging.UserProfile, error)
	Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]messaging.UserProfile, error)
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// initialization or lifecycle events, avoiding the need for manual naming in
// the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
