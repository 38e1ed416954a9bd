package workers

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"community-messaging/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_Supervisor_RestartsOnPanic(t *testing.T) {
	req := require.New(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := gomock.NewController(t)
	worker := mocks.NewMockWorker(ctrl)

	calls := 0
	worker.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			calls++
			panic("boom")
		}).
		AnyTimes()

	sup := NewSupervisor(log, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	go sup.Add(worker).Run(ctx)

	// Leave room for at least one crash and restart cycle.
	time.Sleep(200 * time.Millisecond)

	req.GreaterOrEqual(calls, 2)
}

func Test_Supervisor_StopsAfterSuccess(t *testing.T) {
	req := require.New(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := gomock.NewController(t)
	worker := mocks.NewMockWorker(ctrl)

	// A clean return is final, no restart.
	worker.EXPECT().
		Run(gomock.Any()).
		Return(nil).
		Times(1)

	sup := NewSupervisor(log, 0)

	done := make(chan struct{})
	go func() {
		sup.Add(worker).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		req.Fail("supervisor should stop once its only worker returns nil")
	}
}
