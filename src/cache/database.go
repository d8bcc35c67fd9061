package cache

import (
	"context"
	"database/sql"
	"runtime"
)

// databaseExecutable is the type used for passing "work unit" to the
// databaseWorker. Every function which wants to do something with the index
// creates one and sends it to the databaseWorker for execution.
type databaseExecutable func(db *sql.DB) error

// databaseWorker executes the database jobs one after another until the store
// is closed.
func (s *Store) databaseWorker() {
	defer close(s.workerDone)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		select {
		case executable := <-s.dbExecutes:
			_ = executable(s.db)
		case <-s.ctx.Done():
			return
		}
	}
}

// executeDBJob hands the executable to the worker. The possible errors are
// from a closed store or a done ctx, in which case the job is not executed.
func (s *Store) executeDBJob(ctx context.Context, executable databaseExecutable) error {
	select {
	case s.dbExecutes <- executable:
		return nil
	case <-s.ctx.Done():
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// executeDBJobAndWait executes the `executable`, waits for it to finish. Then
// returns its error. Once accepted by the worker a job always runs to its end.
func (s *Store) executeDBJobAndWait(
	ctx context.Context,
	executable databaseExecutable,
) error {
	var executableErr error
	done := make(chan struct{})

	work := func(db *sql.DB) error {
		defer close(done)
		executableErr = executable(db)
		return nil
	}

	if err := s.executeDBJob(ctx, work); err != nil {
		return err
	}

	<-done
	return executableErr
}
