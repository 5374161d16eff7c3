// Package review drives an interactive conventional-commit session.
//
// A Controller walks the user through staging, the commit fields, a review
// menu where any field can be revised, the commit itself and an optional
// push. Every collaborator is an interface so the whole flow can run
// against scripted answers:
//
//	ctrl := review.New(terminal, review.Options{Catalog: cfg.Catalog()}, review.Deps{
//		Changes:   repo,
//		Committer: repo,
//		Pusher:    repo,
//	})
//	result, err := ctrl.Run(ctx)
//	if errors.Is(err, review.ErrQuit) {
//		return nil
//	}
//
// Validation errors from the builder never end a session. The controller
// shows the error and asks again for the field the error names.
package review
