// Package watch drives continuous validation.
//
// Watcher wraps fsnotify. It watches files and directory trees, follows
// directories created after it started, filters events by file extension,
// and debounces bursts of events (editors often write a file several times
// on save) into sorted batches of changed paths.
//
// Scheduler wraps robfig/cron for periodic work such as full rescans and
// history pruning. Jobs use standard five-field cron expressions.
//
// # Usage
//
//	w, err := watch.NewWatcher(watch.Config{
//		Paths:      []string{"GameData"},
//		Debounce:   250 * time.Millisecond,
//		Extensions: []string{".cfg"},
//	}, logger)
//	if err != nil {
//		return err
//	}
//	return w.Watch(ctx, func(ctx context.Context, paths []string) {
//		revalidate(ctx, paths)
//	})
package watch
