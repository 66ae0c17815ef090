// Package history records validation runs so that failures can be reviewed
// after the fact.
//
// A Run holds the counts of one validate invocation (or one revalidation
// in watch mode) and the failing files with the position of their first
// error. Runs are stored through the Store interface:
//
//   - SQLiteStore persists runs in a SQLite database, using either the
//     pure Go driver ("sqlite", modernc.org/sqlite) or the cgo driver
//     ("sqlite3", github.com/mattn/go-sqlite3).
//   - MemoryStore keeps runs in memory, for tests and one-shot use.
//
// Open selects a backend from config.HistoryConfig. Pruner enforces the
// retention period and is normally run from the watch scheduler or from
// "mmcfg history prune".
//
// # Usage
//
//	store, err := history.Open(cfg.History)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	run := history.NewRun(time.Now())
//	// ... validate files ...
//	run.FinishedAt = time.Now()
//	if err := store.Record(ctx, run); err != nil {
//		return err
//	}
package history
