// Package history records analyze runs and their enriched games in SQLite so
// earlier reports can be summarised without rescanning the game files.
//
// Each run gets a row in runs keyed by its UUID, and every classified game is
// stored in games in the order it was written to the CSV. Schema changes bump
// schemaVersion in schema.go; users delete the database to adopt the new
// schema.
package history
