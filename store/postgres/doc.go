// Package postgres classifies PostgreSQL errors raised by steps that use
// pgx/v5.
//
//	eng := engine.New(engine.WithClassifier(postgres.Classifier{}))
//
// Constraint violations become a [Violation] subject carrying the SQLSTATE
// code and the offending table, column and constraint. Empty result sets
// become a store.NotFound subject. That includes sql.ErrNoRows, which pgx
// returns through its database/sql adapter; registering this classifier
// therefore claims no-rows errors from every database/sql driver. Connection
// failures and timeouts become a store.Unavailable subject.
package postgres
