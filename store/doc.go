// Package store holds the error subjects shared by the backend classifiers.
//
// Steps that talk to a database return driver errors. Each backend package
// provides a workflow.Classifier that turns those errors into a readable
// failure message and a typed subject:
//
//   - store/postgres: pgx/v5 and pgconn errors
//   - store/redis: go-redis/v9 errors and server replies
//   - store/mongo: mongo-driver/v2 errors and write exceptions
//
// # Usage
//
//	eng := engine.New(
//	    engine.WithClassifier(postgres.Classifier{}, redis.Classifier{}),
//	)
package store
