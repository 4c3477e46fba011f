// Package redis classifies errors raised by steps that use go-redis/v9.
//
//	eng := engine.New(engine.WithClassifier(redis.Classifier{}))
//
// A missing key (redis.Nil) becomes a store.NotFound subject. Server error
// replies become a [Reply] subject split into the reply prefix and message.
// A failed optimistic transaction is reported as a conflicting update.
package redis
