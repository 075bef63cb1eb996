// Package mongo stores documents in MongoDB using the v2 driver.
//
// New connects with retries, Documents resolves the configured database
// and collection, and Storage implements saver.Storage by upserting one
// document per key with _id set to the key.
//
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := mongo.NewStorage(mongo.Documents(client, cfg))
package mongo
