// Package redis connects to Redis and stores documents in it.
//
// Connect parses a redis:// URL and retries PING until the server answers.
// Storage implements saver.Storage with a plain SET per document and a
// companion key holding the content type:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := redis.NewStorageFromConfig(client, cfg)
//
// With KeyPrefix "htmlsaver:" a document saved as "v1/home.html" ends up
// under "htmlsaver:v1/home.html" and its content type under
// "htmlsaver:v1/home.html:content_type".
//
// Healthcheck wraps PING for readiness probes.
package redis
