// Package saver persists HTML documents in batches from a background worker.
//
// Producers hand items to a Handle or to any number of Senders cloned from it.
// Save never blocks: when the bounded queue is full or the worker has stopped
// the item is rejected with ErrEnqueueRejected. The worker collects items into
// a batch and flushes it when the batch reaches the configured size or when the
// flush interval elapses, whichever comes first. Each item is run through the
// sanitizer pipeline and written to Storage concurrently with the rest of its
// batch. Storage failures are logged and the item is dropped.
//
// Shutdown closes the queue to new items, drains everything already accepted,
// performs a final flush and waits for it:
//
//	h, err := saver.New[saver.Document](storage,
//		saver.WithBatchSize(100),
//		saver.WithPrefix("snapshots"),
//	)
//	if err != nil {
//		return err
//	}
//	defer h.Shutdown(context.Background())
//
//	_ = h.Save(saver.Document{Key: "index.html", HTML: page})
//
// Init registers a handle's sender as the process-wide sender for its item
// type, retrievable with Global.
package saver
