// Package localdoc holds the offline-capable local document: a map of
// last-writer-wins registers keyed by (collection, entity id), persisted to
// SQLite with DEK-encrypted values and merged with remote replicas through
// order-independent diffs.
//
// All mutations flow through [Store.ApplyChange]; every accepted change is
// persisted, queued for the sync endpoint, and delivered to registered
// listeners before the next change is admitted.
package localdoc
