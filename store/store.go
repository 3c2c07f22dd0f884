// Package store 提供 core.Store / core.KeyValueStore 的实现，用于保存文档字段。
//
// 文档字段以 Hash 保存：key 为 "<prefix><docID>"，field 为字段名，value 为字段文本。
//
//	var kv core.KeyValueStore = store.NewMemoryStore()
//	var kv core.KeyValueStore, _ = store.NewRedisStore("localhost:6379", 0)
package store

import "github.com/rushteam/scorekit/core"

// ErrNotFound 与 core.ErrStoreNotFound 相同，便于包内使用。
var ErrNotFound = core.ErrStoreNotFound
