package storage

import "errors"

// ErrUnavailable はデータストアへの接続断やタイムアウトなど、一時的な障害を表します。
var ErrUnavailable = errors.New("storage: unavailable")
