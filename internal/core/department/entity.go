package department

import "time"

// Department は部署の参照データです。
type Department struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
