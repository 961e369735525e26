package department

import "context"

// Repository は部署参照の抽象です。
type Repository interface {
	List(ctx context.Context) ([]*Department, error)
}
