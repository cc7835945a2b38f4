package setting

import "context"

type SettingRepository interface {
	GetByKey(ctx context.Context, key string) (Setting, error)
	List(ctx context.Context) ([]Setting, error)
	// Upsert creates or replaces the entry for s.Key.
	Upsert(ctx context.Context, s Setting) (Setting, error)
	Delete(ctx context.Context, key string) error
}
