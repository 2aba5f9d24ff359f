package ledger

import (
	"context"

	"kharcha/internal/store"
)

// DocumentKey is the fixed key the ledger document lives under.
const DocumentKey = "personal-expense-app"

// Persister loads and saves the whole ledger document.
// Load returns store.ErrNotFound when nothing was ever saved.
type Persister interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, doc []byte) error
}

// KVPersister binds a Persister to one key of a key-value store.
type KVPersister struct {
	kv  store.KV
	key string
}

var _ Persister = (*KVPersister)(nil)

func NewKVPersister(kv store.KV, key string) *KVPersister {
	if key == "" {
		key = DocumentKey
	}
	return &KVPersister{kv: kv, key: key}
}

func (p *KVPersister) Load(ctx context.Context) ([]byte, error) {
	return p.kv.Get(ctx, p.key)
}

func (p *KVPersister) Save(ctx context.Context, doc []byte) error {
	return p.kv.Set(ctx, p.key, doc)
}
