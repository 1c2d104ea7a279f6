package storage

// Fixed keys under which the application state lives.
const (
	KeyProjects       = "projects-data"
	KeyTelegramConfig = "telegram-config"
)

// Store is a minimal persistent key-value store. Values are opaque blobs;
// callers own serialization. Implementations must treat a missing key as
// (nil, false, nil), not an error.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
