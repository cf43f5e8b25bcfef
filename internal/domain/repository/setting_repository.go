package repository

// SettingRepository persists company configuration key/value pairs.
type SettingRepository interface {
	GetAll() (map[string]string, error)
	Get(key string) (string, error)
	Upsert(key, value string) error
}
