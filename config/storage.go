package config

import (
	"sync"
)

var (
	storageOnce   sync.Once
	storageConfig *StorageConfig
)

type StorageConfig struct {
	Backend   string // "minio", "s3" or "local"
	LocalRoot string
}

func GetStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		loadEnv()
		storageConfig = &StorageConfig{
			Backend:   getenv("STORAGE_BACKEND", "minio"),
			LocalRoot: getenv("STORAGE_LOCAL_ROOT", "data/floorplans"),
		}
	})
	return storageConfig
}
