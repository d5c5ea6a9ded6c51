package config

import "os"

func IsDebug() bool {
	return os.Getenv("WARREN_DEBUG") == "1"
}
