package config

import "log"

// MustNonEmpty exits the process when value is empty. Call it after loading
// environment variables that have no usable default, such as DATABASE_URL.
func MustNonEmpty(value, envName string) {
	if value == "" {
		fatalMissing(envName)
	}
}

// MustNonEmptyBytes is MustNonEmpty for byte slices (secrets read as []byte).
func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		fatalMissing(envName)
	}
}

func fatalMissing(envName string) {
	log.Fatalf("missing required env %s", envName)
}
