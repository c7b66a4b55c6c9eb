package config

import "time"

// JWTSettings holds the signing settings of the local identity stub. The blog
// service itself never signs or verifies tokens.
type JWTSettings struct {
	Secret     []byte
	Expiration time.Duration
}

func LoadJWTSettings() JWTSettings {
	return JWTSettings{
		Secret:     []byte(getEnv("JWT_SECRET", "your-secret-key-change-this-in-production")),
		Expiration: getDuration("JWT_EXPIRATION", 24*time.Hour),
	}
}
