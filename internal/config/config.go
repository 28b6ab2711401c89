package config

type Config interface {
	EnvConfig
	RoutesConfig
}

type EnvConfig interface {
	GetAppName() string
	GetAPIBaseURL() string
	GetDataFolder() string
	GetLogLevel() string
	GetEnv() string
}

// RoutesConfig holds the navigation targets the guards and the error
// pipeline redirect to.
type RoutesConfig interface {
	GetLoginPath() string
	GetTenantSelectPath() string
}

type mainConfig struct {
	EnvVars
	Routes
}

func New() Config {
	return mainConfig{}
}
