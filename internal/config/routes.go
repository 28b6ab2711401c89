package config

type Routes struct{}

var _ RoutesConfig = Routes{}

func (Routes) GetLoginPath() string {
	return GetEnv("LOGIN_PATH", "/login")
}

func (Routes) GetTenantSelectPath() string {
	return GetEnv("TENANT_SELECT_PATH", "/select-tenant")
}
