package constants

type ContextKey string

const (
	TxKey          ContextKey = "tx"
	PoolKey        ContextKey = "pool"
	TenantIDKey    ContextKey = "tenant_id"
	PrincipalIDKey ContextKey = "principal_id"
	LoggerKey      ContextKey = "logger"
)
