package constant

const (
	AdminSessionRevokedKey = "admin:session:revoked:%s"
	RateLimitKey           = "ratelimit:%s:%s:%d"
)
