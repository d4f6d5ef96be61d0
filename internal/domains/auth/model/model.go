package model

const (
	// CacheRevokedToken prefixes access token ids that were logged out before expiring.
	CacheRevokedToken = "auth:revoked"
)
