package utils

// Error codes returned in JSON error bodies. The frontend switches on the
// code, the msg is for humans.
const (
	ErrorTokenAuthFail = 40100
	ErrorNotFound      = 40400
	ErrorInvalidForm   = 40000
	ErrorInternal      = 50000
)
