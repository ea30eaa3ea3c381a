package integration_test

const (
	cacheImageName  = "redis:7"
	testScreeningID = "screening-1"
	testAccountID   = int64(42)
)
