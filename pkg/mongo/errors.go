package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrEmptyConnectionURL     = errors.New("empty mongo connection url, set MONGODB_URL")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
	ErrInvalidTarget          = errors.New("invalid collection name")
	ErrInsertFailed           = errors.New("failed to insert records")
	ErrDuplicateRun           = errors.New("records of this run are already stored")
)
