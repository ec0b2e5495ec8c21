package opensearch

import "errors"

var (
	ErrConnectionFailed  = errors.New("opensearch connection failed")
	ErrNoAddresses       = errors.New("no opensearch addresses configured")
	ErrHealthcheckFailed = errors.New("opensearch healthcheck failed")
	ErrInvalidTarget     = errors.New("invalid index name")
	ErrBulkFailed        = errors.New("opensearch bulk request failed")
	// ErrBulkRejected means the request succeeded but some documents were refused.
	ErrBulkRejected = errors.New("opensearch rejected documents")
)
