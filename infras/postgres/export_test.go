package postgres

var (
	SerializableTxOptions = serializable
	AdvisoryLockQuery     = advisoryLockQuery
)
