package postgres

// RetryOnConflict exposes retryOnConflict to the external test package.
var RetryOnConflict = retryOnConflict
