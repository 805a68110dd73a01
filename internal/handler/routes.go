package handler

// Public path prefixes. Tests and docs refer to these instead of literals.
const (
	ArticlePrefix = "/article"
	UserPrefix    = "/user"
)
