package model

// ContextKey はコンテキストに値を格納するためのキーの型です。
type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)
