// internal/model/location.go
package model

import "strings"

// LegacyScope はコースに紐付かない旧データの保存場所です。
const LegacyScope = "legacy"

const courseScopePrefix = "course:"

// Location はユーザーごとのデータの保存場所 (ユーザーID + スコープ) を表します。
type Location struct {
	UserID string
	Scope  string
}

// ResolveLocation はコースIDから保存場所を決定します。
// コースIDが空の場合は旧来のグローバル (legacy) スコープになります。
func ResolveLocation(userID, courseID string) Location {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" || courseID == LegacyScope {
		return Location{UserID: userID, Scope: LegacyScope}
	}
	return Location{UserID: userID, Scope: courseScopePrefix + courseID}
}

func (l Location) IsLegacy() bool {
	return l.Scope == LegacyScope
}

// CourseID はスコープからコースIDを取り出します。legacy の場合は空文字。
func (l Location) CourseID() string {
	if l.IsLegacy() {
		return ""
	}
	return strings.TrimPrefix(l.Scope, courseScopePrefix)
}
