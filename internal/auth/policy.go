package auth

import "github.com/owlproh/api-yamdb/internal/model"

// CanManageCatalog reports whether the user may create or delete
// categories, genres and titles, or manage the user directory.
func CanManageCatalog(u *model.User) bool {
	return u != nil && u.IsAdmin()
}

// CanModifyContent reports whether the user may mutate or delete a
// review or comment owned by authorID. Authors keep control of their
// own objects; moderators and admins override ownership.
func CanModifyContent(u *model.User, authorID uint) bool {
	if u == nil {
		return false
	}
	return u.ID == authorID || u.IsModerator()
}
