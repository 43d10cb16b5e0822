package policy

import (
	"net/http"

	"yamdb/internal/microservices/http-api/models"
)

// Predicate is one access rule.
type Predicate int

const (
	// AdminOnly allows admins, and any authenticated caller addressing the "me" alias.
	AdminOnly Predicate = iota
	// AdminOrReadOnly allows safe verbs to everyone and mutations to admins.
	AdminOrReadOnly
	// DeleteRestricted allows only DELETE among mutating verbs on a specific instance.
	DeleteRestricted
	// ModeratorOverride gates DELETE on the moderator role.
	ModeratorOverride
	// OwnerOnlyEdit gates PUT/PATCH on authorship.
	OwnerOnlyEdit
	// AnonymousRead allows safe verbs to everyone and the rest to authenticated callers.
	AnonymousRead
	// NoSelfDelete rejects DELETE on the "me" alias or on a missing username.
	NoSelfDelete
)

var predicateNames = map[Predicate]string{
	AdminOnly:         "admin_only",
	AdminOrReadOnly:   "admin_or_read_only",
	DeleteRestricted:  "delete_restricted",
	ModeratorOverride: "moderator_override",
	OwnerOnlyEdit:     "owner_only_edit",
	AnonymousRead:     "anonymous_read",
	NoSelfDelete:      "no_self_delete",
}

func (p Predicate) String() string {
	if name, ok := predicateNames[p]; ok {
		return name
	}
	return "unknown"
}

// Evaluate reports whether the predicate admits the request.
func (p Predicate) Evaluate(auth AuthContext, ref ResourceRef, verb Verb) bool {
	switch p {
	case AdminOnly:
		if ref.ID == models.MeAlias && auth.IsAuthenticated {
			return true
		}
		return auth.Is(models.RoleAdmin)

	case AdminOrReadOnly:
		return verb.Safe() || auth.Is(models.RoleAdmin)

	case DeleteRestricted:
		if !ref.IsInstance() || verb.Safe() {
			return true
		}
		return verb == http.MethodDelete

	case ModeratorOverride:
		if verb != http.MethodDelete {
			return true
		}
		return auth.Is(models.RoleModerator)

	case OwnerOnlyEdit:
		if !verb.isEdit() {
			return true
		}
		if !auth.IsAuthenticated {
			return false
		}
		// request-level phase: ownership is decided once the entity is loaded
		if ref.Owner == nil {
			return true
		}
		return *ref.Owner == auth.UserID

	case AnonymousRead:
		return verb.Safe() || auth.IsAuthenticated

	case NoSelfDelete:
		if verb != http.MethodDelete {
			return true
		}
		return ref.ID != "" && ref.ID != models.MeAlias
	}
	return false
}

// denial is the error reported when p rejects a request made with auth.
func (p Predicate) denial(auth AuthContext) error {
	switch p {
	case DeleteRestricted, NoSelfDelete:
		return ErrMethodNotAllowed
	}
	if !auth.IsAuthenticated {
		return ErrNotAuthenticated
	}
	return ErrPermissionDenied
}
