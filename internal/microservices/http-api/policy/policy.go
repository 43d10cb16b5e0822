// Package policy holds the role-based access rules evaluated for every API request.
//
// An Endpoint lists predicates; a request is allowed only when every predicate
// evaluates to true for the caller's AuthContext, the targeted resource and the verb.
package policy

import (
	"errors"
	"net/http"

	"yamdb/internal/microservices/http-api/models"
)

var (
	ErrNotAuthenticated = errors.New("authentication credentials were not provided")
	ErrPermissionDenied = errors.New("you do not have permission to perform this action")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// AuthContext is the identity a request acts with.
type AuthContext struct {
	UserID          string
	Role            models.Role
	IsAuthenticated bool
}

func Anonymous() AuthContext {
	return AuthContext{}
}

// ForUser builds the context of an authenticated user.
func ForUser(user *models.User) AuthContext {
	return AuthContext{UserID: user.ID, Role: user.Role, IsAuthenticated: true}
}

func (a AuthContext) Is(role models.Role) bool {
	return a.IsAuthenticated && a.Role == role
}

type Kind string

const (
	KindUser     Kind = "user"
	KindCategory Kind = "category"
	KindGenre    Kind = "genre"
	KindTitle    Kind = "title"
	KindReview   Kind = "review"
	KindComment  Kind = "comment"
)

// ResourceRef describes the target of a request. ID is the raw path identifier
// (empty on collection routes). Owner is only set once the entity has been loaded.
type ResourceRef struct {
	Kind  Kind
	ID    string
	Owner *string
}

func (r ResourceRef) IsInstance() bool {
	return r.ID != ""
}

// WithOwner returns a copy of r for an object-level check.
func (r ResourceRef) WithOwner(ownerID string) ResourceRef {
	r.Owner = &ownerID
	return r
}

type Verb string

func VerbOf(method string) Verb {
	return Verb(method)
}

// Safe reports whether the verb is read-only.
func (v Verb) Safe() bool {
	switch v {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func (v Verb) isEdit() bool {
	return v == http.MethodPut || v == http.MethodPatch
}
