package policy

import "fmt"

// Endpoint is the ordered set of predicates guarding one resource route.
type Endpoint struct {
	Kind       Kind
	IDParam    string
	Predicates []Predicate
}

// Authorize evaluates every predicate in order and returns the denial of the first
// one that fails, or nil.
func (e Endpoint) Authorize(auth AuthContext, ref ResourceRef, verb Verb) error {
	for _, p := range e.Predicates {
		if !p.Evaluate(auth, ref, verb) {
			return &DeniedError{Kind: e.Kind, Predicate: p, Err: p.denial(auth)}
		}
	}
	return nil
}

// DeniedError records which predicate refused a request.
type DeniedError struct {
	Kind      Kind
	Predicate Predicate
	Err       error
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s: %s denied by %s", e.Err, e.Kind, e.Predicate)
}

func (e *DeniedError) Unwrap() error {
	return e.Err
}

var (
	Users = Endpoint{
		Kind:       KindUser,
		IDParam:    "username",
		Predicates: []Predicate{AdminOnly, NoSelfDelete},
	}
	Categories = Endpoint{
		Kind:       KindCategory,
		IDParam:    "slug",
		Predicates: []Predicate{DeleteRestricted, AdminOrReadOnly},
	}
	Genres = Endpoint{
		Kind:       KindGenre,
		IDParam:    "slug",
		Predicates: []Predicate{DeleteRestricted, AdminOrReadOnly},
	}
	Titles = Endpoint{
		Kind:       KindTitle,
		IDParam:    "title_id",
		Predicates: []Predicate{AdminOrReadOnly},
	}
	Reviews = Endpoint{
		Kind:       KindReview,
		IDParam:    "review_id",
		Predicates: []Predicate{AnonymousRead, OwnerOnlyEdit, ModeratorOverride},
	}
	Comments = Endpoint{
		Kind:       KindComment,
		IDParam:    "comment_id",
		Predicates: []Predicate{AnonymousRead, OwnerOnlyEdit, ModeratorOverride},
	}
)
