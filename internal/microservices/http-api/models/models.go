package models

// All lists every model in migration order.
func All() []any {
	return []any{
		&User{},
		&RefreshToken{},
		&Category{},
		&Genre{},
		&Title{},
		&Review{},
		&Comment{},
	}
}
