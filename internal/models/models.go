package models

// All lists every model migrated at startup, in dependency order
func All() []interface{} {
	return []interface{}{&Role{}, &User{}, &Student{}, &Teacher{}, &AccessToken{}}
}
