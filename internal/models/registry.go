package models

// AllModels lists every model AutoMigrate should know about, in dependency
// order (parents before children).
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Circle{},
		&CircleMember{},
		&Post{},
		&Like{},
		&Comment{},
		&CommentLike{},
		&Reaction{},
		&Share{},
		&Notification{},
		&NutritionEntry{},
		&OutboxTask{},
	}
}
