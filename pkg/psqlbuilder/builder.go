package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder общий построитель запросов с PostgreSQL-плейсхолдерами ($1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select создает SELECT builder с PostgreSQL-плейсхолдерами
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert создает INSERT builder с PostgreSQL-плейсхолдерами
// Обновления выражаются как INSERT .. ON CONFLICT DO UPDATE,
// отдельный UPDATE builder не нужен
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}
