// Package sqlerr classifies database driver errors.
//
// It turns Postgres SQLSTATE codes into a small set of categories and
// converts them into API errors (a unique violation becomes a 409, a
// foreign key violation a 400, and so on).
package sqlerr
