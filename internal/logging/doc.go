package logging

// Package logging sets up the slog default logger and tags records with the
// id of the fetch cycle they belong to.
