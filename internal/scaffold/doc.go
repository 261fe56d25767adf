// Package scaffold applies the embedded template kit to a project
// directory: it collects placeholder values, renders each managed file
// with literal token substitution, backs up files the user has touched,
// and records the applied state under .docforge/.
package scaffold
