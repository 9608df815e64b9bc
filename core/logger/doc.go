// Package logger records script run events as newline delimited JSON and
// summarizes them into reports.
package logger
