// Package graph contains decorators shared by every wikisearch.GraphSource
// backend: a neighbor cache and a retry policy for transient fetch failures.
//
// Both decorators implement wikisearch.Sessioner, so wrapping a backend that
// opens a session per run keeps that behaviour.
package graph
