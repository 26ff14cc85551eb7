// Package spec defines the declarative project specification and its
// loader/validator. A spec document describes the services of a backend
// (runtime, database, architectural pattern, entities, domain events);
// loading parses it into typed form, validation collects every violation
// in one pass so a user can fix all issues from a single run.
package spec

// Runtime identifies a supported target runtime family.
type Runtime string

const (
	RuntimeDotnet Runtime = "dotnet"
	RuntimeJava   Runtime = "java"
	RuntimeNode   Runtime = "nodejs"
)

// KnownRuntime reports whether r is one of the supported runtimes.
func KnownRuntime(r Runtime) bool {
	switch r {
	case RuntimeDotnet, RuntimeJava, RuntimeNode:
		return true
	}
	return false
}

// Runtimes lists every supported runtime, in declaration order.
func Runtimes() []Runtime {
	return []Runtime{RuntimeDotnet, RuntimeJava, RuntimeNode}
}

// Database identifies a supported database technology.
type Database string

const (
	DatabasePostgres Database = "postgresql"
	DatabaseMongo    Database = "mongodb"
)

// KnownDatabase reports whether d is one of the supported databases.
func KnownDatabase(d Database) bool {
	return d == DatabasePostgres || d == DatabaseMongo
}

// Pattern identifies a supported architectural pattern.
type Pattern string

const (
	PatternCQRS        Pattern = "cqrs"
	PatternEventDriven Pattern = "event-driven"
	PatternNTier       Pattern = "n-tier"
)

// KnownPattern reports whether p is one of the supported patterns.
func KnownPattern(p Pattern) bool {
	switch p {
	case PatternCQRS, PatternEventDriven, PatternNTier:
		return true
	}
	return false
}

// FieldType is the closed set of entity field types.
type FieldType string

const (
	FieldString   FieldType = "string"
	FieldInt      FieldType = "int"
	FieldFloat    FieldType = "float"
	FieldBool     FieldType = "bool"
	FieldDatetime FieldType = "datetime"

	// FieldHashed marks a field whose generated accessors must route
	// through a one-way hashing transform rather than storing raw input.
	FieldHashed FieldType = "hashed-string"
)

// KnownFieldType reports whether t is one of the supported field types.
func KnownFieldType(t FieldType) bool {
	switch t {
	case FieldString, FieldInt, FieldFloat, FieldBool, FieldDatetime, FieldHashed:
		return true
	}
	return false
}

// Project is the root of user input. Services keep the document's
// insertion order: it determines deterministic port allocation downstream.
// Duplicate names survive loading so validation can report them.
type Project struct {
	Name     string
	Services []Service
}

// Service describes one declared service.
type Service struct {
	Name     string
	Runtime  Runtime
	Database Database
	Pattern  Pattern
	Entities []Entity

	// Events is declarative only: an event need not be consumed by any
	// other declared service to be valid. Services sharing a literal
	// event name share a wire-level topic.
	Events []string
}

// Entity describes one entity owned by a service.
type Entity struct {
	Name   string
	Fields []Field
}

// Field is a single entity field.
type Field struct {
	Name string
	Type FieldType
}
