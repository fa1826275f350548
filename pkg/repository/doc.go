// Package repository holds the persistence backends. The memory and
// firestore subpackages implement interfaces.Repository and share the
// behavioral suites in this directory.
package repository
