package lint

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/tools/go/packages"
)

// PackageError reports a package that failed to load or type-check.
// Such packages are skipped by [Checker.Check].
type PackageError struct {
	PkgPath    string
	Errors     []error
	TypeErrors []error
}

func newPackageError(pkg *packages.Package) *PackageError {
	perr := &PackageError{PkgPath: pkg.PkgPath}

	for _, err := range pkg.Errors {
		perr.Errors = append(perr.Errors, err)
	}

	for _, err := range pkg.TypeErrors {
		perr.TypeErrors = append(perr.TypeErrors, err)
	}

	return perr
}

func (e *PackageError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "package %s:", e.PkgPath)

	if len(e.Errors) > 0 {
		fmt.Fprintf(&b, "\n\tmetadata: %v", errors.Join(e.Errors...))
	}

	if len(e.TypeErrors) > 0 {
		fmt.Fprintf(&b, "\n\ttypes: %v", errors.Join(e.TypeErrors...))
	}

	return b.String()
}

func (e *PackageError) Unwrap() []error {
	return append(append([]error(nil), e.Errors...), e.TypeErrors...)
}
